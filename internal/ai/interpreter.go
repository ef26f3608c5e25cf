package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
)

// Message is one turn of a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// InterpretResult is what a chat turn produces: a conversational reply and
// zero or more proposals awaiting human confirmation. An empty proposal
// list with a question is the modeled outcome for ambiguous input, not an
// error.
type InterpretResult struct {
	AssistantText string            `json:"assistant_text"`
	Proposals     []domain.Proposal `json:"proposals"`
}

const proposalConfidence = 0.75

var titleOverrideRe = regexp.MustCompile(`(?i)\b(?:call|name|title)\s+it\s+["']?([^".'!?\n]+?)["']?\s*$`)

// Interpret reads a transcript and turns it into typed proposals. It is a
// pure function of the transcript and the reference date: no mutation
// happens here, only suggestions that the task queue later gates behind
// confirmation.
//
// A plan block, when present, is a strict commitment: missing fields
// short-circuit into a clarification instead of free-text guessing. In free
// text, a missing date is always a follow-up question, never a silent
// default.
func Interpret(msgs []Message, today time.Time) InterpretResult {
	var userTexts []string
	for _, m := range msgs {
		if m.Role == RoleUser {
			userTexts = append(userTexts, m.Content)
		}
	}
	fullUser := strings.Join(userTexts, " ")
	latestUser := ""
	if len(userTexts) > 0 {
		latestUser = userTexts[len(userTexts)-1]
	}

	var allText strings.Builder
	for _, m := range msgs {
		allText.WriteString(m.Content)
		allText.WriteString("\n")
	}

	if block, ok := FindPlanBlock(allText.String()); ok {
		return interpretPlanBlock(block)
	}

	date, ok := ExtractDate(fullUser, latestUser, today)
	if !ok {
		return InterpretResult{
			AssistantText: "I can queue that. What date should I use? (e.g., 2025-10-16)",
		}
	}

	title := deriveTitle(latestUser)

	exercises := ExtractExercises(fullUser)
	if len(exercises) == 0 {
		return InterpretResult{
			AssistantText: "Got the date — what should we train? Give me at least one exercise, or a split like push, pull or legs.",
		}
	}

	addPayload := domain.AddWorkoutPayload{Date: date, Title: title}
	add, err := domain.NewProposal(addPayload,
		fmt.Sprintf("Add '%s' on %s.", title, date), proposalConfidence)
	if err != nil {
		// Extraction produced an invalid date or title; degrade to a question.
		return InterpretResult{
			AssistantText: "I couldn't make sense of that date. What day should I use? (e.g., 2025-10-16)",
		}
	}
	proposals := []domain.Proposal{add}

	sets := make([]domain.SetSpec, 0, len(exercises))
	for _, ex := range exercises {
		reps, count := setSpecNear(fullUser, ex)
		sets = append(sets, domain.SetSpec{Exercise: ex, Reps: reps, Count: count})
	}
	// workout_id stays empty: the workout doesn't exist yet. The caller
	// substitutes the real id once the add_workout task is executed.
	upsert, err := domain.NewProposal(
		domain.UpsertSetsPayload{Mode: domain.UpsertModeAppend, Sets: sets},
		fmt.Sprintf("Add %d exercises to '%s'.", len(sets), title), proposalConfidence)
	if err == nil {
		proposals = append(proposals, upsert)
	}

	return InterpretResult{
		AssistantText: fmt.Sprintf("I can add **%s** on %s. Want me to queue that?", title, date),
		Proposals:     proposals,
	}
}

func interpretPlanBlock(block *PlanBlock) InterpretResult {
	if missing := block.Missing(); len(missing) > 0 {
		return InterpretResult{
			AssistantText: fmt.Sprintf(
				"Your plan is missing: %s. Fill it in and resend:\n%s",
				strings.Join(missing, ", "), PlanBlockTemplate),
		}
	}

	add, err := domain.NewProposal(
		domain.AddWorkoutPayload{Date: block.Date, Title: block.Name},
		fmt.Sprintf("Add '%s' on %s.", block.Name, block.Date), proposalConfidence)
	if err != nil {
		return InterpretResult{
			AssistantText: fmt.Sprintf(
				"Your plan is missing: date. Fill it in and resend:\n%s", PlanBlockTemplate),
		}
	}
	proposals := []domain.Proposal{add}

	sets := make([]domain.SetSpec, 0, len(block.Items))
	for _, item := range block.Items {
		// Plan-block items keep the user's wording; only the numbers are
		// parsed out.
		name, reps, count := ParseSetSpec(item)
		sets = append(sets, domain.SetSpec{Exercise: name, Reps: reps, Count: count})
	}
	upsert, err := domain.NewProposal(
		domain.UpsertSetsPayload{Mode: domain.UpsertModeAppend, Sets: sets},
		fmt.Sprintf("Add %d exercises to '%s'.", len(sets), block.Name), proposalConfidence)
	if err == nil {
		proposals = append(proposals, upsert)
	}

	return InterpretResult{
		AssistantText: fmt.Sprintf("I can add **%s** on %s. Want me to queue that?", block.Name, block.Date),
		Proposals:     proposals,
	}
}

// deriveTitle picks a workout title from the latest user message: an
// explicit "call it <X>" wins, then split keywords, then a plain default.
func deriveTitle(latestUser string) string {
	if m := titleOverrideRe.FindStringSubmatch(latestUser); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}
	switch split, _ := detectSplit(latestUser); split {
	case "push":
		return "Push Day"
	case "pull":
		return "Pull Day"
	case "legs":
		return "Leg Day"
	}
	return "Workout"
}
