package ai

import (
	"regexp"
	"strings"
)

// Plan blocks are an explicit template either side of the chat can embed to
// pin a plan down unambiguously. Once a block is present the interpreter
// commits to it and never falls back to free-text guessing.
const (
	PlanBlockOpen  = "===PLAN==="
	PlanBlockClose = "===END==="
)

// PlanBlockTemplate is re-displayed whenever a block arrives incomplete.
const PlanBlockTemplate = PlanBlockOpen + `
name: <plan name>
date: YYYY-MM-DD
workouts:
1. <exercise, e.g. bench press 3x8>
2. <exercise>
` + PlanBlockClose

// PlanBlock holds the fields extracted from a delimited plan template.
// Items keep the user's wording verbatim; they are not canonicalized.
type PlanBlock struct {
	Name  string
	Date  string // normalized YYYY-MM-DD, empty if absent or unparseable
	Items []string
}

// Missing lists the required fields the block did not provide.
func (b *PlanBlock) Missing() []string {
	var out []string
	if b.Name == "" {
		out = append(out, "name")
	}
	if b.Date == "" {
		out = append(out, "date")
	}
	if len(b.Items) == 0 {
		out = append(out, "workouts")
	}
	return out
}

var planItemRe = regexp.MustCompile(`^\s*\d+[.)]\s*(.+?)\s*$`)

// FindPlanBlock returns the last plan block embedded anywhere in text, from
// either role's turns. The last block wins when several appear, on the same
// corrected-themselves logic as date extraction.
func FindPlanBlock(text string) (*PlanBlock, bool) {
	start := strings.LastIndex(text, PlanBlockOpen)
	if start < 0 {
		return nil, false
	}
	body := text[start+len(PlanBlockOpen):]
	if end := strings.Index(body, PlanBlockClose); end >= 0 {
		body = body[:end]
	}

	block := &PlanBlock{}
	inWorkouts := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "name:"):
			block.Name = strings.TrimSpace(trimmed[len("name:"):])
			inWorkouts = false
		case strings.HasPrefix(lower, "date:"):
			raw := strings.TrimSpace(trimmed[len("date:"):])
			if iso, ok := NormalizeDate(raw); ok {
				block.Date = iso
			}
			inWorkouts = false
		case strings.HasPrefix(lower, "workouts:"):
			inWorkouts = true
		case inWorkouts:
			if m := planItemRe.FindStringSubmatch(trimmed); m != nil {
				block.Items = append(block.Items, m[1])
			}
		}
	}
	return block, true
}
