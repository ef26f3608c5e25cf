package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Intent names the kind of mutation a proposal represents.
type Intent string

const (
	IntentAddWorkout    Intent = "add_workout"
	IntentMoveWorkout   Intent = "move_workout"
	IntentEditWorkout   Intent = "edit_workout"
	IntentUpsertSets    Intent = "upsert_sets"
	IntentDeleteWorkout Intent = "delete_workout"
	IntentBulkPlan      Intent = "bulk_plan"
)

// ValidationError reports a payload that does not match the shape required
// by its intent. It is surfaced before anything reaches the queue.
type ValidationError struct {
	Intent Intent
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload for intent '%s': %s", e.Intent, e.Detail)
}

func invalid(intent Intent, format string, args ...any) error {
	return &ValidationError{Intent: intent, Detail: fmt.Sprintf(format, args...)}
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validISODate requires the YYYY-MM-DD shape and a real calendar date,
// so "2025-13-01" fails even though it matches the pattern.
func validISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Payload is the closed set of intent-shaped proposal payloads. Each variant
// carries its own intent and validation, so a correctly constructed Proposal
// cannot disagree with its payload shape; DecodePayload re-runs the same
// checks for payloads arriving over an untrusted boundary.
type Payload interface {
	Intent() Intent
	Validate() error
}

type AddWorkoutPayload struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

func (AddWorkoutPayload) Intent() Intent { return IntentAddWorkout }

func (p AddWorkoutPayload) Validate() error {
	if !validISODate(p.Date) {
		return invalid(IntentAddWorkout, "date must be a valid YYYY-MM-DD date, got %q", p.Date)
	}
	if p.Title == "" {
		return invalid(IntentAddWorkout, "title is required")
	}
	return nil
}

type MoveWorkoutPayload struct {
	WorkoutID string `json:"workout_id"`
	NewDate   string `json:"new_date"`
}

func (MoveWorkoutPayload) Intent() Intent { return IntentMoveWorkout }

func (p MoveWorkoutPayload) Validate() error {
	if p.WorkoutID == "" {
		return invalid(IntentMoveWorkout, "workout_id is required")
	}
	if !validISODate(p.NewDate) {
		return invalid(IntentMoveWorkout, "new_date must be a valid YYYY-MM-DD date, got %q", p.NewDate)
	}
	return nil
}

type EditWorkoutPayload struct {
	WorkoutID string         `json:"workout_id"`
	Title     *string        `json:"title,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	Status    *WorkoutStatus `json:"status,omitempty"`
}

func (EditWorkoutPayload) Intent() Intent { return IntentEditWorkout }

func (p EditWorkoutPayload) Validate() error {
	if p.WorkoutID == "" {
		return invalid(IntentEditWorkout, "workout_id is required")
	}
	if p.Status != nil && !ValidWorkoutStatus(*p.Status) {
		return invalid(IntentEditWorkout, "status must be planned, done or rest, got %q", *p.Status)
	}
	if p.Title == nil && p.Notes == nil && p.Status == nil {
		return invalid(IntentEditWorkout, "at least one of title, notes or status is required")
	}
	return nil
}

// SetSpec is one planned exercise with its set/rep prescription.
type SetSpec struct {
	Exercise string   `json:"exercise"`
	Reps     int      `json:"reps"`
	Weight   *float64 `json:"weight,omitempty"`
	Count    int      `json:"count"`
}

const (
	MaxReps     = 100
	MaxSetCount = 50
)

func (s SetSpec) validate(intent Intent, idx int) error {
	if s.Exercise == "" {
		return invalid(intent, "sets[%d]: exercise is required", idx)
	}
	if s.Reps < 1 || s.Reps > MaxReps {
		return invalid(intent, "sets[%d]: reps must be between 1 and %d, got %d", idx, MaxReps, s.Reps)
	}
	if s.Count < 1 || s.Count > MaxSetCount {
		return invalid(intent, "sets[%d]: count must be between 1 and %d, got %d", idx, MaxSetCount, s.Count)
	}
	return nil
}

type UpsertSetsPayload struct {
	// WorkoutID may be empty only in append mode: the interpreter emits
	// upsert_sets alongside add_workout before the workout exists, and the
	// caller substitutes the real id after creation.
	WorkoutID string    `json:"workout_id"`
	Mode      string    `json:"mode"`
	Sets      []SetSpec `json:"sets"`
}

const (
	UpsertModeAppend  = "append"
	UpsertModeReplace = "replace"
)

func (UpsertSetsPayload) Intent() Intent { return IntentUpsertSets }

func (p UpsertSetsPayload) Validate() error {
	switch p.Mode {
	case UpsertModeAppend:
	case UpsertModeReplace:
		if p.WorkoutID == "" {
			return invalid(IntentUpsertSets, "workout_id is required in replace mode")
		}
	default:
		return invalid(IntentUpsertSets, "mode must be append or replace, got %q", p.Mode)
	}
	if len(p.Sets) == 0 {
		return invalid(IntentUpsertSets, "at least one set is required")
	}
	for i, s := range p.Sets {
		if err := s.validate(IntentUpsertSets, i); err != nil {
			return err
		}
	}
	return nil
}

type DeleteWorkoutPayload struct {
	WorkoutID string `json:"workout_id"`
	Reason    string `json:"reason,omitempty"`
}

func (DeleteWorkoutPayload) Intent() Intent { return IntentDeleteWorkout }

func (p DeleteWorkoutPayload) Validate() error {
	if p.WorkoutID == "" {
		return invalid(IntentDeleteWorkout, "workout_id is required")
	}
	return nil
}

type BulkPlanDay struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

type BulkPlanPayload struct {
	Days []BulkPlanDay `json:"days"`
}

const MaxBulkPlanDays = 14

func (BulkPlanPayload) Intent() Intent { return IntentBulkPlan }

func (p BulkPlanPayload) Validate() error {
	if len(p.Days) < 1 || len(p.Days) > MaxBulkPlanDays {
		return invalid(IntentBulkPlan, "days must contain between 1 and %d entries, got %d", MaxBulkPlanDays, len(p.Days))
	}
	for i, d := range p.Days {
		if !validISODate(d.Date) {
			return invalid(IntentBulkPlan, "days[%d]: date must be a valid YYYY-MM-DD date, got %q", i, d.Date)
		}
		if d.Title == "" {
			return invalid(IntentBulkPlan, "days[%d]: title is required", i)
		}
	}
	return nil
}

// Proposal is an unexecuted suggested change. It has no persistence of its
// own; callers submit it to the task queue for confirmation.
type Proposal struct {
	Intent                    Intent  `json:"intent"`
	Payload                   Payload `json:"payload"`
	Summary                   string  `json:"summary"`
	Confidence                float64 `json:"confidence"`
	RequiresConfirmation      bool    `json:"requires_confirmation"`
	RequiresSuperConfirmation bool    `json:"requires_super_confirmation"`
}

// NewProposal builds a proposal from a typed payload, validating it so a
// Proposal with an invalid payload is never constructed. Destructive or
// replacing intents are flagged for super confirmation.
func NewProposal(payload Payload, summary string, confidence float64) (Proposal, error) {
	if err := payload.Validate(); err != nil {
		return Proposal{}, err
	}
	if confidence < 0 || confidence > 1 {
		return Proposal{}, invalid(payload.Intent(), "confidence must be between 0.0 and 1.0, got %v", confidence)
	}
	super := false
	switch p := payload.(type) {
	case DeleteWorkoutPayload:
		super = true
	case UpsertSetsPayload:
		super = p.Mode == UpsertModeReplace
	}
	return Proposal{
		Intent:                    payload.Intent(),
		Payload:                   payload,
		Summary:                   summary,
		Confidence:                confidence,
		RequiresConfirmation:      true,
		RequiresSuperConfirmation: super,
	}, nil
}

// DecodePayload validates an untrusted payload against the schema for its
// declared intent and returns the typed form. Unknown intents fail closed.
func DecodePayload(intent Intent, raw map[string]any) (Payload, error) {
	var target Payload
	switch intent {
	case IntentAddWorkout:
		target = &AddWorkoutPayload{}
	case IntentMoveWorkout:
		target = &MoveWorkoutPayload{}
	case IntentEditWorkout:
		target = &EditWorkoutPayload{}
	case IntentUpsertSets:
		target = &UpsertSetsPayload{}
	case IntentDeleteWorkout:
		target = &DeleteWorkoutPayload{}
	case IntentBulkPlan:
		target = &BulkPlanPayload{}
	default:
		return nil, &ValidationError{Intent: intent, Detail: "unknown intent"}
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, invalid(intent, "payload is not encodable: %v", err)
	}
	if err := json.Unmarshal(buf, target); err != nil {
		return nil, invalid(intent, "payload does not match schema: %v", err)
	}

	payload := deref(target)
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

func deref(p Payload) Payload {
	switch v := p.(type) {
	case *AddWorkoutPayload:
		return *v
	case *MoveWorkoutPayload:
		return *v
	case *EditWorkoutPayload:
		return *v
	case *UpsertSetsPayload:
		return *v
	case *DeleteWorkoutPayload:
		return *v
	case *BulkPlanPayload:
		return *v
	}
	return p
}

// PayloadMap renders a typed payload back into the generic form stored on a
// queued task.
func PayloadMap(p Payload) (map[string]any, error) {
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}
