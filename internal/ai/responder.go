package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aidandawley/Futures-Coaching/internal/config"
)

// ErrUpstream marks a failed or unusable reply from the external model.
// It is surfaced as-is; the responder never falls back to mock mode once
// the live path was chosen.
var ErrUpstream = errors.New("upstream model unavailable")

// generateFunc is the send-messages-get-text boundary to the model
// provider. Tests substitute it.
type generateFunc func(ctx context.Context, model, apiKey, systemPrompt string, msgs []Message) (string, error)

// Responder routes a transcript to either a deterministic mock reply or a
// live model call, decided once at construction from the injected config:
// mock mode, or no API key, means mock.
type Responder struct {
	cfg      config.AIConfig
	mock     bool
	generate generateFunc
}

func NewResponder(cfg config.AIConfig) *Responder {
	return &Responder{
		cfg:      cfg,
		mock:     cfg.Mock || cfg.APIKey == "",
		generate: geminiGenerate,
	}
}

// Mock reports which path Reply takes.
func (r *Responder) Mock() bool { return r.mock }

// Reply produces the assistant's conversational answer for a transcript.
// Upstream failures come back wrapped in ErrUpstream, never as a silent
// empty reply.
func (r *Responder) Reply(ctx context.Context, msgs []Message, scope Scope) (string, error) {
	if r.mock {
		return mockReply(msgs, scope), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	text, err := r.generate(ctx, r.cfg.Model, r.cfg.APIKey, SystemPromptFor(scope), msgs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return strings.TrimSpace(text), nil
}

// mockReply is a small keyword heuristic for offline development.
func mockReply(msgs []Message, scope Scope) string {
	lastUser := ""
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			lastUser = msgs[i].Content
			break
		}
	}
	lu := strings.ToLower(lastUser)

	if scope == ScopeNutrition {
		switch {
		case strings.Contains(lu, "protein"):
			return "aim for roughly 0.7-1g of protein per pound of bodyweight per day, spread over 3-4 meals."
		case strings.Contains(lu, "calorie"), strings.Contains(lu, "cut"), strings.Contains(lu, "bulk"):
			return "tell me your bodyweight and goal (cut, maintain, bulk) and i'll sketch daily targets."
		default:
			return "what are you trying to dial in — protein, calories, or meal timing?"
		}
	}

	switch {
	case strings.Contains(lu, "plan"):
		return "cool — tell me your goal and how many days/week, and i'll draft a plan."
	case strings.Contains(lu, "bench"):
		return "try 3x5 at an rpe 7-8; add 2.5-5 lb next week if all reps move well."
	default:
		return "got it! what do you want to work on — strength, hypertrophy, or general fitness?"
	}
}
