package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/config"
)

func TestNewResponderModeSelection(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.AIConfig
		mock bool
	}{
		{"mock flag", config.AIConfig{Mock: true, APIKey: "k"}, true},
		{"no api key", config.AIConfig{Mock: false}, true},
		{"live", config.AIConfig{Mock: false, APIKey: "k"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewResponder(tc.cfg).Mock(); got != tc.mock {
				t.Fatalf("Mock() = %v; want %v", got, tc.mock)
			}
		})
	}
}

func TestReplyMock(t *testing.T) {
	r := NewResponder(config.AIConfig{Mock: true})

	reply, err := r.Reply(context.Background(), []Message{userMsg("help me plan my week")}, ScopePlanning)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "plan") {
		t.Fatalf("reply = %q; want the planning stub", reply)
	}

	reply, err = r.Reply(context.Background(), []Message{userMsg("how much protein do I need")}, ScopeNutrition)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "protein") {
		t.Fatalf("reply = %q; want the protein stub", reply)
	}
}

func TestReplyLiveWrapsUpstreamErrors(t *testing.T) {
	r := &Responder{
		cfg: config.AIConfig{APIKey: "k", Model: "m", Timeout: time.Second},
		generate: func(ctx context.Context, model, apiKey, systemPrompt string, msgs []Message) (string, error) {
			return "", errors.New("boom")
		},
	}

	_, err := r.Reply(context.Background(), []Message{userMsg("hi")}, ScopeGeneral)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v; want ErrUpstream", err)
	}
}

func TestReplyLiveEmptyCompletionIsUpstreamError(t *testing.T) {
	r := &Responder{
		cfg: config.AIConfig{APIKey: "k", Model: "m", Timeout: time.Second},
		generate: func(ctx context.Context, model, apiKey, systemPrompt string, msgs []Message) (string, error) {
			return "   \n", nil
		},
	}

	_, err := r.Reply(context.Background(), []Message{userMsg("hi")}, ScopeGeneral)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v; want ErrUpstream", err)
	}
}

func TestReplyLivePassesScopedPromptAndTrims(t *testing.T) {
	var gotPrompt string
	var gotModel string
	r := &Responder{
		cfg: config.AIConfig{APIKey: "k", Model: "test-model", Timeout: time.Second},
		generate: func(ctx context.Context, model, apiKey, systemPrompt string, msgs []Message) (string, error) {
			gotModel = model
			gotPrompt = systemPrompt
			if _, ok := ctx.Deadline(); !ok {
				t.Error("live call should carry a deadline")
			}
			return "  all good  ", nil
		},
	}

	reply, err := r.Reply(context.Background(), []Message{userMsg("hi")}, ScopeNutrition)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if reply != "all good" {
		t.Fatalf("reply = %q; want trimmed text", reply)
	}
	if gotModel != "test-model" {
		t.Fatalf("model = %q", gotModel)
	}
	if gotPrompt != SystemPromptFor(ScopeNutrition) {
		t.Fatalf("system prompt not scoped: %q", gotPrompt)
	}
}
