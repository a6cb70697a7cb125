package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/careercoach/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("Question 1: What is Go?"),
	)

	resp1, err := mock.Generate(context.Background(), UserPrompt("first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), UserPrompt("second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "Question 1: What is Go?" {
		t.Fatalf("unexpected text %q", resp2.Text())
	}
	if mock.LastPrompt() != "second" {
		t.Fatalf("expected last prompt 'second', got %q", mock.LastPrompt())
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestResponse_TextTrimsAndIsNilSafe(t *testing.T) {
	var nilResp *Response
	if nilResp.Text() != "" {
		t.Fatal("nil response should yield empty text")
	}
	r := &Response{Content: json.RawMessage("\n  Dear hiring manager,\n\n")}
	if r.Text() != "Dear hiring manager," {
		t.Fatalf("got %q", r.Text())
	}
}

func TestUserPrompt(t *testing.T) {
	req := UserPrompt("write a resume")
	if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser || req.Messages[0].Content != "write a resume" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestFinish(t *testing.T) {
	schema := &Schema{
		Name: "finish-test",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"summary": map[string]any{"type": "string"}},
			"required":   []any{"summary"},
		},
	}

	t.Run("raw text passes through", func(t *testing.T) {
		resp, err := finish(UserPrompt("x"), json.RawMessage("plain text"), Usage{}, "m", "max_tokens")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StopReason != "max_tokens" {
			t.Fatalf("stop reason lost: %q", resp.StopReason)
		}
	})

	t.Run("truncated structured output", func(t *testing.T) {
		req := Request{Schema: schema}
		_, err := finish(req, json.RawMessage(`{"summ`), Usage{}, "m", "max_tokens")
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
		}
	})

	t.Run("schema mismatch", func(t *testing.T) {
		req := Request{Schema: schema}
		_, err := finish(req, json.RawMessage(`{"other":1}`), Usage{}, "m", "end")
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("valid structured output", func(t *testing.T) {
		req := Request{Schema: schema}
		resp, err := finish(req, json.RawMessage(`{"summary":"ok"}`), Usage{TotalTokens: 3}, "m", "end")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Model != "m" || resp.Usage.TotalTokens != 3 {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeCoverLetter)
	if p := PurposeFrom(ctx); p != PurposeCoverLetter {
		t.Fatalf("expected %q, got %q", PurposeCoverLetter, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "or-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CAREERCOACH_LLM_PROVIDER", "openai")
	t.Setenv("CAREERCOACH_OPENAI_API_KEY", "sk-env")
	t.Setenv("CAREERCOACH_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("CAREERCOACH_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Fatalf("default gemini model lost: %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig_PrefersGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (s *recordingSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, data)
	return s.err
}

func TestLogging_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("Dear team"),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	sink := &recordingSink{}
	p := WithLogging(mock, "mock", sink)

	ctx := WithPurpose(context.Background(), PurposeCoverLetter)
	if _, err := p.Generate(ctx, Request{System: "be brief", Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Purpose != PurposeCoverLetter || !ev.Success || ev.InputTokens != 12 || ev.ResponseBody != "Dear team" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.RequestBody != "[system]\nbe brief\n\n[user]\nhi\n\n" {
		t.Fatalf("unexpected request body %q", ev.RequestBody)
	}
}

func TestLogging_SinkFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(TextResponse("ok"))
	sink := &recordingSink{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", sink)

	if _, err := p.Generate(context.Background(), UserPrompt("x")); err != nil {
		t.Fatalf("sink error leaked: %v", err)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	sink := &recordingSink{}
	p := WithLogging(mock, "mock", sink)

	if _, err := p.Generate(context.Background(), UserPrompt("x")); err == nil {
		t.Fatal("expected error")
	}
	if sink.events[0].Success || sink.events[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", sink.events[0])
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if WithTimeout(slowProvider{}, 0) != (slowProvider{}) {
		t.Fatal("zero timeout should return the provider unchanged")
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.5-flash"); c == nil || c.OutputPerMTok != 2.5 {
		t.Fatalf("unexpected cost: %+v", c)
	}
	if c := LookupCost("google/gemini-2.5-flash"); c == nil {
		t.Fatal("openrouter slug should resolve")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("unknown model should return nil")
	}

	cost := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}.Cost(1_000_000, 200_000)
	if cost != 2 {
		t.Fatalf("expected 2.0, got %f", cost)
	}
}
