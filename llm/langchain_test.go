package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// mockModel is a scripted llms.Model that records what it was called with.
type mockModel struct {
	responses []string
	callCount int
	messages  [][]llms.MessageContent
	opts      []llms.CallOptions
	err       error
}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = append(m.messages, messages)

	parsed := llms.CallOptions{}
	for _, opt := range options {
		opt(&parsed)
	}
	m.opts = append(m.opts, parsed)

	if m.err != nil {
		return nil, m.err
	}

	resp := "default response"
	if m.callCount < len(m.responses) {
		resp = m.responses[m.callCount]
	}
	m.callCount++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: resp}},
	}, nil
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func TestLangChainModelComplete(t *testing.T) {
	mock := &mockModel{responses: []string{"hello back"}}
	client := NewLangChainModel(mock)

	out, err := client.Complete(context.Background(), Request{
		Model: "gpt-4o",
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi"},
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "hello back" {
		t.Errorf("unexpected response %q", out)
	}

	sent := mock.messages[0]
	if len(sent) != 3 {
		t.Fatalf("expected 3 messages forwarded, got %d", len(sent))
	}
	wantRoles := []schema.ChatMessageType{
		schema.ChatMessageTypeSystem,
		schema.ChatMessageTypeHuman,
		schema.ChatMessageTypeAI,
	}
	for i, want := range wantRoles {
		if sent[i].Role != want {
			t.Errorf("message %d: expected role %s, got %s", i, want, sent[i].Role)
		}
	}
	if mock.opts[0].Model != "gpt-4o" {
		t.Errorf("model option not forwarded, got %q", mock.opts[0].Model)
	}
}

func TestLangChainModelJSONModeAndParams(t *testing.T) {
	mock := &mockModel{responses: []string{`{"a":1}`}}
	client := NewLangChainModel(mock)

	_, err := client.Complete(context.Background(), Request{
		Model:    "gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "extract"}},
		JSONMode: true,
		Params: map[string]any{
			"temperature": 0.3,
			"top_p":       0.9,
			"max_tokens":  128,
			"unknown":     "ignored",
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	opts := mock.opts[0]
	if !opts.JSONMode {
		t.Error("JSON mode not forwarded")
	}
	if opts.Temperature != 0.3 {
		t.Errorf("temperature not forwarded, got %v", opts.Temperature)
	}
	if opts.TopP != 0.9 {
		t.Errorf("top_p not forwarded, got %v", opts.TopP)
	}
	if opts.MaxTokens != 128 {
		t.Errorf("max_tokens not forwarded, got %v", opts.MaxTokens)
	}
}

func TestLangChainModelErrors(t *testing.T) {
	mock := &mockModel{err: errors.New("backend down")}
	client := NewLangChainModel(mock)

	_, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCompleteFunc(t *testing.T) {
	var seen Request
	client := CompleteFunc(func(_ context.Context, req Request) (string, error) {
		seen = req
		return "ok", nil
	})

	out, err := client.Complete(context.Background(), Request{Model: "m"})
	if err != nil || out != "ok" {
		t.Fatalf("CompleteFunc: %q %v", out, err)
	}
	if seen.Model != "m" {
		t.Errorf("request not forwarded, got %+v", seen)
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]any{
		"temperature": float32(0.5),
		"max_tokens":  float64(64),
		"top_p":       "not a number",
	}

	if v, ok := floatParam(params, "temperature"); !ok || v != 0.5 {
		t.Errorf("floatParam float32: %v %v", v, ok)
	}
	if n, ok := intParam(params, "max_tokens"); !ok || n != 64 {
		t.Errorf("intParam float64: %v %v", n, ok)
	}
	if _, ok := floatParam(params, "top_p"); ok {
		t.Error("floatParam should reject non-numeric values")
	}
	if _, ok := floatParam(params, "missing"); ok {
		t.Error("floatParam should miss absent keys")
	}
}
