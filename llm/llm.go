package llm

import (
	"context"
	"errors"
)

// Message roles understood by completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyResponse is returned when the provider answers with no choices.
var ErrEmptyResponse = errors.New("llm: empty response")

// Message is a single chat message sent to the completion service.
type Message struct {
	Role    string
	Content string
}

// Request describes one completion call. The engine issues two kinds of
// requests per goal: free-text continuation and structured extraction,
// the latter with JSONMode set. Providers must honor a JSON-object
// response mode when JSONMode is requested.
type Request struct {
	// Model is the provider-specific model identifier.
	Model string

	// Messages is the ordered conversation to complete.
	Messages []Message

	// JSONMode requests a JSON-object response format.
	JSONMode bool

	// Params carries extra provider parameters. Recognized keys:
	// "temperature" (float64), "top_p" (float64), "max_tokens" (int).
	// Unknown keys are ignored.
	Params map[string]any
}

// Client is the model-completion collaborator. Calls are blocking and
// synchronous; the engine performs no retries of its own.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleteFunc adapts a plain function to the Client interface. Handy in
// tests and for scripted conversations.
type CompleteFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleteFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// floatParam fetches a float parameter accepting float64, float32 or int.
func floatParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// intParam fetches an integer parameter accepting int or float64.
func intParam(params map[string]any, key string) (int, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
