package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// LangChainModel adapts any langchaingo llms.Model to the Client
// interface, so every backend langchaingo supports can drive a goal
// chain without further glue.
type LangChainModel struct {
	model llms.Model
}

var _ Client = (*LangChainModel)(nil)

// NewLangChainModel wraps a langchaingo model.
func NewLangChainModel(model llms.Model) *LangChainModel {
	return &LangChainModel{model: model}
}

// Complete performs one blocking GenerateContent call.
func (l *LangChainModel) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		var role schema.ChatMessageType
		switch m.Role {
		case RoleSystem:
			role = schema.ChatMessageTypeSystem
		case RoleAssistant:
			role = schema.ChatMessageTypeAI
		default:
			role = schema.ChatMessageTypeHuman
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	var opts []llms.CallOption
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	if t, ok := floatParam(req.Params, "temperature"); ok {
		opts = append(opts, llms.WithTemperature(t))
	}
	if p, ok := floatParam(req.Params, "top_p"); ok {
		opts = append(opts, llms.WithTopP(p))
	}
	if n, ok := intParam(req.Params, "max_tokens"); ok {
		opts = append(opts, llms.WithMaxTokens(n))
	}

	resp, err := l.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("langchaingo completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
