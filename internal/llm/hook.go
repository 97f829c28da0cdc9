package llm

import (
	"context"
	"encoding/json"
)

// PromptHook observes completion calls, e.g. for tracing or prompt capture.
type PromptHook interface {
	Before(ctx context.Context, stage, prompt string, input any)
	After(ctx context.Context, stage string, reply string, err error)
}

type ctxKeyHook struct{}
type ctxKeyStage struct{}

// WithHook attaches a PromptHook to every call through the returned client.
func WithHook(base Client, hook PromptHook) Client {
	return &hooked{base: base, hook: hook}
}

type hooked struct {
	base Client
	hook PromptHook
}

func (h *hooked) Name() string { return h.base.Name() }
func (h *hooked) Close() error { return h.base.Close() }

func (h *hooked) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	stage := StageFrom(ctx)
	h.hook.Before(ctx, stage, prompt, input)
	out, err := h.base.GenerateText(ctx, prompt, input)
	h.hook.After(ctx, stage, out, err)
	return out, err
}

func (h *hooked) GenerateJSON(ctx context.Context, prompt string, input any) (raw json.RawMessage, err error) {
	stage := StageFrom(ctx)
	h.hook.Before(ctx, stage, prompt, input)
	raw, err = h.base.GenerateJSON(ctx, prompt, input)
	h.hook.After(ctx, stage, string(raw), err)
	return raw, err
}

// WithStage tags the context with the pipeline stage issuing the call.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, ctxKeyStage{}, stage)
}

// StageFrom returns the stage string stored in the context.
func StageFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyStage{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
