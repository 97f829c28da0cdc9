package llm

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidJSON is returned when the model reply is not parseable JSON.
	ErrInvalidJSON = errors.New("llm: invalid JSON from model")
	// ErrEmptyReply is returned when the model produced no usable content.
	ErrEmptyReply = errors.New("llm: empty reply from model")
	// ErrMissingCredential is returned when no API key is available.
	ErrMissingCredential = errors.New("llm: missing API credential")
)

// Client is a hosted completion endpoint.
type Client interface {
	Name() string
	// GenerateText sends prompt plus JSON-encoded input and returns the
	// model's free-text reply.
	GenerateText(ctx context.Context, prompt string, input any) (string, error)
	// GenerateJSON is GenerateText with JSON output requested and validated.
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}
