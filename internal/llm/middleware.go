package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"geopilot/internal/cache/memory"
)

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, logging, reply caching).
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate limiting --------

// RateLimit throttles calls with a token-bucket limiter.
// If rps <= 0 the limiter is disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		return &rateLimited{next: next, rl: newRPSLimiter(rps, burst)}
	}
}

type rateLimited struct {
	next Client
	rl   *rpsLimiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.next.Close()
}

func (c *rateLimited) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return "", err
	}
	return c.next.GenerateText(ctx, prompt, input)
}

func (c *rateLimited) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	return c.next.GenerateJSON(ctx, prompt, input)
}

// -------- Call logging --------

// LogCalls logs stage, duration, and payload sizes. Prompt and reply bodies
// are never logged; neither are credentials.
func LogCalls() Middleware {
	return func(next Client) Client {
		return &logged{next: next}
	}
}

type logged struct {
	next Client
}

func (c *logged) Name() string { return c.next.Name() }
func (c *logged) Close() error { return c.next.Close() }

func (c *logged) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	start := time.Now()
	out, err := c.next.GenerateText(ctx, prompt, input)
	logCall(ctx, c.next.Name(), "text", len(prompt), len(out), start, err)
	return out, err
}

func (c *logged) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	start := time.Now()
	out, err := c.next.GenerateJSON(ctx, prompt, input)
	logCall(ctx, c.next.Name(), "json", len(prompt), len(out), start, err)
	return out, err
}

func logCall(ctx context.Context, name, kind string, promptLen, replyLen int, start time.Time, err error) {
	if err != nil {
		log.Printf("llm %s %s stage=%s prompt=%dB err=%v", name, kind, StageFrom(ctx), promptLen, err)
		return
	}
	log.Printf("llm %s %s stage=%s prompt=%dB reply=%dB took=%s",
		name, kind, StageFrom(ctx), promptLen, replyLen, time.Since(start).Round(time.Millisecond))
}

// -------- Reply caching --------

// CacheReplies memoizes successful replies keyed by stage+prompt+input.
// Useful when a user resubmits an identical query within the TTL.
func CacheReplies(maxEntries int, ttl time.Duration) Middleware {
	return func(next Client) Client {
		return &cached{
			next:  next,
			text:  memory.NewLRUTTL[string, string](maxEntries, 0, ttl),
			jsons: memory.NewLRUTTL[string, json.RawMessage](maxEntries, 0, ttl),
		}
	}
}

type cached struct {
	next  Client
	text  *memory.LRUTTL[string, string]
	jsons *memory.LRUTTL[string, json.RawMessage]
}

func (c *cached) Name() string { return c.next.Name() }
func (c *cached) Close() error { return c.next.Close() }

func (c *cached) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	key := cacheKey(StageFrom(ctx), prompt, input)
	if v, ok := c.text.Get(key); ok {
		return v, nil
	}
	out, err := c.next.GenerateText(ctx, prompt, input)
	if err == nil {
		c.text.Set(key, out, len(out))
	}
	return out, err
}

func (c *cached) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	key := cacheKey(StageFrom(ctx), prompt, input)
	if v, ok := c.jsons.Get(key); ok {
		return v, nil
	}
	out, err := c.next.GenerateJSON(ctx, prompt, input)
	if err == nil {
		c.jsons.Set(key, out, len(out))
	}
	return out, err
}

func cacheKey(stage, prompt string, input any) string {
	h := sha256.New()
	h.Write([]byte(stage))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	if input != nil {
		b, _ := json.Marshal(input)
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))
}
