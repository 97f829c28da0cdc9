package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeClient returns deterministic per-stage replies for offline runs and tests.
// Replies can be overridden per stage; unset stages fall back to canned output.
type FakeClient struct {
	mu          sync.Mutex
	TextReplies map[string]string
	JSONReplies map[string]json.RawMessage
	Errs        map[string]error
	calls       []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		TextReplies: map[string]string{},
		JSONReplies: map[string]json.RawMessage{},
		Errs:        map[string]error{},
	}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls returns the stages observed so far, in order.
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many calls the given stage issued.
func (f *FakeClient) CallCount(stage string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.calls {
		if s == stage {
			n++
		}
	}
	return n
}

func (f *FakeClient) record(stage string) {
	f.mu.Lock()
	f.calls = append(f.calls, stage)
	f.mu.Unlock()
}

func (f *FakeClient) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	stage := StageFrom(ctx)
	f.record(stage)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.Errs[stage]; ok {
		return "", err
	}
	if r, ok := f.TextReplies[stage]; ok {
		return r, nil
	}
	switch stage {
	case "plan":
		return "1. Load the requested dataset.\n2. Clip to the area of interest.\n3. Visualize on the map.", nil
	case "generate":
		return "```javascript\nvar img = ee.Image('FAKE/DATASET');\nMap.addLayer(img);\n```", nil
	case "debug":
		return "```javascript\nvar img = ee.Image('FAKE/DATASET');\nMap.addLayer(img, {}, 'fixed');\n```", nil
	case "summarize":
		return "The script loads the selected dataset and displays it on the map.", nil
	default:
		return "fake " + stage + " reply", nil
	}
}

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	stage := StageFrom(ctx)
	f.record(stage)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.Errs[stage]; ok {
		return nil, err
	}
	if r, ok := f.JSONReplies[stage]; ok {
		return r, nil
	}
	switch stage {
	case "select":
		return json.RawMessage(`{"dataset_ids": [], "reason": "fake ranking"}`), nil
	default:
		return json.RawMessage(`{}`), nil
	}
}
