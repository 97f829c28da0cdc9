package bridge

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeBridge is a scripted Bridge for pipeline tests. ConsoleScript entries
// are consumed one per CheckConsole call; when exhausted, a clean console is
// reported.
type FakeBridge struct {
	mu sync.Mutex

	RunErr        error
	RunResults    []RunResult
	ConsoleScript []ConsoleResult
	InspectData   json.RawMessage

	runCalls     int
	consoleCalls int
	inspectCalls int
}

func NewFakeBridge() *FakeBridge { return &FakeBridge{} }

func (f *FakeBridge) RunCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runCalls
}

func (f *FakeBridge) ConsoleCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consoleCalls
}

func (f *FakeBridge) RunCode(_ context.Context, code string) (RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.runCalls
	f.runCalls++
	if f.RunErr != nil {
		return RunResult{}, f.RunErr
	}
	if n < len(f.RunResults) {
		return f.RunResults[n], nil
	}
	return RunResult{Success: true, Message: "ok"}, nil
}

func (f *FakeBridge) CheckConsole(_ context.Context) (ConsoleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.consoleCalls
	f.consoleCalls++
	if n < len(f.ConsoleScript) {
		return f.ConsoleScript[n], nil
	}
	return ConsoleResult{Success: true}, nil
}

func (f *FakeBridge) InspectPoint(_ context.Context, lon, lat float64) (InspectResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inspectCalls++
	if len(f.InspectData) == 0 {
		return InspectResult{Success: false}, nil
	}
	return InspectResult{Success: true, Data: f.InspectData}, nil
}

func (f *FakeBridge) ListTasks(_ context.Context) ([]Task, error) {
	return nil, nil
}

func (f *FakeBridge) EditScript(_ context.Context, _, _ string) error {
	return nil
}
