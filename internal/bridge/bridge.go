// Package bridge is the pipeline's view of the third-party editor page.
// Every operation runs inside a foreign web page via browser automation, so
// each call is independently failable and time-bounded.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoPage is returned when no editor page is connected or the page did
// not answer in time; the pipeline reports it as "could not verify page
// state" rather than blocking.
var ErrNoPage = errors.New("bridge: could not verify page state")

// Diagnostic is one console entry read back from the editor page.
type Diagnostic struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// RunResult reports whether injected code was accepted and run.
type RunResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ConsoleResult carries the console diagnostics after a run.
type ConsoleResult struct {
	Success     bool         `json:"success"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// InspectResult carries map inspection data for a point.
type InspectResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Task is one platform task visible in the editor.
type Task struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// Bridge drives the editor page. RunCode, CheckConsole, and InspectPoint are
// on the pipeline's critical path; ListTasks and EditScript are optional
// conveniences.
type Bridge interface {
	RunCode(ctx context.Context, code string) (RunResult, error)
	CheckConsole(ctx context.Context) (ConsoleResult, error)
	InspectPoint(ctx context.Context, lon, lat float64) (InspectResult, error)
	ListTasks(ctx context.Context) ([]Task, error)
	EditScript(ctx context.Context, name, content string) error
}

// ErrorDiagnostics filters the console output down to error-level entries.
func ErrorDiagnostics(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Level == "error" {
			out = append(out, d)
		}
	}
	return out
}
