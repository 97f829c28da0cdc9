package pipeline

import (
	"context"
	"strings"

	"geopilot/internal/bridge"
	"geopilot/internal/llm"
	"geopilot/internal/llmtool"
)

var debugPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:    "Repair editor script code that failed, using the console error output.",
	Background: "The code ran in the platform's web editor and produced the given console errors; return a corrected version of the whole script.",
	OutputFields: []llmtool.PromptField{
		{Name: "code", Type: "string", Required: true, Description: "The full corrected script inside one fenced code block."},
	},
	Constraints: []string{
		"Return the complete script, not a diff.",
		"Fix the reported errors; do not restructure working parts.",
	},
	OutputFormat: "One fenced code block.",
	Language:     "English",
}, llmtool.PresetCodeBlock(), llmtool.PresetNoInvent())

// DebugStage asks the model for a repaired script given console errors.
type DebugStage struct {
	LLM llm.Client
}

type DebugIn struct {
	Code        string              `json:"code"`
	Diagnostics []bridge.Diagnostic `json:"diagnostics"`
}

type DebugOut struct {
	Code string `json:"code"`
}

func (d *DebugStage) Run(ctx context.Context, in DebugIn) (DebugOut, error) {
	ctx = llm.WithStage(ctx, "debug")
	prompt, err := llmtool.StructuredPromptBuilder(debugPromptSpec)(ctx, in)
	if err != nil {
		return DebugOut{}, err
	}
	reply, err := d.LLM.GenerateText(ctx, prompt, in)
	if err != nil {
		return DebugOut{}, err
	}
	code := llmtool.ExtractCode(reply)
	if strings.TrimSpace(code) == "" {
		return DebugOut{}, llm.ErrEmptyReply
	}
	return DebugOut{Code: code}, nil
}
