package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"geopilot/internal/llm"
	"geopilot/internal/llmtool"
)

var summaryPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:    "Explain in plain language what the final script does and what the user should see.",
	Background: "The script answers the user's geospatial request; the explanation is shown alongside the code in the extension.",
	OutputFields: []llmtool.PromptField{
		{Name: "summary", Type: "string", Required: true, Description: "A short paragraph a non-programmer can follow."},
	},
	Constraints: []string{
		"No code in the reply.",
		"Mention the datasets used by their plain names.",
		"If execution was not verified, say the result could not be confirmed in the editor.",
	},
	OutputFormat: "Plain text.",
	Language:     "English",
}, llmtool.PresetCautious())

// SummarizeStage produces the narrative part of the terminal response.
type SummarizeStage struct {
	LLM llm.Client
}

type SummarizeIn struct {
	Request    string          `json:"request"`
	Code       string          `json:"code"`
	Console    string          `json:"console,omitempty"`
	Inspection json.RawMessage `json:"inspection,omitempty"`
}

type SummarizeOut struct {
	Summary string `json:"summary"`
}

func (s *SummarizeStage) Run(ctx context.Context, in SummarizeIn) (SummarizeOut, error) {
	ctx = llm.WithStage(ctx, "summarize")
	prompt, err := llmtool.StructuredPromptBuilder(summaryPromptSpec)(ctx, in)
	if err != nil {
		return SummarizeOut{}, err
	}
	reply, err := s.LLM.GenerateText(ctx, prompt, in)
	if err != nil {
		return SummarizeOut{}, err
	}
	summary := strings.TrimSpace(reply)
	if summary == "" {
		return SummarizeOut{}, llm.ErrEmptyReply
	}
	return SummarizeOut{Summary: summary}, nil
}
