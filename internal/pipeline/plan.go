package pipeline

import (
	"context"
	"strings"

	"geopilot/internal/llm"
	"geopilot/internal/llmtool"
)

var planPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:    "Break a natural-language geospatial request into a short ordered task plan.",
	Background: "The plan guides dataset selection and code generation for a web-based Earth observation code editor.",
	OutputFields: []llmtool.PromptField{
		{Name: "plan", Type: "string", Required: true, Description: "Numbered steps: data to load, processing, and how to present the result."},
	},
	Constraints: []string{
		"Three to six steps; each step one sentence.",
		"Name the kind of data needed (elevation, imagery, vector boundaries, climate) without inventing dataset ids.",
		"The final step must state what the user will see (map layer, chart, or printed value).",
	},
	OutputFormat: "Plain text, numbered lines.",
	Language:     "English",
}, llmtool.PresetCautious())

// PlanStage asks the model for a task plan.
type PlanStage struct {
	LLM llm.Client
}

type PlanIn struct {
	Request string `json:"request"`
}

type PlanOut struct {
	Plan string `json:"plan"`
}

func (p *PlanStage) Run(ctx context.Context, in PlanIn) (PlanOut, error) {
	ctx = llm.WithStage(ctx, "plan")
	prompt, err := llmtool.StructuredPromptBuilder(planPromptSpec)(ctx, in)
	if err != nil {
		return PlanOut{}, err
	}
	reply, err := p.LLM.GenerateText(ctx, prompt, in)
	if err != nil {
		return PlanOut{}, err
	}
	plan := strings.TrimSpace(reply)
	if plan == "" {
		return PlanOut{}, llm.ErrEmptyReply
	}
	return PlanOut{Plan: plan}, nil
}
