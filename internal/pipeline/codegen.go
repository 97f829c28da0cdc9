package pipeline

import (
	"context"
	"strings"

	"geopilot/internal/catalog"
	"geopilot/internal/llm"
	"geopilot/internal/llmtool"
)

var codePromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:    "Write editor script code implementing the task plan with the selected datasets.",
	Background: "The code runs unmodified in the platform's web code editor; it loads the given datasets, processes them per the plan, and displays the result.",
	OutputFields: []llmtool.PromptField{
		{Name: "code", Type: "string", Required: true, Description: "Complete script inside one fenced code block."},
	},
	Constraints: []string{
		"Use only the dataset ids provided in the input.",
		"Add a map layer or print statement so the result is visible.",
		"Keep the script self-contained; no external imports or saved assets.",
	},
	OutputFormat: "One fenced code block.",
	Language:     "English",
}, llmtool.PresetCodeBlock(), llmtool.PresetNoInvent())

// CodeStage generates script code from the plan and chosen datasets.
type CodeStage struct {
	LLM llm.Client
}

type CodeIn struct {
	Request  string               `json:"request"`
	Plan     string               `json:"plan"`
	Datasets []catalog.Descriptor `json:"datasets"`
}

type CodeOut struct {
	Code string `json:"code"`
}

func (c *CodeStage) Run(ctx context.Context, in CodeIn) (CodeOut, error) {
	ctx = llm.WithStage(ctx, "generate")
	prompt, err := llmtool.StructuredPromptBuilder(codePromptSpec)(ctx, in)
	if err != nil {
		return CodeOut{}, err
	}
	reply, err := c.LLM.GenerateText(ctx, prompt, in)
	if err != nil {
		return CodeOut{}, err
	}
	code := llmtool.ExtractCode(reply)
	if strings.TrimSpace(code) == "" {
		return CodeOut{}, llm.ErrEmptyReply
	}
	return CodeOut{Code: code}, nil
}
