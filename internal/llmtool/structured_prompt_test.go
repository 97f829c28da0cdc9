package llmtool

import (
	"context"
	"strings"
	"testing"
)

func TestStructuredPromptBuilder_RendersSections(t *testing.T) {
	spec := StructuredPromptSpec{
		Purpose:      "Plan a geospatial analysis task.",
		Background:   "The plan guides dataset selection and code generation.",
		OutputFormat: "Plain text.",
		Language:     "English",
		OutputFields: []PromptField{
			{Name: "plan", Type: "string", Required: true, Description: "Numbered task plan."},
			{Name: "caveats", Type: "[]string", Required: false},
		},
		Constraints: []string{"No markdown."},
		Rules:       []string{"Be concise."},
		Assumptions: []string{"If unsure, say so."},
		Examples: []PromptExample{
			{InputJSON: `{"request":"x"}`, OutputJSON: `{"plan":"1. ..."}`},
		},
	}

	builder := StructuredPromptBuilder(spec)
	out, err := builder(context.Background(), map[string]any{"request": "elevation of the Grand Canyon"})
	if err != nil {
		t.Fatalf("builder error: %v", err)
	}

	wantSections := []string{
		"[PURPOSE]",
		"[BACKGROUND]",
		"[INPUT]",
		"[OUTPUT]",
		"[CONSTRAINTS]",
		"[RULES]",
		"[ASSUMPTIONS]",
		"[OUTPUT_FORMAT]",
		"[LANGUAGE]",
		"[EXAMPLES]",
	}
	for _, sec := range wantSections {
		if !strings.Contains(out, sec) {
			t.Fatalf("expected section %s in prompt", sec)
		}
	}
	if !strings.Contains(out, "elevation of the Grand Canyon") {
		t.Fatalf("expected input text embedded in prompt")
	}
}

func TestStructuredPromptBuilder_RequiresPurpose(t *testing.T) {
	spec := StructuredPromptSpec{
		OutputFields: []PromptField{{Name: "plan", Type: "string", Required: true}},
	}
	_, err := StructuredPromptBuilder(spec)(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "purpose") {
		t.Fatalf("expected purpose error, got %v", err)
	}
}

func TestStructuredPromptBuilder_RequiresOutputFields(t *testing.T) {
	spec := StructuredPromptSpec{Purpose: "x"}
	_, err := StructuredPromptBuilder(spec)(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "output fields") {
		t.Fatalf("expected output fields error, got %v", err)
	}
}

func TestApplyPresets_PrependConstraintsAndRules(t *testing.T) {
	spec := StructuredPromptSpec{
		Purpose:      "x",
		OutputFields: []PromptField{{Name: "plan", Type: "string", Required: true}},
		Constraints:  []string{"spec-constraint"},
		Rules:        []string{"spec-rule"},
	}
	applied := ApplyPresets(spec, PromptPreset{
		Constraints: []string{"preset-constraint"},
		Rules:       []string{"preset-rule"},
	})
	if len(applied.Constraints) != 2 || applied.Constraints[0] != "preset-constraint" {
		t.Fatalf("expected preset constraint prepended, got %+v", applied.Constraints)
	}
	if len(applied.Rules) != 2 || applied.Rules[0] != "preset-rule" {
		t.Fatalf("expected preset rule prepended, got %+v", applied.Rules)
	}
}

func TestFieldsFromStruct_UsesTags(t *testing.T) {
	type out struct {
		DatasetIDs []string `json:"dataset_ids" prompt_desc:"Chosen catalog ids, best first."`
		Reason     string   `json:"reason" prompt:"optional"`
		hidden     string
	}
	_ = out{}.hidden
	fields, err := FieldsFromStruct(out{})
	if err != nil {
		t.Fatalf("FieldsFromStruct: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "dataset_ids" || !fields[0].Required {
		t.Fatalf("unexpected first field: %+v", fields[0])
	}
	if fields[1].Name != "reason" || fields[1].Required {
		t.Fatalf("unexpected second field: %+v", fields[1])
	}
}
