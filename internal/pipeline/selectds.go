package pipeline

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"geopilot/internal/catalog"
	"geopilot/internal/llm"
	"geopilot/internal/llmtool"
)

type selectReply struct {
	DatasetIDs []string `json:"dataset_ids" prompt_desc:"Chosen catalog ids from the candidates, best first."`
	Reason     string   `json:"reason" prompt:"optional" prompt_desc:"One sentence on why these fit the plan."`
}

var selectPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Rank candidate datasets for a geospatial task and pick the best few.",
	Background:   "Candidates come from a keyword search over the platform catalog; the model narrows them to the ones the plan actually needs.",
	OutputFields: llmtool.MustFieldsFromStruct(selectReply{}),
	Constraints: []string{
		"Choose ids only from the provided candidates.",
		"Order ids best-first; at most the requested count.",
		"Prefer datasets whose temporal coverage fits the request.",
	},
	OutputFormat: "JSON only.",
	Language:     "English",
}, llmtool.PresetStrictJSON(), llmtool.PresetNoInvent())

// SelectStage combines catalog search with a model ranking pass.
type SelectStage struct {
	LLM     llm.Client
	Catalog *catalog.Client
	Limit   int
}

type SelectIn struct {
	Request string `json:"request"`
	Plan    string `json:"plan"`
}

type SelectOut struct {
	Datasets []catalog.Descriptor `json:"datasets"`
}

func (s *SelectStage) Run(ctx context.Context, in SelectIn) (SelectOut, error) {
	ctx = llm.WithStage(ctx, "select")
	limit := s.Limit
	if limit <= 0 {
		limit = 3
	}

	tf := parseTimeframe(in.Request)
	candidates, err := s.searchCandidates(ctx, in.Request, tf)
	if err != nil {
		return SelectOut{}, err
	}
	if len(candidates) == 0 {
		return SelectOut{}, nil
	}

	chosen := s.rankWithModel(ctx, in, candidates, limit)
	if len(chosen) == 0 {
		// Model ranking unusable; keep catalog score order.
		chosen = candidates
	}
	if len(chosen) > limit {
		chosen = chosen[:limit]
	}
	return SelectOut{Datasets: chosen}, nil
}

// searchCandidates unions per-keyword search results, preserving the order
// in which datasets first appear.
func (s *SelectStage) searchCandidates(ctx context.Context, request string, tf catalog.Timeframe) ([]catalog.Descriptor, error) {
	seen := map[string]bool{}
	var out []catalog.Descriptor
	for _, term := range searchTerms(request) {
		found, err := s.Catalog.Search(ctx, term, tf)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			if !seen[d.ID] {
				seen[d.ID] = true
				out = append(out, d)
			}
		}
	}
	return out, nil
}

// rankWithModel asks the model to pick ids from the candidates; ids not in
// the candidate set are dropped. Any model failure degrades to nil so the
// caller can fall back to catalog order.
func (s *SelectStage) rankWithModel(ctx context.Context, in SelectIn, candidates []catalog.Descriptor, limit int) []catalog.Descriptor {
	type candidate struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	input := struct {
		Request    string      `json:"request"`
		Plan       string      `json:"plan"`
		Count      int         `json:"count"`
		Candidates []candidate `json:"candidates"`
	}{Request: in.Request, Plan: in.Plan, Count: limit}
	for _, d := range candidates {
		input.Candidates = append(input.Candidates, candidate{
			ID: d.ID, Title: d.Title, Type: string(d.Type), Description: d.Description,
		})
	}

	prompt, err := llmtool.StructuredPromptBuilder(selectPromptSpec)(ctx, input)
	if err != nil {
		return nil
	}
	raw, err := s.LLM.GenerateJSON(ctx, prompt, input)
	if err != nil {
		return nil
	}
	var reply selectReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil
	}

	byID := make(map[string]catalog.Descriptor, len(candidates))
	for _, d := range candidates {
		byID[d.ID] = d
	}
	var out []catalog.Descriptor
	for _, id := range reply.DatasetIDs {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "show": true, "me": true,
	"of": true, "in": true, "a": true, "an": true, "to": true,
	"what": true, "whats": true, "is": true, "are": true, "with": true,
	"over": true, "from": true, "near": true, "around": true, "please": true,
	"how": true, "much": true, "many": true,
}

var wordRe = regexp.MustCompile(`[a-zA-Z]{3,}`)

// searchTerms extracts lowercase keywords worth searching the catalog for.
func searchTerms(request string) []string {
	var out []string
	seen := map[string]bool{}
	for _, w := range wordRe.FindAllString(strings.ToLower(request), -1) {
		if stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// parseTimeframe pulls an optional year range out of the request text.
// One year means that calendar year; several mean min..max.
func parseTimeframe(request string) catalog.Timeframe {
	years := yearRe.FindAllString(request, -1)
	if len(years) == 0 {
		return catalog.Timeframe{}
	}
	minY, maxY := 9999, 0
	for _, y := range years {
		n, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if n < minY {
			minY = n
		}
		if n > maxY {
			maxY = n
		}
	}
	return catalog.Timeframe{
		Start: time.Date(minY, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(maxY, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}
