package pipeline

import (
	"context"
	"errors"
	"strings"

	"geopilot/internal/bridge"
	"geopilot/internal/catalog"
	"geopilot/internal/feasibility"
	"geopilot/internal/llm"
)

const (
	invalidQueryResponse = "Please describe a geospatial analysis task before submitting."
	noDatasetsResponse   = "Could not find datasets in the catalog matching this request. Try naming the kind of data you need, such as elevation, imagery, or land cover."
	canceledResponse     = "The request was canceled before completion."
)

// Coord is a map point the runner may inspect after a successful run.
type Coord struct {
	Lon float64
	Lat float64
}

// Runner sequences the pipeline stages for one request at a time. Stages run
// strictly in order; each one's input depends on the previous one's output.
type Runner struct {
	Assessor  *feasibility.Assessor
	Plan      *PlanStage
	Select    *SelectStage
	Code      *CodeStage
	Debug     *DebugStage
	Summarize *SummarizeStage
	Bridge    bridge.Bridge

	// InspectAt, when set, samples the map at that point after a clean run.
	InspectAt *Coord
}

// NewRunner wires the default stage set over one model client, one catalog
// client, and one bridge.
func NewRunner(client llm.Client, cat *catalog.Client, br bridge.Bridge) *Runner {
	return &Runner{
		Assessor:  feasibility.New(),
		Plan:      &PlanStage{LLM: client},
		Select:    &SelectStage{LLM: client, Catalog: cat},
		Code:      &CodeStage{LLM: client},
		Debug:     &DebugStage{LLM: client},
		Summarize: &SummarizeStage{LLM: client},
		Bridge:    br,
	}
}

// Run executes the pipeline for one request and always returns a well-formed
// terminal response; stage failures are converted at the stage boundary,
// never propagated.
func (r *Runner) Run(ctx context.Context, request string) FinalResponse {
	st := newState(request)

	if strings.TrimSpace(request) == "" {
		st.appendLog("submit: rejected empty query")
		st.setResponse(invalidQueryResponse)
		return st.final()
	}

	// 1. Feasibility.
	verdict := r.Assessor.Assess(request)
	st.Verdict = &verdict
	if !verdict.Feasible {
		st.appendLog("assess: infeasible; stopping")
		st.setResponse(verdict.Explanation)
		return st.final()
	}
	st.appendLog("assess: feasible")

	// 2. Plan.
	planOut, err := r.Plan.Run(ctx, PlanIn{Request: request})
	if err != nil {
		return r.fail(st, "plan", err)
	}
	st.Plan = planOut.Plan
	st.appendLog("plan: ok (%d chars)", len(st.Plan))

	// 3. Dataset selection.
	selOut, err := r.Select.Run(ctx, SelectIn{Request: request, Plan: st.Plan})
	if err != nil {
		return r.fail(st, "select", err)
	}
	if len(selOut.Datasets) == 0 {
		st.appendLog("select: no matching datasets")
		st.setResponse(noDatasetsResponse)
		return st.final()
	}
	st.Datasets = selOut.Datasets
	st.appendLog("select: %d dataset(s), first %s", len(st.Datasets), st.Datasets[0].ID)

	// 4. Code generation.
	codeOut, err := r.Code.Run(ctx, CodeIn{Request: request, Plan: st.Plan, Datasets: st.Datasets})
	if err != nil {
		return r.fail(st, "generate", err)
	}
	st.Code = codeOut.Code
	st.appendLog("generate: %d bytes of code", len(st.Code))

	// 5. Execute, with at most one repair attempt.
	diags := r.execute(ctx, st)
	if len(diags) > 0 {
		dbgOut, err := r.Debug.Run(ctx, DebugIn{Code: st.Code, Diagnostics: diags})
		if err != nil {
			return r.fail(st, "debug", err)
		}
		st.Code = dbgOut.Code
		st.appendLog("debug: applied repaired script")
		if remaining := r.execute(ctx, st); len(remaining) > 0 {
			st.appendLog("execute: %d error(s) remain after repair; not retrying", len(remaining))
		}
	}

	// 6. Optional map inspection.
	if r.InspectAt != nil && st.ErrText == "" {
		if res, err := r.Bridge.InspectPoint(ctx, r.InspectAt.Lon, r.InspectAt.Lat); err != nil {
			st.appendLog("inspect: %v", err)
		} else if res.Success {
			st.Inspection = res.Data
			st.appendLog("inspect: sampled map at %.4f,%.4f", r.InspectAt.Lon, r.InspectAt.Lat)
		}
	}

	// 7. Summarize.
	sumOut, err := r.Summarize.Run(ctx, SummarizeIn{
		Request:    request,
		Code:       st.Code,
		Console:    st.ErrText,
		Inspection: st.Inspection,
	})
	if err != nil {
		return r.fail(st, "summarize", err)
	}
	st.setResponse(sumOut.Summary)
	st.appendLog("summarize: done")
	return st.final()
}

// execute runs the current code in the editor and reads back error-level
// console diagnostics. Bridge failures are reported and treated as "run not
// verified", never as fatal pipeline errors.
func (r *Runner) execute(ctx context.Context, st *State) []bridge.Diagnostic {
	res, err := r.Bridge.RunCode(ctx, st.Code)
	if err != nil {
		st.appendLog("execute: %v", err)
		return nil
	}
	if res.Message != "" {
		st.appendLog("execute: %s", res.Message)
	} else {
		st.appendLog("execute: run submitted")
	}

	console, err := r.Bridge.CheckConsole(ctx)
	if err != nil {
		st.appendLog("console: %v", err)
		return nil
	}
	errs := bridge.ErrorDiagnostics(console.Diagnostics)
	if len(errs) == 0 {
		st.ErrText = ""
		st.appendLog("console: clean")
		return nil
	}
	var lines []string
	for _, d := range errs {
		lines = append(lines, d.Message)
	}
	st.ErrText = strings.Join(lines, "\n")
	st.appendLog("console: %d error(s)", len(errs))
	return errs
}

// fail converts a stage error into the terminal response. Cancellation gets
// its own message so abandoned runs do not read like platform failures.
func (r *Runner) fail(st *State, stage string, err error) FinalResponse {
	werr := stageErr(stage, err)
	st.appendLog("%v", werr)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		st.setResponse(canceledResponse)
		return st.final()
	}
	st.setResponse("The " + stage + " step failed: " + err.Error() + ". Nothing was changed in the editor beyond what the log records.")
	return st.final()
}
