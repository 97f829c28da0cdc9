package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"geopilot/internal/bridge"
	"geopilot/internal/catalog"
	"geopilot/internal/llm"
)

// newTestRunner wires a runner over fakes plus the built-in sample catalog
// (empty URL makes the client fall back to it).
func newTestRunner() (*Runner, *llm.FakeClient, *bridge.FakeBridge) {
	fc := llm.NewFakeClient()
	fb := bridge.NewFakeBridge()
	r := NewRunner(fc, catalog.NewClient("", 0), fb)
	return r, fc, fb
}

func errorConsole(msgs ...string) bridge.ConsoleResult {
	var ds []bridge.Diagnostic
	for _, m := range msgs {
		ds = append(ds, bridge.Diagnostic{Level: "error", Message: m})
	}
	return bridge.ConsoleResult{Success: true, Diagnostics: ds}
}

func hasLogEntry(resp FinalResponse, substr string) bool {
	for _, line := range resp.Log {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestRunEmptyRequest(t *testing.T) {
	r, fc, fb := newTestRunner()

	for _, req := range []string{"", "   ", "\n\t"} {
		resp := r.Run(context.Background(), req)
		if resp.Text != invalidQueryResponse {
			t.Fatalf("request %q: got %q", req, resp.Text)
		}
		if resp.Code != "" {
			t.Fatalf("request %q: unexpected code %q", req, resp.Code)
		}
	}
	if got := fc.Calls(); len(got) != 0 {
		t.Fatalf("empty requests must not reach the model, got calls %v", got)
	}
	if fb.RunCalls() != 0 {
		t.Fatalf("empty requests must not reach the bridge")
	}
}

func TestRunInfeasibleRequest(t *testing.T) {
	r, fc, fb := newTestRunner()

	resp := r.Run(context.Background(), "Find the best pizza restaurant in Tokyo")
	if resp.Text == "" {
		t.Fatal("infeasible run must still produce a response")
	}
	if resp.Code != "" {
		t.Fatalf("no code expected, got %q", resp.Code)
	}
	if hasLogEntry(resp, "plan:") {
		t.Fatalf("planning must not run after an infeasible verdict, log %v", resp.Log)
	}
	if got := fc.Calls(); len(got) != 0 {
		t.Fatalf("infeasible requests must not reach the model, got calls %v", got)
	}
	if fb.RunCalls() != 0 {
		t.Fatalf("infeasible requests must not reach the bridge")
	}
}

func TestRunHappyPath(t *testing.T) {
	r, fc, fb := newTestRunner()

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if resp.Text == "" {
		t.Fatal("expected a summary response")
	}
	if resp.Code == "" {
		t.Fatal("expected generated code")
	}
	if !hasLogEntry(resp, "assess: feasible") || !hasLogEntry(resp, "plan: ok") {
		t.Fatalf("log missing stage records: %v", resp.Log)
	}
	for _, stage := range []string{"plan", "select", "generate", "summarize"} {
		if fc.CallCount(stage) != 1 {
			t.Fatalf("stage %q called %d times", stage, fc.CallCount(stage))
		}
	}
	if fc.CallCount("debug") != 0 {
		t.Fatal("clean run must not invoke repair")
	}
	if fb.RunCalls() != 1 {
		t.Fatalf("expected one execution, got %d", fb.RunCalls())
	}
}

func TestRunSelectsRasterForElevation(t *testing.T) {
	r, _, _ := newTestRunner()

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if !hasLogEntry(resp, "select: ") {
		t.Fatalf("no selection record in log %v", resp.Log)
	}
	// The sample catalog answers "elevation" with SRTM first.
	if !hasLogEntry(resp, "USGS/SRTMGL1_003") {
		t.Fatalf("expected SRTM in selection log, got %v", resp.Log)
	}
}

func TestRunNoMatchingDatasets(t *testing.T) {
	r, fc, _ := newTestRunner()

	resp := r.Run(context.Background(), "geospatial study of qwxzyq blorbs")
	if resp.Text != noDatasetsResponse {
		t.Fatalf("got %q", resp.Text)
	}
	if resp.Code != "" {
		t.Fatalf("no code expected, got %q", resp.Code)
	}
	if fc.CallCount("generate") != 0 {
		t.Fatal("generation must not run without datasets")
	}
}

func TestRunRepairsOnce(t *testing.T) {
	r, fc, fb := newTestRunner()
	fb.ConsoleScript = []bridge.ConsoleResult{
		errorConsole("img.bandz is not a function"),
		{Success: true},
	}

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if resp.Text == "" {
		t.Fatal("expected a summary after repair")
	}
	if fc.CallCount("debug") != 1 {
		t.Fatalf("debug called %d times, want 1", fc.CallCount("debug"))
	}
	if fb.RunCalls() != 2 {
		t.Fatalf("expected exactly two executions, got %d", fb.RunCalls())
	}
	if !hasLogEntry(resp, "debug: applied repaired script") {
		t.Fatalf("log missing repair record: %v", resp.Log)
	}
}

func TestRunStopsAfterOneRepair(t *testing.T) {
	r, fc, fb := newTestRunner()
	fb.ConsoleScript = []bridge.ConsoleResult{
		errorConsole("ee.Image: not found"),
		errorConsole("ee.Image: still not found"),
	}

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if fc.CallCount("debug") != 1 {
		t.Fatalf("debug called %d times, want 1", fc.CallCount("debug"))
	}
	if fb.RunCalls() != 2 {
		t.Fatalf("expected exactly two executions, got %d", fb.RunCalls())
	}
	if !hasLogEntry(resp, "remain after repair") {
		t.Fatalf("log should state the repair limit was hit: %v", resp.Log)
	}
	if resp.Text == "" {
		t.Fatal("the run must still terminate with a summary")
	}
}

func TestRunBridgeUnavailable(t *testing.T) {
	r, fc, _ := newTestRunner()
	fb := bridge.NewFakeBridge()
	fb.RunErr = bridge.ErrNoPage
	r.Bridge = fb

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if resp.Text == "" {
		t.Fatal("a dead bridge must not kill the run")
	}
	if resp.Code == "" {
		t.Fatal("generated code should survive an unverified run")
	}
	if fc.CallCount("debug") != 0 {
		t.Fatal("nothing to repair when execution never happened")
	}
}

func TestRunStageFailure(t *testing.T) {
	r, fc, _ := newTestRunner()
	fc.Errs["plan"] = errors.New("model unavailable")

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if !strings.Contains(resp.Text, "The plan step failed") {
		t.Fatalf("got %q", resp.Text)
	}
	if fc.CallCount("select") != 0 {
		t.Fatal("later stages must not run after a failure")
	}
}

func TestRunCanceled(t *testing.T) {
	r, _, _ := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := r.Run(ctx, "Show me elevation data for the Grand Canyon")
	if resp.Text != canceledResponse {
		t.Fatalf("got %q", resp.Text)
	}
}

func TestRunInspectsPoint(t *testing.T) {
	r, _, fb := newTestRunner()
	fb.InspectData = json.RawMessage(`{"elevation": 2100}`)
	r.InspectAt = &Coord{Lon: -112.11, Lat: 36.1}

	resp := r.Run(context.Background(), "Show me elevation data for the Grand Canyon")
	if !hasLogEntry(resp, "inspect: sampled map") {
		t.Fatalf("log missing inspection record: %v", resp.Log)
	}
	if resp.Text == "" {
		t.Fatal("expected a summary response")
	}
}

func TestStateResponseWriteOnce(t *testing.T) {
	st := newState("anything")
	st.setResponse("first")
	st.setResponse("second")
	if got := st.final().Text; got != "first" {
		t.Fatalf("terminal response overwritten: %q", got)
	}
	if !st.terminal() {
		t.Fatal("state should be terminal")
	}
}

func TestStageErrorUnwraps(t *testing.T) {
	base := errors.New("boom")
	err := stageErr("select", base)
	if !errors.Is(err, base) {
		t.Fatal("wrapped cause lost")
	}
	if !strings.Contains(err.Error(), "select") {
		t.Fatalf("stage name missing from %q", err.Error())
	}
}
