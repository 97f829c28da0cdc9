// Package pipeline turns one user request into a terminal response: a
// feasibility check, a task plan, selected datasets, generated code, an
// execute/inspect round-trip with at most one repair, and a summary.
package pipeline

import (
	"encoding/json"
	"fmt"
	"log"

	"geopilot/internal/catalog"
	"geopilot/internal/feasibility"
)

// FinalResponse is the terminal value of one pipeline run.
type FinalResponse struct {
	Text string   `json:"text"`
	Code string   `json:"code,omitempty"`
	Log  []string `json:"log"`
}

// State is the mutable record threaded through the stages of one run.
// It is created per run and discarded afterwards; nothing persists across
// sessions.
type State struct {
	Request    string
	Verdict    *feasibility.Verdict
	Plan       string
	Datasets   []catalog.Descriptor
	Code       string
	ErrText    string
	Inspection json.RawMessage
	Log        []string

	response string
}

func newState(request string) *State {
	return &State{Request: request}
}

func (s *State) appendLog(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.Log = append(s.Log, line)
	log.Printf("pipeline: %s", line)
}

// setResponse records the terminal response text. Once set it is never
// overwritten; later stages may only append to the log.
func (s *State) setResponse(text string) {
	if s.response != "" {
		s.appendLog("response already terminal; ignoring overwrite")
		return
	}
	s.response = text
}

func (s *State) terminal() bool { return s.response != "" }

func (s *State) final() FinalResponse {
	return FinalResponse{
		Text: s.response,
		Code: s.Code,
		Log:  s.Log,
	}
}
