package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the serialized form of a run, compared against golden
// files. Field order is fixed so the rendering is deterministic.
type Snapshot struct {
	Scenario string          `json:"scenario"`
	RunToken string          `json:"run_token,omitempty"`
	Version  string          `json:"version"`
	Status   string          `json:"status"`
	Events   []EventSnapshot `json:"events"`
}

// EventSnapshot is one trace entry in a snapshot.
type EventSnapshot struct {
	Step   string `json:"step"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Snapshot renders the result for golden comparison. The run token only
// appears when the scenario pinned one; a fresh UUID per run would never
// match a golden file.
func (r *Result) Snapshot(fixedToken bool) ([]byte, error) {
	snap := Snapshot{
		Scenario: r.Scenario,
		Version:  r.Version,
		Status:   r.Status,
		Events:   make([]EventSnapshot, len(r.Events)),
	}
	if fixedToken {
		snap.RunToken = r.RunToken
	}
	for i, ev := range r.Events {
		snap.Events[i] = EventSnapshot{Step: ev.Step, Detail: ev.Detail, Error: ev.Error}
	}

	// Resource and attribute spellings use angle brackets; HTML escaping
	// would garble the golden files.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the trace against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snap, err := result.Snapshot(scenario.RunToken != "")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snap)
	return nil
}
