package riverpass

import (
	"encoding/json"
	"fmt"
)

// testStep is one action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"move":       true,
	"click":      true,
	"sweep":      true,
	"touch":      true,
	"wait":       true,
	"waitReveal": true,
	"scale":      true,
}

// TestRunner replays injected pointer input, waits and screenshots across
// ticks for automated visual checks. Attach with Scene.SetTestRunner.
type TestRunner struct {
	// ExitWhenDone ends the game loop once every step has run.
	ExitWhenDone bool

	steps      []testStep
	cursor     int
	waitCount  int
	waitReveal bool
	done       bool
	errs       []error
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner; its step runs at the start of each Update,
// before input is read.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the failures of steps that could not be applied.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the runner by one tick.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Let injected samples drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waitReveal {
		if !s.reveal.Revealed() {
			return
		}
		r.waitReveal = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "sweep":
		s.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touch":
		s.InjectTouch(st.X, st.Y, true)
		s.InjectTouch(st.X, st.Y, false)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "waitReveal":
		r.waitReveal = !s.reveal.Revealed()
	case "scale":
		if err := s.SetRiverScale(st.Scale); err != nil {
			r.errs = append(r.errs, fmt.Errorf("step %d: %w", r.cursor-1, err))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.waitReveal && len(s.injectQueue) == 0 {
		r.done = true
	}
}
