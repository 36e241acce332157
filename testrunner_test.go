package riverpass

import (
	"errors"
	"strconv"
	"testing"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "waitReveal"},
			{"action": "screenshot", "label": "revealed"},
			{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 640, "toY": 360, "frames": 30},
			{"action": "click", "x": 640, "y": 400},
			{"action": "scale", "scale": 3},
			{"action": "wait", "frames": 3}
		]
	}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[2]; st.Action != "sweep" || st.ToX != 640 || st.Frames != 30 {
		t.Errorf("step 2 = %+v", st)
	}
	if runner.steps[4].Scale != 3 {
		t.Error("step 4 scale mismatch")
	}
}

func TestLoadTestScriptInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "explode"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadTestScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRunnerClickActivatesAfterReveal(t *testing.T) {
	ts := newTestScene(t, nil)
	c := ts.Content().ButtonBase().Center()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "waitReveal"},
		{"action": "wait", "frames": 120},
		{"action": "click", "x": ` + ftoa(c.X) + `, "y": ` + ftoa(c.Y) + `}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	ts.SetTestRunner(runner)
	for i := 0; i < 400 && !runner.Done(); i++ {
		ts.tick(t)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	ts.ticks(t, 2)
	if !ts.Reveal().Revealed() {
		t.Error("runner finished before the reveal")
	}
	if ts.events.Count(EventActivate) != 1 {
		t.Errorf("activate events = %d, want 1", ts.events.Count(EventActivate))
	}
}

func TestRunnerWait(t *testing.T) {
	ts := newTestScene(t, nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	ts.SetTestRunner(runner)
	ticks := 0
	for !runner.Done() && ticks < 10 {
		ts.tick(t)
		ticks++
	}
	if ticks != 4 {
		t.Errorf("ticks = %d, want 4", ticks)
	}
}

func TestRunnerScaleError(t *testing.T) {
	ts := newTestScene(t, nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "scale", "scale": -2}]}`))
	ts.SetTestRunner(runner)
	ts.ticks(t, 2)
	if len(runner.Errors()) != 1 || !errors.Is(runner.Errors()[0], ErrInvalidScale) {
		t.Errorf("errors = %v", runner.Errors())
	}
}

func TestRunnerExitWhenDone(t *testing.T) {
	ts := newTestScene(t, nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "move", "x": 1, "y": 1}]}`))
	runner.ExitWhenDone = true
	ts.SetTestRunner(runner)
	var err error
	for i := 0; i < 5 && err == nil; i++ {
		ts.clock.Advance(testTick)
		err = ts.Update()
	}
	if err == nil {
		t.Error("expected termination once the script finished")
	}
}
