package riverpass

import (
	"testing"
	"time"
)

const testTick = 16 * time.Millisecond

type testScene struct {
	*Scene
	clock  *ManualClock
	events *EventRecorder
}

func newTestScene(t *testing.T, mutate func(*Config)) *testScene {
	t.Helper()
	clock := &ManualClock{}
	cfg := DefaultConfig()
	cfg.Clock = clock
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	t.Cleanup(s.Close)
	rec := &EventRecorder{}
	s.SetEventSink(rec)
	s.SetPointerSource(nil)
	s.Resize(1280, 720, 1)
	return &testScene{Scene: s, clock: clock, events: rec}
}

// tick advances the clock by one 16ms step and runs Update.
func (ts *testScene) tick(t *testing.T) {
	t.Helper()
	ts.clock.Advance(testTick)
	if err := ts.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func (ts *testScene) ticks(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ts.tick(t)
	}
}

// tickUntilRevealed runs ticks until the reveal finishes, failing after
// four seconds of scene time.
func (ts *testScene) tickUntilRevealed(t *testing.T) {
	t.Helper()
	for i := 0; i < 250; i++ {
		ts.tick(t)
		if ts.Reveal().Revealed() {
			return
		}
	}
	t.Fatal("reveal never finished")
}

func TestNewSceneInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative scale", func(c *Config) { c.River.Scale = -1 }},
		{"negative duration", func(c *Config) { c.Reveal.Duration = -time.Second }},
		{"bad fluid color", func(c *Config) { c.Fluid.FluidColor = "bogus" }},
		{"bad text color", func(c *Config) { c.Content.TextColor = "bogus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewScene(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSceneChainOrder(t *testing.T) {
	ts := newTestScene(t, nil)
	effects := ts.Chain().Effects()
	if len(effects) != 2 {
		t.Fatalf("stages = %d, want 2", len(effects))
	}
	if effects[0] != Effect(ts.River().Effect()) || effects[1] != Effect(ts.Fluid()) {
		t.Error("chain should run river then fluid")
	}

	noFluid := newTestScene(t, func(c *Config) { c.DisableFluid = true })
	if noFluid.Fluid() != nil || len(noFluid.Chain().Effects()) != 1 {
		t.Error("DisableFluid should leave only the river stage")
	}
}

func TestSceneRevealDrivesRiver(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.tick(t)
	if ts.River().Effect().Progress() != 1 {
		t.Errorf("first tick progress = %v, want 1", ts.River().Effect().Progress())
	}
	ts.ticks(t, 78) // 1248ms after start
	p := ts.River().Effect().Progress()
	if !approxEqual(p, 1-1248.0/2500, 1e-9) {
		t.Errorf("progress = %v, want %v", p, 1-1248.0/2500)
	}
	ts.tickUntilRevealed(t)
	if ts.River().Effect().Progress() != 0.01 {
		t.Errorf("final progress = %v, want 0.01", ts.River().Effect().Progress())
	}
	if ts.events.Count(EventRevealed) != 1 {
		t.Errorf("revealed events = %d, want 1", ts.events.Count(EventRevealed))
	}
	ts.ticks(t, 60)
	if ts.events.Count(EventRevealed) != 1 || ts.River().Effect().Progress() != 0.01 {
		t.Error("reveal ran again after the floor")
	}
	if ts.River().Effect().ElapsedTime() <= 0 {
		t.Error("river time should keep advancing")
	}
}

func TestSceneSequencerAfterReveal(t *testing.T) {
	ts := newTestScene(t, nil)
	for i := 0; i < 250 && !ts.Reveal().Revealed(); i++ {
		ts.tick(t)
		if ts.Reveal().Revealed() {
			break
		}
		for _, it := range ts.Sequencer().Items() {
			if it.Started() {
				t.Fatalf("%s started before the reveal finished", it.Name)
			}
		}
	}
	if !ts.Reveal().Revealed() {
		t.Fatal("reveal never finished")
	}

	ts.ticks(t, 150)
	if n := ts.events.Count(EventItemShown); n != len(ts.Sequencer().Items()) {
		t.Errorf("item-shown events = %d, want %d", n, len(ts.Sequencer().Items()))
	}
	for _, g := range ts.Sequencer().Groups() {
		prev := g.Container.VisibleAt()
		for _, c := range g.Children {
			if !c.Started() {
				t.Fatalf("%s never started", c.Name)
			}
			if c.VisibleAt() <= prev {
				t.Errorf("%s visible at %v, not after %v", c.Name, c.VisibleAt(), prev)
			}
			prev = c.VisibleAt()
		}
	}
	if !ts.Sequencer().Done() {
		t.Error("sequencer should have settled")
	}
}

func TestSceneHoverAndActivate(t *testing.T) {
	activated := 0
	ts := newTestScene(t, func(c *Config) { c.OnActivate = func() { activated++ } })
	ts.tickUntilRevealed(t)
	ts.ticks(t, 150)

	c := ts.Content().ButtonRect().Center()
	ts.InjectMove(c.X, c.Y)
	ts.tick(t)
	if !ts.Hovering() || !ts.Cursor().Hovering() {
		t.Fatal("pointer over the button should hover")
	}
	if ts.events.Count(EventHoverEnter) != 1 {
		t.Errorf("hover-enter = %d, want 1", ts.events.Count(EventHoverEnter))
	}

	ts.InjectClick(c.X, c.Y)
	ts.ticks(t, 2)
	if ts.events.Count(EventActivate) != 1 || activated != 1 {
		t.Errorf("activate events = %d callbacks = %d, want 1", ts.events.Count(EventActivate), activated)
	}

	ts.InjectMove(5, 5)
	ts.tick(t)
	if ts.Hovering() {
		t.Error("still hovering after leaving")
	}
	if ts.events.Count(EventHoverLeave) != 1 {
		t.Errorf("hover-leave = %d, want 1", ts.events.Count(EventHoverLeave))
	}
	if last := ts.events.Events[len(ts.events.Events)-1]; last.Target != ButtonTarget || last.X != 5 {
		t.Errorf("last event = %+v", last)
	}
}

func TestSceneReleaseOutsideDoesNotActivate(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.tick(t)
	ts.InjectPress(5, 5)
	ts.InjectMove(5, 5)
	ts.ticks(t, 2)
	if ts.events.Count(EventActivate) != 0 {
		t.Error("release away from the button activated it")
	}
}

func TestSceneMagnetPullsButton(t *testing.T) {
	ts := newTestScene(t, nil)
	base := ts.Content().ButtonBase().Center()
	ts.InjectMove(base.X+60, base.Y)
	ts.ticks(t, 1)
	ts.ticks(t, 120)
	if !approxEqual(ts.Magnet().DX, 25, 0.05) {
		t.Errorf("magnet DX = %v, want 25", ts.Magnet().DX)
	}
	r := ts.Content().ButtonRect()
	if !approxEqual(r.X-ts.Content().ButtonBase().X, ts.Magnet().DX, 1e-9) {
		t.Error("button rect does not follow the magnet")
	}
}

func TestSceneTouchHidesCursor(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.InjectMove(100, 100)
	ts.tick(t)
	if ts.Cursor().Hidden() {
		t.Fatal("mouse pointer should show the indicator")
	}
	ts.InjectTouch(100, 100, true)
	ts.tick(t)
	if !ts.Cursor().Hidden() {
		t.Error("touch should hide the indicator")
	}
}

func TestSceneSetRiverScale(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.ticks(t, 10)
	gen := ts.Chain().Generation()
	before := ts.River().Effect()
	progress := before.Progress()

	if err := ts.SetRiverScale(1.5); err != nil {
		t.Fatal(err)
	}
	if ts.Chain().Generation() != gen {
		t.Error("unchanged scale rebuilt the chain")
	}

	if err := ts.SetRiverScale(4); err != nil {
		t.Fatal(err)
	}
	if ts.Chain().Generation() != gen+1 {
		t.Errorf("Generation = %d, want %d", ts.Chain().Generation(), gen+1)
	}
	after := ts.River().Effect()
	if ts.Chain().Effects()[0] != Effect(after) || after == before {
		t.Error("chain does not hold the rebuilt river effect")
	}
	if after.ElapsedTime() != 0 || after.Progress() != progress {
		t.Errorf("rebuilt effect elapsed=%v progress=%v", after.ElapsedTime(), after.Progress())
	}

	ts.tick(t)
	if ts.Chain().Generation() != gen+1 {
		t.Error("progress updates should not rebuild the chain")
	}
	if ts.River().Effect().Progress() >= progress {
		t.Error("reveal should keep driving the rebuilt effect")
	}
}

func TestSceneResize(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.Resize(800, 600, 2)
	f := ts.Frame()
	if f.Width != 800 || f.Height != 600 {
		t.Errorf("frame = %vx%v", f.Width, f.Height)
	}
	if vp := ts.Parallax().Camera.Viewport; vp.Width != 800 || vp.Height != 600 {
		t.Errorf("camera viewport = %+v", vp)
	}
	if w, h := ts.Fluid().Sim().Size(); w != 128 || h != 96 {
		t.Errorf("fluid grid = %dx%d, want 128x96", w, h)
	}
	if ts.Cursor().ui != 2 {
		t.Errorf("cursor device scale = %v, want 2", ts.Cursor().ui)
	}
}

func TestSceneLayoutDeviceScale(t *testing.T) {
	ts := newTestScene(t, func(c *Config) { c.DeviceScale = 2 })
	w, h := ts.Layout(640, 360)
	if w != 1280 || h != 720 {
		t.Errorf("Layout = %dx%d, want 1280x720", w, h)
	}
}

func TestSceneClose(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.ticks(t, 5)
	ts.Close()
	if ts.Reveal().Scheduled() || ts.Parallax().Running() {
		t.Error("Close left callbacks scheduled")
	}
	frame := ts.Frame().Frame
	ts.tick(t)
	if ts.Frame().Frame != frame {
		t.Error("Update ran after Close")
	}
	ts.Close()
}
