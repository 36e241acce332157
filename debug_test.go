package riverpass

import "testing"

func TestSceneDebugMode(t *testing.T) {
	ts := newTestScene(t, nil)
	ts.SetDebugMode(true)
	ts.ticks(t, 3)
	if !ts.debug {
		t.Error("debug not enabled")
	}
	ts.SetDebugMode(false)
	ts.tick(t)
	if ts.debug {
		t.Error("debug not disabled")
	}
}

func TestSetShowFPS(t *testing.T) {
	ts := newTestScene(t, nil)
	if ts.fps != nil {
		t.Fatal("widget created before it was requested")
	}
	ts.SetShowFPS(true)
	if ts.fps == nil || !ts.showFPS {
		t.Fatal("widget not created")
	}
	w := ts.fps
	ts.SetShowFPS(false)
	ts.SetShowFPS(true)
	if ts.fps != w {
		t.Error("widget should be reused")
	}
}
