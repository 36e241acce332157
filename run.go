package riverpass

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int // logical window width, default 1280
	Height int // logical window height, default 720
	// TPS is the update rate, default 60.
	TPS int
	// ShowFPS overlays the FPS/TPS widget.
	ShowFPS bool
	// Debug prints per-frame timings to stderr.
	Debug bool
}

// Run opens a resizable window and runs scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	scene.SetShowFPS(cfg.ShowFPS)
	scene.SetDebugMode(cfg.Debug)
	defer scene.Close()

	if err := ebiten.RunGame(scene); err != nil {
		return fmt.Errorf("riverpass: run: %w", err)
	}
	return nil
}
