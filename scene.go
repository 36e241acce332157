package riverpass

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RiverConfig configures the river pass.
type RiverConfig struct {
	// Scale is the spatial frequency multiplier. Default 1.5.
	Scale float64
}

// Config gathers every component's configuration. Zero values take the
// component defaults.
type Config struct {
	River     RiverConfig
	Reveal    RevealConfig
	Fluid     FluidConfig
	Parallax  ParallaxConfig
	Cursor    CursorConfig
	Magnet    MagnetConfig
	Sequencer SequencerConfig
	Content   ContentConfig

	// DisableFluid drops the fluid stage from the chain.
	DisableFluid bool

	// Layers are the parallax images, back to front. Nil entries are
	// simulated but not drawn.
	Layers []*ebiten.Image

	// Clock defaults to the system monotonic clock.
	Clock Clock

	// DeviceScale overrides the monitor's device scale factor when > 0.
	DeviceScale float64

	// OnActivate runs when the RSVP button is clicked.
	OnActivate func()
}

// DefaultConfig returns the stock scene configuration.
func DefaultConfig() Config {
	return Config{
		River:     RiverConfig{Scale: 1.5},
		Reveal:    DefaultRevealConfig(),
		Fluid:     DefaultFluidConfig(),
		Parallax:  DefaultParallaxConfig(),
		Cursor:    DefaultCursorConfig(),
		Magnet:    DefaultMagnetConfig(),
		Sequencer: DefaultSequencerConfig(),
		Content:   DefaultContentConfig(),
	}
}

// Scene is the complete invitation scene. It implements ebiten.Game.
type Scene struct {
	cfg   Config
	clock Clock
	frame FrameState
	sched *FrameScheduler

	reveal   *Reveal
	river    *RiverPass
	fluid    *FluidEffect
	chain    *EffectChain
	parallax *Parallax
	cursor   *PointerIndicator
	magnet   *MagneticHover
	seq      *Sequencer
	content  *Content

	sink  EventSink
	debug bool

	// Input state.
	pointer     PointerSource
	injectQueue []PointerSample
	pressed     bool
	pressedPrev bool
	hovering    bool
	cursorShown bool
	startedBuf  []bool

	// Render state.
	sceneBuf    *ebiten.Image
	ui          float64
	chainFailed bool
	started     bool
	closed      bool

	// Diagnostics.
	showFPS         bool
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
	fps             *fpsWidget
}

// NewScene builds a scene. It fails only on invalid configuration.
func NewScene(cfg Config) (*Scene, error) {
	def := DefaultConfig()
	if cfg.River.Scale == 0 {
		cfg.River.Scale = def.River.Scale
	}
	if cfg.Clock == nil {
		cfg.Clock = NewSystemClock()
	}

	s := &Scene{
		cfg:           cfg,
		clock:         cfg.Clock,
		sched:         NewFrameScheduler(),
		pointer:       NewEbitenPointer(),
		ui:            1,
		ScreenshotDir: "screenshots",
	}

	var err error
	if s.reveal, err = NewReveal(s.sched, cfg.Reveal); err != nil {
		return nil, err
	}
	if s.river, err = NewRiverPass(cfg.River.Scale, 1); err != nil {
		return nil, err
	}
	effects := []Effect{s.river.Effect()}
	if !cfg.DisableFluid {
		if s.fluid, err = NewFluidEffect(cfg.Fluid, 16, 9); err != nil {
			return nil, err
		}
		effects = append(effects, s.fluid)
	}
	s.chain = NewEffectChain(effects...)

	s.cursor = NewPointerIndicator(cfg.Cursor)
	s.magnet = NewMagneticHover(cfg.Magnet)
	s.seq = NewSequencer(cfg.Sequencer)
	if s.content, err = NewContent(cfg.Content, s.seq); err != nil {
		return nil, err
	}

	cam := NewCamera(Rect{Width: 1, Height: 1})
	s.parallax = NewParallax(cfg.Parallax, &s.frame, cam, cfg.Layers)

	s.reveal.OnProgress(s.river.SetProgress)
	s.reveal.OnRevealed(func(time.Duration) {
		s.seq.SetRevealed(true)
		s.emit(EventRevealed, "")
	})
	return s, nil
}

// Frame returns the shared per-tick state.
func (s *Scene) Frame() *FrameState { return &s.frame }

// Reveal returns the reveal state machine.
func (s *Scene) Reveal() *Reveal { return s.reveal }

// River returns the river pass.
func (s *Scene) River() *RiverPass { return s.river }

// Fluid returns the fluid stage, or nil when disabled.
func (s *Scene) Fluid() *FluidEffect { return s.fluid }

// Chain returns the effect chain.
func (s *Scene) Chain() *EffectChain { return s.chain }

// Parallax returns the layer renderer.
func (s *Scene) Parallax() *Parallax { return s.parallax }

// Cursor returns the pointer indicator.
func (s *Scene) Cursor() *PointerIndicator { return s.cursor }

// Magnet returns the button's magnetic hover.
func (s *Scene) Magnet() *MagneticHover { return s.magnet }

// Sequencer returns the content reveal sequencer.
func (s *Scene) Sequencer() *Sequencer { return s.seq }

// Content returns the text overlay.
func (s *Scene) Content() *Content { return s.content }

// Hovering reports whether the pointer is over the RSVP button.
func (s *Scene) Hovering() bool { return s.hovering }

// ChainDisabled reports whether the effect chain failed and the scene fell
// back to unfiltered rendering.
func (s *Scene) ChainDisabled() bool { return s.chainFailed }

// SetEventSink sets the optional event receiver.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetPointerSource replaces the hardware pointer. Nil disables hardware
// input; injected samples still work.
func (s *Scene) SetPointerSource(src PointerSource) {
	s.pointer = src
}

// SetDebugMode enables or disables per-frame timing output on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetRiverScale changes the river frequency. A new scale rebuilds the river
// effect, which restarts its time at zero and swaps it into the chain.
func (s *Scene) SetRiverScale(scale float64) error {
	if err := s.river.SetScale(scale); err != nil {
		return err
	}
	s.syncChain()
	return nil
}

func (s *Scene) syncChain() {
	effects := []Effect{s.river.Effect()}
	if s.fluid != nil {
		effects = append(effects, s.fluid)
	}
	s.chain.SetEffects(effects...)
}

// Update advances every component by one tick.
func (s *Scene) Update() error {
	if s.closed {
		return nil
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	now := s.clock.Now()
	s.frame.advance(now)
	if s.testRunner != nil {
		if s.testRunner.ExitWhenDone && s.testRunner.Done() {
			return ebiten.Termination
		}
		s.testRunner.step(s)
	}
	s.processInput()

	if !s.started {
		s.started = true
		s.reveal.Start(now)
		s.parallax.Start(s.sched)
	}
	s.sched.Tick(now)

	dt := s.frame.Delta
	if s.fluid != nil {
		s.fluid.Feed(s.frame.Pointer, s.frame.Width, s.frame.Height, dt)
	}
	s.chain.Update(dt)
	s.updateSequencer(dt)
	s.updateButton()
	s.cursor.Update(&s.frame)
	s.syncOSCursor()
	if s.fps != nil {
		s.fps.update(dt)
	}

	if s.debug {
		stats.updateTime = time.Since(t0)
		s.debugLogUpdate(stats)
	}
	return nil
}

func (s *Scene) updateSequencer(dt float64) {
	s.startedBuf = s.startedBuf[:0]
	for _, it := range s.seq.Items() {
		s.startedBuf = append(s.startedBuf, it.Started())
	}
	s.seq.Update(time.Duration(dt * float64(time.Second)))
	for i, it := range s.seq.Items() {
		if it.Started() && !s.startedBuf[i] {
			s.emit(EventItemShown, it.Name)
		}
	}
}

// updateButton runs the magnet and the hover and click tracking. The magnet
// works in logical pixels so its radius does not depend on the display.
func (s *Scene) updateButton() {
	p := s.frame.Pointer
	ui := s.ui
	if p.Seen && !p.Touch {
		c := s.content.ButtonBase().Center()
		s.magnet.Update(Vec2{c.X / ui, c.Y / ui}, Vec2{p.X / ui, p.Y / ui})
	} else {
		s.magnet.Release()
	}
	s.content.SetButtonOffset(s.magnet.DX*ui, s.magnet.DY*ui)

	hover := p.Seen && s.content.ButtonRect().Contains(p.X, p.Y)
	if hover != s.hovering {
		s.hovering = hover
		s.cursor.SetHovering(hover)
		if hover {
			s.emit(EventHoverEnter, ButtonTarget)
		} else {
			s.emit(EventHoverLeave, ButtonTarget)
		}
	}
	if hover && s.justReleased() {
		s.emit(EventActivate, ButtonTarget)
		if s.cfg.OnActivate != nil {
			s.cfg.OnActivate()
		}
	}
}

// syncOSCursor hides the system cursor while the indicator is shown. Only
// applies with the hardware pointer.
func (s *Scene) syncOSCursor() {
	if _, hw := s.pointer.(*ebitenPointer); !hw {
		return
	}
	shown := !s.cursor.Hidden()
	if shown == s.cursorShown {
		return
	}
	s.cursorShown = shown
	if shown {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// Draw renders the parallax layers through the effect chain, then the
// content overlay and the pointer indicator on top.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	buf := s.ensureSceneBuffer(b.Dx(), b.Dy())
	buf.Clear()
	s.parallax.Draw(buf)

	if s.debug {
		stats.parallaxTime = time.Since(t0)
		t0 = time.Now()
	}

	if !s.chainFailed {
		if err := s.chain.Apply(buf, screen); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[riverpass] effects disabled: %v\n", err)
			s.chainFailed = true
		}
	}
	if s.chainFailed {
		screen.Clear()
		screen.DrawImage(buf, nil)
	}

	if s.debug {
		stats.chainTime = time.Since(t0)
		t0 = time.Now()
	}

	s.content.Draw(screen)
	s.cursor.Draw(screen)
	if s.showFPS {
		s.drawFPS(screen)
	}

	if s.debug {
		stats.overlayTime = time.Since(t0)
		s.debugLogDraw(stats)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) ensureSceneBuffer(w, h int) *ebiten.Image {
	if s.sceneBuf != nil {
		if b := s.sceneBuf.Bounds(); b.Dx() == w && b.Dy() == h {
			return s.sceneBuf
		}
		s.sceneBuf.Deallocate()
	}
	s.sceneBuf = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), nil)
	return s.sceneBuf
}

// Layout renders at the physical resolution: the outside size times the
// device scale factor.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := s.cfg.DeviceScale
	if scale <= 0 {
		scale = 1
		if m := ebiten.Monitor(); m != nil {
			scale = m.DeviceScaleFactor()
		}
	}
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)
	s.Resize(w, h, scale)
	return w, h
}

// Resize sets the surface size in pixels and the device scale factor.
// Layout calls it; tests and embedders without a window call it directly.
func (s *Scene) Resize(w, h int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	fw, fh := float64(w), float64(h)
	if fw == s.frame.Width && fh == s.frame.Height && scale == s.ui {
		return
	}
	s.frame.Width, s.frame.Height = fw, fh
	s.ui = scale
	s.parallax.Camera.SetViewport(Rect{Width: fw, Height: fh})
	s.content.Layout(fw, fh, scale)
	s.cursor.SetDeviceScale(scale)
	if s.fluid != nil {
		s.fluid.Resize(fw, fh)
	}
}

// Close cancels the scheduled callbacks and frees GPU resources. The scene
// does nothing after Close.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.reveal.Cancel()
	s.parallax.Stop()
	s.chain.Dispose()
	if s.fluid != nil {
		s.fluid.Dispose()
	}
	if s.sceneBuf != nil {
		s.sceneBuf.Deallocate()
		s.sceneBuf = nil
	}
}
