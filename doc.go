// Package riverpass renders a decorative reveal scene for [Ebitengine]: a
// parallax stack of background planes seen through a "river" distortion that
// clears over a few seconds, a pointer-driven fluid overlay, a following
// pointer indicator, a magnetic call-to-action button, and staggered text.
//
// # Quick start
//
// [Run] opens a window and drives the scene:
//
//	layers, err := riverpass.LoadImages(os.DirFS("public"), riverpass.DefaultLayerNames...)
//	if err != nil {
//		log.Printf("layers: %v", err) // missing layers are skipped
//	}
//	cfg := riverpass.DefaultConfig()
//	cfg.Layers = layers
//	scene, err := riverpass.NewScene(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	riverpass.Run(scene, riverpass.RunConfig{Title: "Invitation"})
//
// [Scene] implements [ebiten.Game], so it can also be embedded in an existing
// game loop.
//
// # Frame pipeline
//
// Each tick the scene reads one pointer sample into a shared [FrameState],
// runs the [FrameScheduler] callbacks (the [Reveal] decay and the [Parallax]
// step), and advances the [EffectChain], the [Sequencer], the
// [MagneticHover] and the [PointerIndicator]. Drawing renders the layers into
// an offscreen buffer, runs the chain (river, then fluid) onto the screen,
// and draws the text overlay and the pointer indicator unfiltered on top.
//
// # Reveal
//
// The reveal decays the river progress from 1 to 0.01 over 2.5 seconds and
// then opens the sequencer gate. If a shader fails to compile the chain is
// disabled and the unfiltered layers are drawn instead; text, button and
// indicator are unaffected.
//
// # Events and testing
//
// Scene events (reveal finished, hover, activation) go to an optional
// [EventSink]; the riverpass/ecs module forwards them into a Donburi world.
// Synthetic pointer input ([Scene.InjectMove], [Scene.InjectSweep]) and JSON
// scripts ([LoadTestScript]) drive the scene without a real mouse.
//
// [Ebitengine]: https://ebitengine.org
package riverpass
