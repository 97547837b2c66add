// Package tooni composes avatar images for [Ebitengine].
//
// A composition is a default character image with any number of overlay
// items stacked on top, drawn on a surface of fixed aspect ratio over an
// optional background photo and a fill color. The item catalog lives in the
// catalog subpackage; this package renders and edits the composition.
//
// # Quick start
//
// Register the element the surface is sized from, create a [Controller],
// and drive it from an [ebiten.Game]:
//
//	win := tooni.NewWindow(568, 720)
//	win.Register("canvas")
//	ctrl := tooni.NewController(tooni.ControllerOptions{
//		Host:   win,
//		Loader: tooni.NewAssetLoader(os.DirFS("public")),
//	})
//	ctrl.Initialize("canvas", tooni.ColorWhite)
//
//	func (g *Game) Update() error        { g.ctrl.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.ctrl.Draw(s) }
//
// # Composition
//
// The surface is always as wide as its container and 400/568 of that high
// ([ViewportHeight]). The default image sits at the bottom and is stretched
// to the viewport with [FitToViewport]; overlays are stretched the same way
// and stack in the order they were toggled on. A background image is scaled
// uniformly to cover the viewport ([CoverFit]) and cropped.
//
// Image loads run off the game loop. Their results are applied during
// [Controller.Update], so every edit to the scene happens on one goroutine.
// [Controller.ToggleItem] ignores repeat toggles of an item whose load is
// still in flight.
//
// # Rendering
//
// Every visual element is a [Node] in a small scene graph. Edits call
// [Surface.RenderAll] or [Surface.RequestRenderAll]; the display list is
// rebuilt only then and submitted every frame.
//
// # Extras
//
// [Fireworks] plays a short particle show over the composition. Events for
// each edit can be forwarded to a Donburi world with the tooni/ecs module.
//
// [Ebitengine]: https://ebitengine.org
package tooni
