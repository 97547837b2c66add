package tooni

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrEmptySurface is returned when a snapshot is taken of a surface that has
// no area yet.
var ErrEmptySurface = errors.New("tooni: surface has no area")

// SurfaceOptions configures a new Surface.
type SurfaceOptions struct {
	// Fill is painted under everything, including the background image.
	Fill Color
	// Selection enables pointer group selection in hosts that implement it.
	Selection bool
}

const defaultCommandCap = 64

// Surface is the rendering target the composition is drawn on. It owns an
// optional background node, an ordered list of layer objects, the fill color,
// and the display list rebuilt by RenderAll.
//
// A Surface is not safe for concurrent use; mutate it from the event loop.
type Surface struct {
	root       *Node
	background *Node
	fill       Color
	selection  bool
	width      float64
	height     float64
	debug      bool

	commands     []RenderCommand
	renderedFill Color
	dirty        bool
	renders      int
}

// NewSurface creates an empty surface with no area. Call SetDimensions before
// drawing.
func NewSurface(opts SurfaceOptions) *Surface {
	return &Surface{
		root:      NewContainer("objects"),
		fill:      opts.Fill,
		selection: opts.Selection,
		commands:  make([]RenderCommand, 0, defaultCommandCap),
		dirty:     true,
	}
}

// Add appends obj above every existing object.
func (s *Surface) Add(obj *Node) {
	s.root.AddChild(obj)
}

// AddAt inserts obj at index in the object order; 0 is the bottom.
func (s *Surface) AddAt(obj *Node, index int) {
	s.root.AddChildAt(obj, index)
}

// Remove detaches obj. No-op if obj is not on this surface.
func (s *Surface) Remove(obj *Node) {
	if obj == nil || obj.Parent != s.root {
		return
	}
	s.root.RemoveChild(obj)
}

// Objects returns the layer objects bottom to top. The returned slice MUST
// NOT be mutated by the caller.
func (s *Surface) Objects() []*Node {
	return s.root.Children()
}

// SetBackground installs bg under all objects, replacing any previous
// background. Pass nil to clear it.
func (s *Surface) SetBackground(bg *Node) {
	if bg != nil && bg.Parent != nil {
		bg.RemoveFromParent()
	}
	s.background = bg
	if bg != nil {
		bg.MarkDirty()
	}
}

// Background returns the background node, or nil.
func (s *Surface) Background() *Node {
	return s.background
}

// SetDimensions resizes the viewport.
func (s *Surface) SetDimensions(w, h float64) {
	s.width = w
	s.height = h
	s.dirty = true
}

// Width returns the viewport width.
func (s *Surface) Width() float64 { return s.width }

// Height returns the viewport height.
func (s *Surface) Height() float64 { return s.height }

// Viewport returns the viewport rectangle anchored at the origin.
func (s *Surface) Viewport() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// SetFill changes the fill color. It becomes visible on the next redraw.
func (s *Surface) SetFill(c Color) {
	s.fill = c
}

// Fill returns the configured fill color.
func (s *Surface) Fill() Color {
	return s.fill
}

// RenderedFill returns the fill color of the last rebuilt display list.
func (s *Surface) RenderedFill() Color {
	return s.renderedFill
}

// Selection reports whether pointer group selection was enabled.
func (s *Surface) Selection() bool {
	return s.selection
}

// RenderAll rebuilds the display list immediately.
func (s *Surface) RenderAll() {
	s.rebuild()
}

// RequestRenderAll schedules a display list rebuild for the next Draw.
func (s *Surface) RequestRenderAll() {
	s.dirty = true
}

// Renders returns how many times the display list has been rebuilt.
func (s *Surface) Renders() int {
	return s.renders
}

// Commands returns the current display list. The returned slice MUST NOT be
// mutated and is invalidated by the next rebuild.
func (s *Surface) Commands() []RenderCommand {
	return s.commands
}

// SetDebugMode enables per-rebuild timing logs.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Draw paints the surface into the top-left width x height area of screen,
// rebuilding the display list first if a redraw was requested.
func (s *Surface) Draw(screen *ebiten.Image) {
	if s.dirty {
		s.rebuild()
	}
	w, h := s.pixelSize()
	if w == 0 || h == 0 {
		return
	}
	target := screen.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	s.paint(target)
}

// Snapshot renders the whole surface at 1x into a new straight-alpha image.
// It reads GPU pixels, so it must run inside the Ebiten game loop.
func (s *Surface) Snapshot() (*image.NRGBA, error) {
	w, h := s.pixelSize()
	if w == 0 || h == 0 {
		return nil, ErrEmptySurface
	}
	s.rebuild()

	target := ebiten.NewImage(w, h)
	defer target.Deallocate()
	s.paint(target)
	return readNRGBA(target), nil
}

func (s *Surface) pixelSize() (int, int) {
	return int(math.Ceil(s.width)), int(math.Ceil(s.height))
}

// paint fills target and submits the display list.
func (s *Surface) paint(target *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.renderedFill.A > 0 {
		target.Fill(s.renderedFill.toRGBA())
	}
	submitCommands(target, s.commands)
	if s.debug {
		logf("surface: submit %d commands in %v", len(s.commands), time.Since(t0))
	}
}

// rebuild walks the background and objects and emits the display list.
func (s *Surface) rebuild() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	if s.background != nil {
		s.commands = emitCommands(s.background, identityTransform, 1, true, s.commands)
	}
	s.commands = emitCommands(s.root, identityTransform, 1, false, s.commands)
	s.renderedFill = s.fill
	s.dirty = false
	s.renders++

	if s.debug {
		logf("surface: rebuilt %d commands in %v", len(s.commands), time.Since(t0))
	}
}
