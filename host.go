package tooni

// Element is a layout box in the host UI that a surface or an animation can
// be bound to.
type Element interface {
	// ContainerWidth is the current laid-out width of the element's container.
	ContainerWidth() float64
}

// sizedElement is an Element that also reports its height.
type sizedElement interface {
	Element
	ContainerHeight() float64
}

// Host is the environment a Controller or Fireworks binds into.
type Host interface {
	// Lookup resolves an element by id.
	Lookup(id string) (Element, bool)
	// OnResize registers fn to run after every layout change. The returned
	// func detaches it.
	OnResize(fn func()) (cancel func())
}

// Window is a Host backed by a single game window. Every registered element
// spans the full window width. Feed it the outside size from
// ebiten.Game.Layout.
type Window struct {
	width, height float64
	elements      map[string]*windowElement
	listeners     map[int]func()
	nextListener  int
}

type windowElement struct {
	w *Window
}

func (e *windowElement) ContainerWidth() float64 {
	return e.w.width
}

func (e *windowElement) ContainerHeight() float64 {
	return e.w.height
}

// NewWindow creates a window host with the given initial size.
func NewWindow(width, height float64) *Window {
	return &Window{
		width:     width,
		height:    height,
		elements:  make(map[string]*windowElement),
		listeners: make(map[int]func()),
	}
}

// Register makes id resolvable through Lookup.
func (w *Window) Register(id string) {
	if _, ok := w.elements[id]; !ok {
		w.elements[id] = &windowElement{w: w}
	}
}

// Lookup implements Host.
func (w *Window) Lookup(id string) (Element, bool) {
	e, ok := w.elements[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// OnResize implements Host. Listeners run in registration order.
func (w *Window) OnResize(fn func()) (cancel func()) {
	id := w.nextListener
	w.nextListener++
	w.listeners[id] = fn
	return func() { delete(w.listeners, id) }
}

// Listeners returns the number of attached resize listeners.
func (w *Window) Listeners() int {
	return len(w.listeners)
}

// Size returns the window size.
func (w *Window) Size() (float64, float64) {
	return w.width, w.height
}

// SetSize updates the window size and notifies listeners when it changed.
func (w *Window) SetSize(width, height float64) {
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	for id := 0; id < w.nextListener; id++ {
		if fn, ok := w.listeners[id]; ok {
			fn()
		}
	}
}
