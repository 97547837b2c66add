package tooni

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tooni/catalog"
)

// ErrNotInitialized is returned by operations that need a bound surface.
var ErrNotInitialized = errors.New("tooni: controller not initialized")

const (
	defaultImageRoot    = "/images"
	defaultCharacterImg = "default.png"
)

// ControllerOptions configures a Controller. Host and Loader are required.
type ControllerOptions struct {
	Host   Host
	Loader ImageLoader
	// ImageRoot prefixes every image source. Defaults to "/images".
	ImageRoot string
	// DefaultImage is the base character file under ImageRoot. Defaults to
	// "default.png".
	DefaultImage string
	// Downloader receives exports. Defaults to the working directory.
	Downloader Downloader
	// ExportName defaults to ExportName.
	ExportName string
	// FadeIn is the overlay fade-in duration in seconds. Zero attaches
	// overlays fully opaque.
	FadeIn float32
}

// Layer pairs an attached overlay node with the catalog item it shows.
type Layer struct {
	Node     *Node
	ItemID   string
	Category catalog.Category
}

// Controller owns a composition: the surface, the base character, the
// optional background, and the Active Overlay Set. An item id is in the set
// if and only if its layer node is attached to the surface.
//
// Image loads run on their own goroutines; their results are applied by
// Update, which the owner must call once per tick. All other methods must be
// called from the same goroutine as Update.
type Controller struct {
	host       Host
	loader     ImageLoader
	imageRoot  string
	defaultImg string
	downloader Downloader
	exportName string
	fadeIn     float32
	ctx        context.Context

	surface      *Surface
	element      Element
	base         *Node
	layers       map[string]*Layer
	order        []string
	pending      map[string]bool
	inflight     int
	queue        continuationQueue
	tweens       Tweens
	cancelResize func()
	sink         EventSink
	debug        bool

	// snapshot renders the surface for export; replaced in tests.
	snapshot func(*Surface) (image.Image, error)
}

// NewController creates an uninitialized controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Host == nil {
		panic("tooni: ControllerOptions.Host is nil")
	}
	if opts.Loader == nil {
		panic("tooni: ControllerOptions.Loader is nil")
	}
	c := &Controller{
		host:       opts.Host,
		loader:     opts.Loader,
		imageRoot:  opts.ImageRoot,
		defaultImg: opts.DefaultImage,
		downloader: opts.Downloader,
		exportName: opts.ExportName,
		fadeIn:     opts.FadeIn,
		ctx:        context.Background(),
		layers:     make(map[string]*Layer),
		pending:    make(map[string]bool),
		snapshot: func(s *Surface) (image.Image, error) {
			return s.Snapshot()
		},
	}
	if c.imageRoot == "" {
		c.imageRoot = defaultImageRoot
	}
	if c.defaultImg == "" {
		c.defaultImg = defaultCharacterImg
	}
	if c.downloader == nil {
		c.downloader = DirDownloader{Dir: "."}
	}
	if c.exportName == "" {
		c.exportName = ExportName
	}
	return c
}

// Initialize binds the controller to the element surfaceID, creates the
// surface with the given fill, starts loading the base character and
// attaches the resize listener. It does nothing when the host has no such
// element. Calling it again rebinds and drops the previous composition.
func (c *Controller) Initialize(surfaceID string, fill Color) {
	el, ok := c.host.Lookup(surfaceID)
	if !ok {
		return
	}
	c.detachResize()

	s := NewSurface(SurfaceOptions{Fill: fill, Selection: false})
	s.SetDebugMode(c.debug)
	c.surface = s
	c.element = el
	c.base = nil
	c.layers = make(map[string]*Layer)
	c.order = nil
	c.pending = make(map[string]bool)
	c.tweens.Clear()

	c.load(path.Join(c.imageRoot, c.defaultImg), func(img *ebiten.Image, err error) {
		if err != nil {
			logf("initialize: base image: %v", err)
			return
		}
		if c.surface != s {
			return
		}
		n := NewSprite("base", img)
		n.Lock()
		FitToViewport(n, s.Width(), s.Height())
		// The base stays at the bottom even if overlays finished loading first.
		s.AddAt(n, 0)
		c.base = n
		s.RenderAll()
	})

	c.Resize()
	c.cancelResize = c.host.OnResize(c.Resize)
}

// SetBackgroundColor changes the surface fill and redraws. Before
// Initialize there is no surface and the color is dropped.
func (c *Controller) SetBackgroundColor(fill Color) {
	if c.surface == nil {
		return
	}
	c.surface.SetFill(fill)
	c.surface.RenderAll()
}

// Resize matches the surface to its container: width from the element,
// height from the 568:400 aspect. The background is cover-fit again and
// every object is stretched to the new viewport.
func (c *Controller) Resize() {
	if c.surface == nil || c.element == nil {
		return
	}
	w := c.element.ContainerWidth()
	h := ViewportHeight(w)
	c.surface.SetDimensions(w, h)

	if bg := c.surface.Background(); bg != nil {
		CoverFit(bg, w, h)
	}
	for _, obj := range c.surface.Objects() {
		FitToViewport(obj, w, h)
	}
	c.surface.RenderAll()
}

// ToggleItem attaches the overlay for item if it is not active and detaches
// it otherwise. Attaching loads {ImageRoot}/{category}/{item.File}
// asynchronously; the item joins the Active Overlay Set only once its layer
// is on the surface. A toggle of an item whose load is still in flight is
// dropped.
func (c *Controller) ToggleItem(item catalog.Item, category catalog.Category) {
	if c.surface == nil {
		return
	}
	id := item.File
	if c.pending[id] {
		logf("toggle %s: previous toggle still loading, ignored", id)
		return
	}
	if layer, ok := c.layers[id]; ok {
		c.detach(layer)
		return
	}

	s := c.surface
	c.pending[id] = true
	c.load(path.Join(c.imageRoot, string(category), item.File), func(img *ebiten.Image, err error) {
		if c.surface != s {
			return
		}
		delete(c.pending, id)
		if err != nil {
			logf("toggle %s: %v", id, err)
			return
		}
		c.attach(img, id, category)
	})
}

func (c *Controller) attach(img *ebiten.Image, id string, category catalog.Category) {
	s := c.surface
	n := NewSprite(id, img)
	n.Lock()
	FitToViewport(n, s.Width(), s.Height())
	if c.fadeIn > 0 {
		c.tweens.Add(FadeIn(n, c.fadeIn))
	}
	s.Add(n)
	s.RenderAll()

	c.layers[id] = &Layer{Node: n, ItemID: id, Category: category}
	c.order = append(c.order, id)
	c.emit(Event{Type: EventItemAdded, ItemID: id, Category: category})
}

func (c *Controller) detach(layer *Layer) {
	c.surface.Remove(layer.Node)
	layer.Node.Dispose()
	c.surface.RenderAll()

	delete(c.layers, layer.ItemID)
	for i, id := range c.order {
		if id == layer.ItemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.emit(Event{Type: EventItemRemoved, ItemID: layer.ItemID, Category: layer.Category})
}

// SetBackgroundImage reads the selected file, decodes it and installs it as
// the cover-fit background, replacing any previous one. Nothing happens
// when no file is selected.
func (c *Controller) SetBackgroundImage(in FileInput) {
	_ = c.LoadBackgroundImage(in)
}

// LoadBackgroundImage is SetBackgroundImage for callers that want to know
// why nothing happened: it returns ErrNotInitialized before Initialize and
// ErrNoFile when in has no selection. Read and decode failures happen after
// it returns and are logged.
func (c *Controller) LoadBackgroundImage(in FileInput) error {
	if c.surface == nil {
		return ErrNotInitialized
	}
	f, err := OpenSelected(in)
	if err != nil {
		return err
	}

	s := c.surface
	c.async(func() (*ebiten.Image, error) {
		uri, err := ReadDataURI(f)
		if err != nil {
			return nil, err
		}
		return c.loader.Load(c.ctx, uri)
	}, func(img *ebiten.Image, err error) {
		if err != nil {
			logf("background: %v", err)
			return
		}
		if c.surface != s {
			return
		}
		bg := NewSprite("background", img)
		bg.Lock()
		CoverFit(bg, s.Width(), s.Height())
		s.SetBackground(bg)
		s.RequestRenderAll()
		c.emit(Event{Type: EventBackgroundSet})
	})
	return nil
}

// ClearBackgroundImage removes the background image, if any.
func (c *Controller) ClearBackgroundImage() {
	if c.surface == nil || c.surface.Background() == nil {
		return
	}
	c.surface.SetBackground(nil)
	c.surface.RenderAll()
	c.emit(Event{Type: EventBackgroundCleared})
}

// ExportImage saves the composition as a PNG through the Downloader and
// logs failures. It reads GPU pixels, so call it from Update or Draw.
func (c *Controller) ExportImage() {
	if err := c.Export(); err != nil && !errors.Is(err, ErrNotInitialized) {
		logf("export: %v", err)
	}
}

// Export is ExportImage with the error returned.
func (c *Controller) Export() error {
	if c.surface == nil {
		return ErrNotInitialized
	}
	img, err := c.snapshot(c.surface)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := c.downloader.Download(c.exportName, data); err != nil {
		return fmt.Errorf("download %s: %w", c.exportName, err)
	}
	c.emit(Event{Type: EventExported})
	return nil
}

// Teardown detaches the resize listener. Later calls do nothing.
func (c *Controller) Teardown() {
	c.detachResize()
}

func (c *Controller) detachResize() {
	if c.cancelResize != nil {
		c.cancelResize()
		c.cancelResize = nil
	}
}

// Update applies finished loads and advances overlay fades. Call it once
// per tick from the event loop.
func (c *Controller) Update() {
	c.queue.drain()

	if c.tweens.Update(float32(1.0/float64(ebiten.TPS()))) && c.surface != nil {
		c.surface.RequestRenderAll()
	}
}

// Draw paints the surface onto screen. No-op before Initialize.
func (c *Controller) Draw(screen *ebiten.Image) {
	if c.surface == nil {
		return
	}
	c.surface.Draw(screen)
}

// Pending returns how many loads have not been applied yet.
func (c *Controller) Pending() int {
	return c.inflight
}

// Initialized reports whether a surface is bound.
func (c *Controller) Initialized() bool {
	return c.surface != nil
}

// Surface returns the bound surface, or nil before Initialize.
func (c *Controller) Surface() *Surface {
	return c.surface
}

// Base returns the base character node once it has loaded.
func (c *Controller) Base() *Node {
	return c.base
}

// ActiveItems returns the active item ids in the order they were attached.
func (c *Controller) ActiveItems() []string {
	return append([]string(nil), c.order...)
}

// IsActive reports whether id is in the Active Overlay Set.
func (c *Controller) IsActive(id string) bool {
	_, ok := c.layers[id]
	return ok
}

// Layer returns the attached layer for id.
func (c *Controller) Layer(id string) (*Layer, bool) {
	l, ok := c.layers[id]
	return l, ok
}

// SetEventSink sets the optional event receiver.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetDebugMode enables surface timing logs, now and for later surfaces.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
	if c.surface != nil {
		c.surface.SetDebugMode(enabled)
	}
}

func (c *Controller) emit(e Event) {
	if c.sink == nil {
		return
	}
	e.Active = len(c.layers)
	c.sink.EmitEvent(e)
}

// load fetches src off the loop and hands the result to done on the loop.
func (c *Controller) load(src string, done func(*ebiten.Image, error)) {
	c.async(func() (*ebiten.Image, error) {
		return c.loader.Load(c.ctx, src)
	}, done)
}

func (c *Controller) async(work func() (*ebiten.Image, error), done func(*ebiten.Image, error)) {
	c.inflight++
	go func() {
		img, err := work()
		c.queue.post(func() {
			c.inflight--
			done(img, err)
		})
	}()
}
