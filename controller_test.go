package tooni

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tooni/catalog"
)

// fakeLoader serves blank images. Sizes are looked up by source; data URIs
// use dataSize. Sources listed in gates block until the channel is closed.
type fakeLoader struct {
	mu       sync.Mutex
	sizes    map[string][2]int
	dataSize [2]int
	fail     map[string]error
	gates    map[string]chan struct{}
	calls    []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		sizes:    make(map[string][2]int),
		dataSize: [2]int{200, 100},
		fail:     make(map[string]error),
		gates:    make(map[string]chan struct{}),
	}
}

func (l *fakeLoader) Load(ctx context.Context, src string) (*ebiten.Image, error) {
	l.mu.Lock()
	l.calls = append(l.calls, src)
	gate := l.gates[src]
	err := l.fail[src]
	size, ok := l.sizes[src]
	if IsDataURI(src) {
		size, ok = l.dataSize, true
	}
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		size = [2]int{100, 100}
	}
	return ebiten.NewImage(size[0], size[1]), nil
}

func (l *fakeLoader) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type memDownloader struct {
	name  string
	data  []byte
	calls int
	err   error
}

func (d *memDownloader) Download(name string, data []byte) error {
	d.calls++
	if d.err != nil {
		return d.err
	}
	d.name = name
	d.data = data
	return nil
}

type recordSink struct {
	events []Event
}

func (r *recordSink) EmitEvent(e Event) { r.events = append(r.events, e) }

type controllerFixture struct {
	win    *Window
	loader *fakeLoader
	dl     *memDownloader
	c      *Controller
}

func newFixture(t *testing.T) *controllerFixture {
	t.Helper()
	win := NewWindow(568, 720)
	win.Register("canvas")
	loader := newFakeLoader()
	dl := &memDownloader{}
	c := NewController(ControllerOptions{Host: win, Loader: loader, Downloader: dl})
	return &controllerFixture{win: win, loader: loader, dl: dl, c: c}
}

// settle runs the event loop until every load has been applied.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		c.Update()
		if c.Pending() == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("loads still pending after 2s: %d", c.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// covers reports whether r fully covers other, edges included.
func covers(r, other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.X+r.Width >= other.X+other.Width &&
		r.Y+r.Height >= other.Y+other.Height
}

var eyepatch = catalog.Item{File: "Eyepatch.png", Name: "안대"}

func TestInitializeSizesSurfaceToAspect(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	s := f.c.Surface()
	if s == nil {
		t.Fatal("surface not created")
	}
	if s.Width() != 568 || s.Height() != 400 {
		t.Errorf("surface = %vx%v, want 568x400", s.Width(), s.Height())
	}
	if s.Selection() {
		t.Error("selection should be disabled")
	}
	if s.RenderedFill() != ColorWhite {
		t.Errorf("rendered fill = %v, want white", s.RenderedFill())
	}
	if len(f.c.ActiveItems()) != 0 {
		t.Errorf("active = %v, want empty", f.c.ActiveItems())
	}
}

func TestInitializeLoadsBaseAtBottom(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	calls := f.loader.Calls()
	if len(calls) != 1 || calls[0] != "/images/default.png" {
		t.Fatalf("loads = %v, want [/images/default.png]", calls)
	}
	base := f.c.Base()
	if base == nil {
		t.Fatal("base not attached")
	}
	if !base.Locked() {
		t.Error("base should be locked")
	}
	objs := f.c.Surface().Objects()
	if len(objs) != 1 || objs[0] != base {
		t.Errorf("objects = %v, want [base]", objs)
	}
	b := base.Bounds()
	assertNear(t, "base x", b.X, 0)
	assertNear(t, "base y", b.Y, 0)
	assertNear(t, "base w", b.Width, 568)
	assertNear(t, "base h", b.Height, 400)
}

func TestInitializeBaseStaysBelowFasterOverlay(t *testing.T) {
	f := newFixture(t)
	gate := make(chan struct{})
	f.loader.gates["/images/default.png"] = gate
	f.c.Initialize("canvas", ColorWhite)
	f.c.ToggleItem(eyepatch, catalog.Face)

	// Let the overlay land first.
	deadline := time.Now().Add(2 * time.Second)
	for !f.c.IsActive(eyepatch.File) {
		f.c.Update()
		if time.Now().After(deadline) {
			t.Fatal("overlay never attached")
		}
		time.Sleep(time.Millisecond)
	}
	close(gate)
	settle(t, f.c)

	objs := f.c.Surface().Objects()
	if len(objs) != 2 || objs[0] != f.c.Base() {
		t.Fatalf("base should be at index 0, objects = %v", objs)
	}
}

func TestInitializeUnknownElementIsNoop(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("missing", ColorWhite)
	if f.c.Initialized() {
		t.Error("controller should stay uninitialized")
	}
	if f.win.Listeners() != 0 {
		t.Errorf("listeners = %d, want 0", f.win.Listeners())
	}
	if calls := f.loader.Calls(); len(calls) != 0 {
		t.Errorf("loads = %v, want none", calls)
	}
}

func TestInitializeTwiceKeepsOneListener(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	if f.win.Listeners() != 1 {
		t.Errorf("listeners = %d, want 1", f.win.Listeners())
	}
	if n := len(f.c.Surface().Objects()); n != 1 {
		t.Errorf("objects = %d, want 1 (stale base dropped)", n)
	}
}

func TestInitializeBaseLoadFailureLeavesEmptySurface(t *testing.T) {
	f := newFixture(t)
	f.loader.fail["/images/default.png"] = errors.New("404")
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	if !f.c.Initialized() {
		t.Fatal("surface should exist despite base failure")
	}
	if f.c.Base() != nil {
		t.Error("base should be nil")
	}
	if n := len(f.c.Surface().Objects()); n != 0 {
		t.Errorf("objects = %d, want 0", n)
	}
}

func TestSetBackgroundColorBeforeInitializeIsLost(t *testing.T) {
	f := newFixture(t)
	red := MustParseColor("#ff0000")
	f.c.SetBackgroundColor(red)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	if got := f.c.Surface().RenderedFill(); got != ColorWhite {
		t.Errorf("rendered fill = %v, want white", got)
	}
}

func TestSetBackgroundColorRedraws(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	red := MustParseColor("#ff0000")
	f.c.SetBackgroundColor(red)
	s := f.c.Surface()
	if s.Fill() != red {
		t.Errorf("fill = %v, want red", s.Fill())
	}
	if s.RenderedFill() != red {
		t.Errorf("rendered fill = %v, want red", s.RenderedFill())
	}
	if s.RenderedFill().Hex() != "#ff0000" {
		t.Errorf("hex = %s, want #ff0000", s.RenderedFill().Hex())
	}
}

func TestToggleItemAttachesAndDetaches(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	before := len(f.c.Surface().Objects())

	f.c.ToggleItem(eyepatch, catalog.Face)
	if f.c.IsActive(eyepatch.File) {
		t.Fatal("item must not be active before its layer is attached")
	}
	settle(t, f.c)

	if !f.c.IsActive(eyepatch.File) {
		t.Fatal("item should be active after load")
	}
	if got := f.loader.Calls()[1]; got != "/images/face/Eyepatch.png" {
		t.Errorf("load src = %q, want /images/face/Eyepatch.png", got)
	}
	objs := f.c.Surface().Objects()
	if len(objs) != before+1 {
		t.Fatalf("objects = %d, want %d", len(objs), before+1)
	}
	layer, _ := f.c.Layer(eyepatch.File)
	if objs[len(objs)-1] != layer.Node {
		t.Error("overlay should be on top")
	}
	if !layer.Node.Locked() {
		t.Error("overlay should be locked")
	}
	if layer.Category != catalog.Face {
		t.Errorf("category = %q, want face", layer.Category)
	}
	b := layer.Node.Bounds()
	assertNear(t, "overlay w", b.Width, 568)
	assertNear(t, "overlay h", b.Height, 400)

	f.c.ToggleItem(eyepatch, catalog.Face)
	if f.c.IsActive(eyepatch.File) {
		t.Error("second toggle should deactivate")
	}
	if got := len(f.c.Surface().Objects()); got != before {
		t.Errorf("objects = %d, want %d after second toggle", got, before)
	}
	if !layer.Node.IsDisposed() {
		t.Error("removed layer should be disposed")
	}
}

func TestToggleItemOrderAndSetMembership(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	hat := catalog.Item{File: "BaseballCap.png"}
	burger := catalog.Item{File: "Hamburger.png"}
	f.c.ToggleItem(hat, catalog.Head)
	settle(t, f.c)
	f.c.ToggleItem(burger, catalog.Hand)
	settle(t, f.c)
	f.c.ToggleItem(hat, catalog.Head)

	got := f.c.ActiveItems()
	if len(got) != 1 || got[0] != burger.File {
		t.Errorf("active = %v, want [Hamburger.png]", got)
	}
	objs := f.c.Surface().Objects()
	if len(objs) != 2 {
		t.Fatalf("objects = %d, want 2", len(objs))
	}
	layer, _ := f.c.Layer(burger.File)
	if objs[0] != f.c.Base() || objs[1] != layer.Node {
		t.Error("object order should be base then hamburger")
	}
}

func TestToggleItemWhilePendingIsDropped(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	gate := make(chan struct{})
	f.loader.gates["/images/face/Eyepatch.png"] = gate
	f.c.ToggleItem(eyepatch, catalog.Face)
	f.c.ToggleItem(eyepatch, catalog.Face)
	close(gate)
	settle(t, f.c)

	if !f.c.IsActive(eyepatch.File) {
		t.Error("first toggle should win")
	}
	if n := len(f.c.Surface().Objects()); n != 2 {
		t.Errorf("objects = %d, want 2 (no duplicate layer)", n)
	}
	loads := 0
	for _, src := range f.loader.Calls() {
		if strings.HasSuffix(src, "Eyepatch.png") {
			loads++
		}
	}
	if loads != 1 {
		t.Errorf("eyepatch loads = %d, want 1", loads)
	}
}

func TestToggleItemLoadFailureLeavesSetUnchanged(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	f.loader.fail["/images/face/Eyepatch.png"] = errors.New("boom")
	f.c.ToggleItem(eyepatch, catalog.Face)
	settle(t, f.c)
	if f.c.IsActive(eyepatch.File) {
		t.Error("failed load must not activate the item")
	}
	if n := len(f.c.Surface().Objects()); n != 1 {
		t.Errorf("objects = %d, want 1", n)
	}

	// A retry is allowed once the failed load resolved.
	delete(f.loader.fail, "/images/face/Eyepatch.png")
	f.c.ToggleItem(eyepatch, catalog.Face)
	settle(t, f.c)
	if !f.c.IsActive(eyepatch.File) {
		t.Error("retry should activate the item")
	}
}

func TestToggleItemBeforeInitializeIsNoop(t *testing.T) {
	f := newFixture(t)
	f.c.ToggleItem(eyepatch, catalog.Face)
	settle(t, f.c)
	if len(f.loader.Calls()) != 0 {
		t.Error("no load should start before initialize")
	}
}

func TestToggleItemCustomImageRoot(t *testing.T) {
	win := NewWindow(568, 720)
	win.Register("canvas")
	loader := newFakeLoader()
	c := NewController(ControllerOptions{Host: win, Loader: loader, ImageRoot: "assets/img", DefaultImage: "me.png"})
	c.Initialize("canvas", ColorWhite)
	c.ToggleItem(eyepatch, catalog.Face)
	settle(t, c)

	calls := loader.Calls()
	want := map[string]bool{"assets/img/me.png": true, "assets/img/face/Eyepatch.png": true}
	for _, src := range calls {
		if !want[src] {
			t.Errorf("unexpected load %q", src)
		}
	}
}

func TestResizeRefitsObjects(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	f.c.ToggleItem(eyepatch, catalog.Face)
	settle(t, f.c)

	f.win.SetSize(1136, 900)
	s := f.c.Surface()
	if s.Width() != 1136 || s.Height() != 800 {
		t.Fatalf("surface = %vx%v, want 1136x800", s.Width(), s.Height())
	}
	for _, obj := range s.Objects() {
		assertNear(t, obj.Name+" scaleX", obj.ScaleX, 11.36)
		assertNear(t, obj.Name+" scaleY", obj.ScaleY, 8)
		assertNear(t, obj.Name+" x", obj.X, 568)
		assertNear(t, obj.Name+" y", obj.Y, 400)
		assertNear(t, obj.Name+" pivotX", obj.PivotX, 50)
		assertNear(t, obj.Name+" pivotY", obj.PivotY, 50)
	}
}

func TestResizeZeroWidthKeepsTransforms(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	base := f.c.Base()
	sx := base.ScaleX

	f.win.SetSize(0, 720)
	if f.c.Surface().Width() != 0 || f.c.Surface().Height() != 0 {
		t.Errorf("surface = %vx%v, want 0x0", f.c.Surface().Width(), f.c.Surface().Height())
	}
	if base.ScaleX != sx {
		t.Errorf("scaleX = %v, want unchanged %v", base.ScaleX, sx)
	}
}

func TestSetBackgroundImageCoverFits(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	sink := &recordSink{}
	f.c.SetEventSink(sink)

	in := DroppedFiles{FS: fstest.MapFS{"bg.png": {Data: encodeTestPNG(t, 200, 100)}}}
	f.c.SetBackgroundImage(in)
	settle(t, f.c)

	bg := f.c.Surface().Background()
	if bg == nil {
		t.Fatal("background not set")
	}
	assertNear(t, "scaleX", bg.ScaleX, 4)
	assertNear(t, "scaleY", bg.ScaleY, 4)
	if !covers(bg.Bounds(), f.c.Surface().Viewport()) {
		t.Errorf("bounds %+v do not cover viewport", bg.Bounds())
	}
	if len(sink.events) != 1 || sink.events[0].Type != EventBackgroundSet {
		t.Errorf("events = %+v, want one background-set", sink.events)
	}

	// Still covering after a resize.
	f.win.SetSize(1136, 900)
	assertNear(t, "scale after resize", bg.ScaleX, 8)
	if !covers(bg.Bounds(), f.c.Surface().Viewport()) {
		t.Errorf("after resize bounds %+v do not cover viewport", bg.Bounds())
	}
}

func TestSetBackgroundImageReplaces(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	in := DroppedFiles{FS: fstest.MapFS{"a.png": {Data: encodeTestPNG(t, 4, 4)}}}
	f.c.SetBackgroundImage(in)
	settle(t, f.c)
	first := f.c.Surface().Background()
	f.c.SetBackgroundImage(in)
	settle(t, f.c)
	if f.c.Surface().Background() == first {
		t.Error("second upload should replace the background")
	}
}

func TestSetBackgroundImageNoFileIsNoop(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	f.c.SetBackgroundImage(DroppedFiles{})
	f.c.SetBackgroundImage(LocalFile(""))
	settle(t, f.c)
	if f.c.Surface().Background() != nil {
		t.Error("background should stay unset")
	}
}

func TestLoadBackgroundImageReportsGuards(t *testing.T) {
	f := newFixture(t)
	in := DroppedFiles{FS: fstest.MapFS{"bg.png": {Data: encodeTestPNG(t, 200, 100)}}}
	if err := f.c.LoadBackgroundImage(in); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("before init err = %v, want ErrNotInitialized", err)
	}

	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	for name, empty := range map[string]FileInput{
		"nil":           nil,
		"no drop":       DroppedFiles{},
		"empty path":    LocalFile(""),
		"missing local": LocalFile(filepath.Join(t.TempDir(), "gone.png")),
	} {
		if err := f.c.LoadBackgroundImage(empty); !errors.Is(err, ErrNoFile) {
			t.Errorf("%s: err = %v, want ErrNoFile", name, err)
		}
	}

	if err := f.c.LoadBackgroundImage(in); err != nil {
		t.Fatalf("LoadBackgroundImage: %v", err)
	}
	settle(t, f.c)
	if f.c.Surface().Background() == nil {
		t.Error("background not set")
	}
}

func TestClearBackgroundImage(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	// Clearing with nothing set is harmless.
	f.c.ClearBackgroundImage()

	in := DroppedFiles{FS: fstest.MapFS{"a.png": {Data: encodeTestPNG(t, 4, 4)}}}
	f.c.SetBackgroundImage(in)
	settle(t, f.c)
	f.c.ClearBackgroundImage()

	s := f.c.Surface()
	if s.Background() != nil {
		t.Fatal("background should be cleared")
	}
	for _, cmd := range s.Commands() {
		if cmd.Node != nil && cmd.Node.Name == "background" {
			t.Error("display list still draws the background")
		}
	}
	if s.RenderedFill() != ColorWhite {
		t.Errorf("fill = %v, want white", s.RenderedFill())
	}
}

func TestExportImage(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	f.c.snapshot = func(*Surface) (image.Image, error) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		img.Set(0, 0, color.NRGBA{R: 255, A: 255})
		return img, nil
	}

	f.c.ExportImage()
	if f.dl.name != "tooni.png" {
		t.Errorf("name = %q, want tooni.png", f.dl.name)
	}
	img, err := png.Decode(bytes.NewReader(f.dl.data))
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("pixel red = %#x, want 0xffff", r)
	}
}

func TestExportErrors(t *testing.T) {
	f := newFixture(t)
	if err := f.c.Export(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("export before init = %v, want ErrNotInitialized", err)
	}

	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	snapErr := errors.New("no gpu")
	f.c.snapshot = func(*Surface) (image.Image, error) { return nil, snapErr }
	if err := f.c.Export(); !errors.Is(err, snapErr) {
		t.Errorf("export = %v, want wrapped snapshot error", err)
	}

	f.c.snapshot = func(*Surface) (image.Image, error) { return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil }
	f.dl.err = errors.New("disk full")
	if err := f.c.Export(); !errors.Is(err, f.dl.err) {
		t.Errorf("export = %v, want wrapped download error", err)
	}
	// ExportImage swallows and logs.
	f.c.ExportImage()
}

func TestTeardownDetachesResize(t *testing.T) {
	f := newFixture(t)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)
	if f.win.Listeners() != 1 {
		t.Fatalf("listeners = %d, want 1", f.win.Listeners())
	}

	f.c.Teardown()
	if f.win.Listeners() != 0 {
		t.Errorf("listeners = %d, want 0", f.win.Listeners())
	}
	f.win.SetSize(100, 100)
	if f.c.Surface().Width() != 568 {
		t.Errorf("width = %v, resize should no longer apply", f.c.Surface().Width())
	}
	// Second teardown is a no-op.
	f.c.Teardown()
}

func TestTeardownBeforeInitialize(t *testing.T) {
	f := newFixture(t)
	f.c.Teardown()
	if f.win.Listeners() != 0 {
		t.Error("no listener expected")
	}
}

func TestControllerEvents(t *testing.T) {
	f := newFixture(t)
	sink := &recordSink{}
	f.c.SetEventSink(sink)
	f.c.Initialize("canvas", ColorWhite)
	settle(t, f.c)

	f.c.ToggleItem(eyepatch, catalog.Face)
	settle(t, f.c)
	f.c.ToggleItem(eyepatch, catalog.Face)

	want := []Event{
		{Type: EventItemAdded, ItemID: eyepatch.File, Category: catalog.Face, Active: 1},
		{Type: EventItemRemoved, ItemID: eyepatch.File, Category: catalog.Face, Active: 0},
	}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %+v, want %+v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, sink.events[i], want[i])
		}
	}
}

func TestFadeInTweensOverlayAlpha(t *testing.T) {
	win := NewWindow(568, 720)
	win.Register("canvas")
	c := NewController(ControllerOptions{Host: win, Loader: newFakeLoader(), FadeIn: 0.1})
	c.Initialize("canvas", ColorWhite)
	c.ToggleItem(eyepatch, catalog.Face)
	settle(t, c)

	layer, ok := c.Layer(eyepatch.File)
	if !ok {
		t.Fatal("overlay not attached")
	}
	if layer.Node.Alpha >= 1 {
		t.Errorf("alpha = %v, want fading", layer.Node.Alpha)
	}
	for i := 0; i < 30; i++ {
		c.Update()
	}
	assertNear(t, "alpha", layer.Node.Alpha, 1)
	if c.tweens.Len() != 0 {
		t.Errorf("tweens = %d, want 0 after fade", c.tweens.Len())
	}
}

func TestNewControllerRequiresHostAndLoader(t *testing.T) {
	for name, opts := range map[string]ControllerOptions{
		"host":   {Loader: newFakeLoader()},
		"loader": {Host: NewWindow(1, 1)},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewController(opts)
		})
	}
}
