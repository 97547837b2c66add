package tooni

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
)

// ticksPerSecond converts the per-tick values of FireworksOptions.
const ticksPerSecond = 60

// Sounder plays firework sound effects. Calls come from the event loop and
// must not block.
type Sounder interface {
	Launch()
	Burst()
}

// FireworksOptions tunes the celebration. Per-tick quantities assume 60
// ticks per second.
type FireworksOptions struct {
	// Duration is how long a Start keeps launching rockets.
	Duration time.Duration
	// Hue is the range of burst hues in degrees.
	Hue Range
	// Delay is the range of ticks between launches.
	Delay Range
	// RocketsPoint is the range of launch x positions in percent of width.
	RocketsPoint Range
	// Particles is the number of particles per burst.
	Particles int
	// Explosion is the maximum burst particle speed in px per tick.
	Explosion float64
	// Gravity is the downward drift of burst particles in px per tick,
	// reached one second after the burst.
	Gravity float64
	// Friction multiplies burst particle velocity every tick.
	Friction float64
	// Acceleration multiplies rocket speed every tick.
	Acceleration float64
	// TraceSpeed is the rocket launch speed in px per tick.
	TraceSpeed float64
	// Decay is the range of alpha lost per tick by burst particles.
	Decay Range
	// Brightness is the range of burst lightness in percent.
	Brightness Range
	// Opacity scales the whole layer.
	Opacity float64
}

// DefaultFireworksOptions returns the stock celebration.
func DefaultFireworksOptions() FireworksOptions {
	return FireworksOptions{
		Duration:     5 * time.Second,
		Hue:          Range{0, 360},
		Delay:        Range{30, 60},
		RocketsPoint: Range{50, 50},
		Particles:    50,
		Explosion:    5,
		Gravity:      1.5,
		Friction:     1,
		Acceleration: 1.05,
		TraceSpeed:   10,
		Decay:        Range{0.015, 0.03},
		Brightness:   Range{50, 80},
		Opacity:      0.5,
	}
}

type rocket struct {
	node  *Node
	rise  *Tween
	hue   float64
	light float64
}

// Fireworks draws rockets that rise from the bottom of a container element
// and burst into particles. It is driven by Update and Draw from the game
// loop.
type Fireworks struct {
	host Host
	id   string
	opts FireworksOptions

	sound   Sounder
	root    *Node
	rockets []*rocket
	bursts  []*Node
	cmds    []RenderCommand

	running    bool
	clock      float64
	stops      []float64
	nextLaunch float64
}

// NewFireworks binds a celebration to the element containerID. The element
// is looked up on every Start, so it may be registered later.
func NewFireworks(host Host, containerID string, opts FireworksOptions) *Fireworks {
	if host == nil {
		panic("tooni: NewFireworks host is nil")
	}
	root := NewContainer("fireworks")
	root.Alpha = opts.Opacity
	return &Fireworks{host: host, id: containerID, opts: opts, root: root}
}

// SetSounder sets the optional sound player.
func (f *Fireworks) SetSounder(s Sounder) {
	f.sound = s
}

// Start begins launching rockets and schedules a stop after Duration. It
// does nothing when the container element does not exist. Starting again
// while running schedules another stop; the earliest one still ends the
// show.
func (f *Fireworks) Start() {
	if _, ok := f.host.Lookup(f.id); !ok {
		return
	}
	f.running = true
	f.nextLaunch = 0
	f.stops = append(f.stops, f.clock+f.opts.Duration.Seconds())
}

// Stop ends the show and clears everything in flight.
func (f *Fireworks) Stop() {
	f.running = false
	for _, r := range f.rockets {
		r.node.Dispose()
	}
	for _, b := range f.bursts {
		b.Dispose()
	}
	clear(f.rockets)
	clear(f.bursts)
	f.rockets = f.rockets[:0]
	f.bursts = f.bursts[:0]
}

// Running reports whether rockets are being launched.
func (f *Fireworks) Running() bool {
	return f.running
}

// Active returns the number of rockets and bursts in flight.
func (f *Fireworks) Active() int {
	return len(f.rockets) + len(f.bursts)
}

// Update advances the show by dt seconds.
func (f *Fireworks) Update(dt float64) {
	f.clock += dt

	due := false
	live := f.stops[:0]
	for _, at := range f.stops {
		if f.clock >= at {
			due = true
			continue
		}
		live = append(live, at)
	}
	f.stops = live
	if due {
		f.Stop()
		return
	}
	if !f.running {
		return
	}

	f.nextLaunch -= dt
	if f.nextLaunch <= 0 {
		f.launch()
		f.nextLaunch = f.opts.Delay.Random() / ticksPerSecond
	}

	rockets := f.rockets[:0]
	for _, r := range f.rockets {
		r.rise.Update(float32(dt))
		if r.rise.Done {
			f.explode(r)
			continue
		}
		rockets = append(rockets, r)
	}
	clear(f.rockets[len(rockets):])
	f.rockets = rockets

	bursts := f.bursts[:0]
	for _, b := range f.bursts {
		b.Emitter.Update(dt)
		if b.Emitter.AliveCount() == 0 {
			b.Dispose()
			continue
		}
		bursts = append(bursts, b)
	}
	clear(f.bursts[len(bursts):])
	f.bursts = bursts
}

// Draw paints rockets and bursts over screen.
func (f *Fireworks) Draw(screen *ebiten.Image) {
	if f.Active() == 0 {
		return
	}
	f.cmds = emitCommands(f.root, identityTransform, 1, true, f.cmds[:0])
	submitCommands(screen, f.cmds)
}

func (f *Fireworks) bounds() (w, h float64, ok bool) {
	el, ok := f.host.Lookup(f.id)
	if !ok {
		return 0, 0, false
	}
	w = el.ContainerWidth()
	if sized, isSized := el.(sizedElement); isSized {
		h = sized.ContainerHeight()
	} else {
		h = ViewportHeight(w)
	}
	return w, h, w > 0 && h > 0
}

func (f *Fireworks) launch() {
	w, h, ok := f.bounds()
	if !ok {
		return
	}
	x := w * f.opts.RocketsPoint.Random() / 100
	// Bursts land in the upper half, away from the top edge.
	targetY := h * Range{0.1, 0.5}.Random()

	hue := f.opts.Hue.Random()
	light := f.opts.Brightness.Random() / 100
	n := NewSprite("rocket", nil)
	n.SetScale(Range{1, 2}.Random(), 6)
	n.SetPivot(0.5, 0.5)
	n.SetPosition(x, h)
	n.Color = hslColor(hue, light)
	n.BlendMode = BlendAdd
	f.root.AddChild(n)

	dur := riseSeconds(h-targetY, f.opts.TraceSpeed, f.opts.Acceleration)
	f.rockets = append(f.rockets, &rocket{
		node:  n,
		rise:  TweenPosition(n, x, targetY, float32(dur), ease.InQuad),
		hue:   hue,
		light: light,
	})
	if f.sound != nil {
		f.sound.Launch()
	}
}

func (f *Fireworks) explode(r *rocket) {
	decay := f.opts.Decay.Random()
	life := 1.0
	if decay > 0 {
		life = 1 / (decay * ticksPerSecond)
	}
	c := hslColor(r.hue, r.light)
	speed := f.opts.Explosion * ticksPerSecond
	gravity := f.opts.Gravity * ticksPerSecond

	b := NewParticleEmitter("burst", EmitterConfig{
		MaxParticles: f.opts.Particles,
		Lifetime:     Range{life * 0.8, life},
		Speed:        Range{ticksPerSecond, math.Max(speed, ticksPerSecond)},
		Angle:        Range{0, 2 * math.Pi},
		StartScale:   Range{1, 3},
		EndScale:     Range{1, 1},
		StartAlpha:   Range{1, 1},
		EndAlpha:     Range{0, 0},
		Gravity:      Vec2{0, gravity},
		Friction:     f.opts.Friction,
		StartColor:   c,
		EndColor:     c,
		BlendMode:    BlendAdd,
	})
	b.BlendMode = BlendAdd
	b.SetPosition(r.node.X, r.node.Y)
	b.Emitter.Burst(f.opts.Particles)
	f.root.AddChild(b)
	f.bursts = append(f.bursts, b)

	r.node.Dispose()
	if f.sound != nil {
		f.sound.Burst()
	}
}

// riseSeconds is how long a rocket starting at speed px/tick and
// accelerating by accel each tick needs to cover dist pixels.
func riseSeconds(dist, speed, accel float64) float64 {
	if dist <= 0 || speed <= 0 {
		return 1.0 / ticksPerSecond
	}
	var ticks float64
	if accel <= 1 {
		ticks = math.Ceil(dist / speed)
	} else {
		ticks = math.Ceil(math.Log(1+dist*(accel-1)/speed) / math.Log(accel))
	}
	return math.Max(ticks, 1) / ticksPerSecond
}

func hslColor(hue, light float64) Color {
	c := colorful.Hsl(hue, 1, light).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}
