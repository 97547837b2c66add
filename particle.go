package tooni

import (
	"math"
	"math/rand/v2"
)

// span is a value interpolated linearly from birth to death.
type span struct {
	from, to, cur float32
}

func newSpan(from, to float64) span {
	return span{from: float32(from), to: float32(to), cur: float32(from)}
}

func (s *span) at(t float32) {
	s.cur = s.from + (s.to-s.from)*t
}

type particle struct {
	x, y    float64
	vx, vy  float64
	life    float64 // seconds left
	maxLife float64
	scale   span
	alpha   span
	r, g, b span
}

// EmitterConfig describes the particles a burst spawns.
type EmitterConfig struct {
	// MaxParticles is the pool size. Particles beyond it are dropped.
	MaxParticles int
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial speeds in px/s.
	Speed Range
	// Angle is the range of launch angles in radians.
	Angle Range
	// StartScale and EndScale bound the size at birth and death.
	StartScale, EndScale Range
	// StartAlpha and EndAlpha bound the opacity at birth and death.
	StartAlpha, EndAlpha Range
	// Gravity is a constant acceleration in px/s².
	Gravity Vec2
	// Friction multiplies velocity once per 1/60 s. Zero means no drag.
	Friction float64
	// StartColor is the tint at birth, interpolated to EndColor.
	StartColor, EndColor Color
	BlendMode            BlendMode
}

// ParticleEmitter simulates a fixed pool of particles on the CPU. Particles
// are spawned by Burst and live out their lifetime under gravity and drag.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
}

func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	n := cfg.MaxParticles
	if n <= 0 {
		n = 128
	}
	return &ParticleEmitter{config: cfg, particles: make([]particle, n)}
}

// Burst spawns up to n particles at the emitter origin and returns how many
// fit in the pool.
func (e *ParticleEmitter) Burst(n int) int {
	spawned := 0
	for ; spawned < n && e.alive < len(e.particles); spawned++ {
		e.spawn(&e.particles[e.alive])
		e.alive++
	}
	return spawned
}

// Reset kills every particle.
func (e *ParticleEmitter) Reset() {
	e.alive = 0
}

// AliveCount returns the number of live particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Update advances the simulation by dt seconds.
func (e *ParticleEmitter) Update(dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt
	drag := 1.0
	if f := e.config.Friction; f > 0 && f != 1 {
		drag = math.Pow(f, dt*60)
	}

	for i := 0; i < e.alive; {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx = (p.vx + gx) * drag
		p.vy = (p.vy + gy) * drag
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := float32(1 - p.life/p.maxLife)
		p.scale.at(t)
		p.alpha.at(t)
		p.r.at(t)
		p.g.at(t)
		p.b.at(t)
		i++
	}
}

func (e *ParticleEmitter) spawn(p *particle) {
	cfg := &e.config
	angle := cfg.Angle.Random()
	speed := cfg.Speed.Random()

	p.x, p.y = 0, 0
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed
	p.life = cfg.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1
	}
	p.maxLife = p.life
	p.scale = newSpan(cfg.StartScale.Random(), cfg.EndScale.Random())
	p.alpha = newSpan(cfg.StartAlpha.Random(), cfg.EndAlpha.Random())
	p.r = newSpan(cfg.StartColor.R, cfg.EndColor.R)
	p.g = newSpan(cfg.StartColor.G, cfg.EndColor.G)
	p.b = newSpan(cfg.StartColor.B, cfg.EndColor.B)
}

// Random returns a uniform value in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
