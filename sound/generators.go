package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a sine whose frequency glides from `from` to `to` over its
// duration. Used for the rocket whistle.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// crackle is white noise under an exponential decay, the body of a burst.
type crackle struct {
	pos   int
	total int
	decay float64
}

func newCrackle(d time.Duration, rate beep.SampleRate) *crackle {
	total := rate.N(d)
	// Down to about -60 dB at the end.
	return &crackle{total: total, decay: math.Log(1000) / float64(max(total, 1))}
}

func (c *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.pos >= c.total {
			return i, i > 0
		}
		amp := math.Exp(-c.decay * float64(c.pos))
		val := (rand.Float64()*2 - 1) * amp
		samples[i][0] = val
		samples[i][1] = val
		c.pos++
	}
	return len(samples), true
}

func (c *crackle) Err() error { return nil }

// fade applies a linear attack and release to a streamer of known length.
type fade struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *fade {
	return &fade{streamer: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.pos < f.attack {
			vol = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; left < f.release {
			vol = math.Max(float64(left)/float64(f.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	launchDuration = 600 * time.Millisecond
	burstDuration  = 900 * time.Millisecond
	thumpDuration  = 150 * time.Millisecond
)

// LaunchSound is a rising whistle.
func LaunchSound(rate beep.SampleRate, vol float64) beep.Streamer {
	whistle := newFade(newSweep(600, 1800, launchDuration, rate), launchDuration,
		20*time.Millisecond, 200*time.Millisecond, rate)
	return withVolume(whistle, vol*0.3)
}

// BurstSound is a low thump mixed with a decaying crackle.
func BurstSound(rate beep.SampleRate, vol float64) beep.Streamer {
	thump := newFade(newSweep(90, 40, thumpDuration, rate), thumpDuration,
		2*time.Millisecond, 100*time.Millisecond, rate)
	return withVolume(beep.Mix(
		withVolume(thump, 0.6),
		withVolume(newCrackle(burstDuration, rate), 0.4),
	), vol)
}
