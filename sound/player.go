// Package sound synthesizes the firework launch and burst effects and plays
// them through the system speaker.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the speaker rate.
const SampleRate = beep.SampleRate(44100)

// Player mixes effects into a single speaker stream. The zero value is not
// usable; call NewPlayer. Calls before Initialize are dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	// lock guards the mixer against the speaker goroutine.
	lock, unlock func()
}

// NewPlayer creates a player with a linear master volume.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		lock:   speaker.Lock,
		unlock: speaker.Unlock,
	}
}

// Initialize opens the speaker. Calling it again does nothing.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Launch plays the rocket whistle.
func (p *Player) Launch() {
	p.add(LaunchSound(SampleRate, p.volume))
}

// Burst plays the explosion.
func (p *Player) Burst() {
	p.add(BurstSound(SampleRate, p.volume))
}

func (p *Player) add(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.lock()
	p.mixer.Add(s)
	p.unlock()
}

// Playing returns how many effects are still sounding.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return 0
	}
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// Close stops every effect and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	speaker.Close()
	p.initialized = false
}
