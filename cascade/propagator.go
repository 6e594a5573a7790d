// Package cascade makes the strips around the dragged one follow it
//
// Every strip chases its neighbour nearer to the active strip with one chase step of lag:
// below the active strip, strip i chases strip i-1; above it, strip i chases strip i+1.
// The propagator is a reactive derivation over the store: it recomputes on every change
// notification, so movement of the active strip ripples outward frame by frame.
package cascade

import (
	"time"

	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/strip"
)

// Config holds cascade tuning
type Config struct {
	ChaseDuration time.Duration
}

// DefaultConfig returns the design values
func DefaultConfig() Config {
	return Config{ChaseDuration: constants.ChaseDuration}
}

// Propagator keeps non-active strips chasing their inner neighbours
type Propagator struct {
	store  *strip.Store
	cfg    Config
	cancel func()

	running bool
	pending bool
	paused  bool
}

// New subscribes a propagator to store
func New(store *strip.Store, cfg Config) *Propagator {
	p := &Propagator{store: store, cfg: cfg}
	p.cancel = store.Observe(p.onChange)
	return p
}

// Close unsubscribes from the store, running chases are left to finish
func (p *Propagator) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// SetPaused suspends reactive recomputation, used while strips are repositioned wholesale
func (p *Propagator) SetPaused(paused bool) {
	p.paused = paused
}

func (p *Propagator) onChange(strip.Change) {
	if p.paused {
		return
	}
	p.Recompute()
}

// Recompute retargets every strip except the active one
// Calls arriving while a recompute is in progress are coalesced into one follow-up pass
func (p *Propagator) Recompute() {
	if p.running {
		p.pending = true
		return
	}
	p.running = true
	defer func() { p.running = false }()

	for {
		p.pending = false
		p.recompute()
		if !p.pending {
			return
		}
	}
}

func (p *Propagator) recompute() {
	n := p.store.Len()
	active := p.store.ActiveIndex()

	// Outward below the finger
	for i := active + 1; i < n; i++ {
		p.chase(i, i-1)
	}
	// Outward above the finger
	for i := active - 1; i >= 0; i-- {
		p.chase(i, i+1)
	}
}

// chase animates strip i toward the current offset of strip source
func (p *Propagator) chase(i, source int) {
	target := p.store.Get(source)
	if !p.store.Running(i) && p.store.Get(i) == target {
		return
	}
	p.store.AnimateTo(i, target, p.cfg.ChaseDuration, nil)
}

// Targets returns the chase source of every strip for the given active index, -1 for the
// active strip itself
func Targets(n, active int) []int {
	out := make([]int, n)
	for i := range out {
		switch {
		case i > active:
			out[i] = i - 1
		case i < active:
			out[i] = i + 1
		default:
			out[i] = -1
		}
	}
	return out
}
