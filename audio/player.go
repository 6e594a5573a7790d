package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/blinds/constants"
)

// Player plays reveal cues through the speaker
// Every method is safe to call before or without a successful Initialize, cues are then dropped
type Player struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool

	now        func() time.Time
	lastPlayed [soundTypeCount]time.Time
}

// NewPlayer creates a player, a nil cfg uses the defaults
func NewPlayer(cfg *AudioConfig) *Player {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker, a disabled config is a no-op
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences all playing cues
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close, clearing the mixer leaves it idle
	p.initialized = false
}

// Ready reports whether cues will be audible
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues soundType, repeated cues inside MinSoundGap are dropped
func (p *Player) Play(soundType SoundType) error {
	if soundType < 0 || soundType >= soundTypeCount {
		return fmt.Errorf("%w: %d", ErrUnknownSound, soundType)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotReady
	}

	now := p.now()
	if last := p.lastPlayed[soundType]; !last.IsZero() && now.Sub(last) < constants.MinSoundGap {
		return nil
	}
	p.lastPlayed[soundType] = now

	streamer := GetSoundEffect(soundType, p.cfg)
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}

// PlayCommit plays the dismissal whoosh
func (p *Player) PlayCommit() { _ = p.Play(SoundWhoosh) }

// PlayRevert plays the snap-back tick
func (p *Player) PlayRevert() { _ = p.Play(SoundTick) }

// PlayEntrance plays the entrance chime
func (p *Player) PlayEntrance() { _ = p.Play(SoundChime) }
