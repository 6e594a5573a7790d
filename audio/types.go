package audio

import "errors"

// SoundType represents the reveal cues
type SoundType int

const (
	SoundWhoosh SoundType = iota // Commit, strips fly off
	SoundTick                    // Revert, strips snap back
	SoundChime                   // Entrance cascade
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundWhoosh:
		return "whoosh"
	case SoundTick:
		return "tick"
	case SoundChime:
		return "chime"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrUnknownSound = errors.New("unknown sound type")
	ErrNotReady     = errors.New("audio not initialized")
)
