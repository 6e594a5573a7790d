package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Whoosh Sound Timing (commit)
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)

// Tick Sound Timing (revert)
const (
	TickSoundDuration = 80 * time.Millisecond
	TickSoundAttack   = 5 * time.Millisecond
	TickSoundRelease  = 60 * time.Millisecond
)

// Chime Sound Timing (entrance)
const (
	ChimeSoundNote1Duration = 80 * time.Millisecond
	ChimeSoundNote2Duration = 220 * time.Millisecond
	ChimeSoundAttack        = 5 * time.Millisecond
	ChimeSoundNote1Release  = 40 * time.Millisecond
	ChimeSoundNote2Release  = 180 * time.Millisecond
)
