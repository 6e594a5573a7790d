package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the animation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the animation step after a stall so tweens do not jump to the end
	MaxFrameDelta = 100 * time.Millisecond

	// InputQueueSize is the buffered capacity of the input event channel
	InputQueueSize = 256
)

// Strip Set
const (
	// DefaultStripCount is the number of horizontal strips a capture is cut into
	DefaultStripCount = 20

	// MaxStripCount bounds configuration input
	MaxStripCount = 256
)

// Reveal Timing
const (
	// EntranceDuration animates strip 0 from its parked offset to rest on show
	EntranceDuration = 300 * time.Millisecond

	// SettleDuration animates the released strip to its commit or revert target
	SettleDuration = 200 * time.Millisecond

	// ChaseDuration is the cascade step, shorter than the finger-driven path so strips trail
	ChaseDuration = 40 * time.Millisecond
)

// Gesture Thresholds
const (
	// VelocityThreshold is the release speed (px/s) above which a gesture commits
	// Velocity equal to the threshold reverts
	VelocityThreshold = 800.0

	// MovedThreshold is the offset of the opacity strip above which the overlay replaces the content
	MovedThreshold = 0.0

	// VelocityWindow is the trailing sample window used to estimate release velocity
	VelocityWindow = 100 * time.Millisecond

	// MinVelocitySamples is the sample count below which velocity is reported as zero
	MinVelocitySamples = 2
)
