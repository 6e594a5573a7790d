package constants

// Terminal Layout
const (
	// PixelsPerRow is the vertical pixel count of one terminal cell (half-block rendering)
	PixelsPerRow = 2

	// StatusBarHeight is the number of rows reserved for the status line
	StatusBarHeight = 1

	// MinScreenWidth and MinScreenHeight are the smallest usable terminal size in cells
	MinScreenWidth  = 20
	MinScreenHeight = 6
)

// Status line text
const (
	StatusHintOpen   = " drag a strip right, flick to dismiss "
	StatusHintClosed = " click the card or press Enter to open "
	StatusHintPaused = " PAUSED "
)
