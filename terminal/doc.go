// Package terminal is the tcell frontend of the blinds demo
//
// The screen is treated as a pixel canvas of one pixel per column and PixelsPerRow
// pixels per row, drawn with half-block glyphs. Mouse input is translated into the
// start/move/end gesture stream with release velocity estimated from recent samples.
package terminal
