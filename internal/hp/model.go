// Package hp tracks hit point readings and decides when a change is worth
// announcing.
package hp

// Scene is a screen layout in which HP gauges appear.
type Scene int

const (
	SceneCommand Scene = iota
	SceneMove
)

// VisibleHp is an HP value whose numbers are readable on screen.
type VisibleHp struct {
	Current int
	Max     int
}

// Reading holds the HP values visible in one frame, keyed by the scene they
// were read from. Absent keys mean the gauge was not shown or not readable.
type Reading[T any] map[Scene]T
