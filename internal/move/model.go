// Package move reads the on-screen move list.
package move

// Effectiveness is the matchup badge shown beside a move.
type Effectiveness int

const (
	SuperEffective Effectiveness = iota + 1
	Effective
	NotVeryEffective
	NoEffect
)

// PP is a move's remaining/maximum power points.
type PP struct {
	Current int
	Max     int
}

type Move struct {
	Name          string
	Effectiveness *Effectiveness
	PP            *PP
	Selected      bool
}

// Moves is the up-to-four move list. A nil slot failed to read.
type Moves []*Move

// Scene selects the move list layout being read.
type Scene int

const (
	SceneCommand Scene = iota
	ScenePokemon
)
