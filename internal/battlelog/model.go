// Package battlelog reads the on-screen message log and stabilizes it so
// each message is announced exactly once.
package battlelog

// Type tells which log box a message was read from.
type Type int

const (
	TypeGeneral Type = iota
	TypeBattle
)

// Log is one on-screen message, split into display lines.
type Log struct {
	Type  Type
	Lines []string
}
