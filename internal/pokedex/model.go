// Package pokedex maps recognized pokemon identities to speech-friendly
// names and types.
package pokedex

// Type is a pokemon type as stored in the pokedex.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
	TypeUnknown  Type = "unknown"
)

// ID identifies a pokemon by pokedex number and form.
type ID struct {
	DexNumber int
	FormIndex int
}

// Team is an ordered roster. A nil slot means recognition failed for that
// slot or the slot is genuinely empty.
type Team []*ID

// SlotUnknown marks an unrecognized roster-slot index in a selection reading.
const SlotUnknown = -1

// Pokemon is the speech-ready pokedex entry. Typesets holds every type
// combination the on-screen artwork cannot distinguish between.
type Pokemon struct {
	ID       ID
	Name     string
	Typesets [][]Type
}
