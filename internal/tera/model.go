// Package tera detects terastallization and the resulting tera type.
package tera

// Type is a tera type.
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
	TypeStella   Type = "stella"
)

// Detection is one tera type candidate with its crystal color score.
type Detection struct {
	Type  Type
	Score float64
}

// Summary is a finished detection: the best candidate plus any close
// runners-up.
type Summary struct {
	Primary  Detection
	Possible []Detection
}
