package pokedex

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is the sqlite row shape shared by the narrator and cmd/seed.
type Record struct {
	DexNumber int    `gorm:"primaryKey;column:dex_number"`
	FormIndex int    `gorm:"primaryKey;column:form_index"`
	Name      string `gorm:"column:name"`
	FormName  string `gorm:"column:form_name"`
	Type1     string `gorm:"column:type1"`
	Type2     string `gorm:"column:type2"`
}

func (Record) TableName() string {
	return "pokemons"
}

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open pokedex %q: %w", path, err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

// LoadAll reads every pokedex row. Called once at startup to build the
// in-memory mapper.
func LoadAll(db *gorm.DB) ([]Record, error) {
	var records []Record
	if err := db.Order("dex_number, form_index").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load pokedex: %w", err)
	}
	return records, nil
}
