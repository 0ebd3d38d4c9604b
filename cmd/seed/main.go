package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/eleven-am/battle-narrator/internal/pokedex"
)

// Imports a tab-separated pokedex dump into the sqlite database the
// narrator reads at startup. Columns: dex_number, form_index, name,
// form_name, type1, type2. Lines starting with # are skipped.
func main() {
	tsvPath := os.Getenv("POKEDEX_TSV")
	if tsvPath == "" {
		tsvPath = "pokedex.tsv"
	}
	dbPath := os.Getenv("POKEDEX_PATH")
	if dbPath == "" {
		dbPath = "pokedex.db"
	}

	records, err := readDump(tsvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", tsvPath, err)
		os.Exit(1)
	}

	db, err := pokedex.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	if err := pokedex.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to migrate: %v\n", err)
		os.Exit(1)
	}
	if err := db.Save(&records).Error; err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d pokedex rows into %s\n", len(records), dbPath)
}

func readDump(path string) ([]pokedex.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.Comment = '#'
	r.FieldsPerRecord = 6

	var records []pokedex.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		dex, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("bad dex number %q: %w", row[0], err)
		}
		form, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("bad form index %q: %w", row[1], err)
		}
		records = append(records, pokedex.Record{
			DexNumber: dex,
			FormIndex: form,
			Name:      row[2],
			FormName:  row[3],
			Type1:     row[4],
			Type2:     row[5],
		})
	}
	return records, nil
}
