// This file implements JSONL loading at Attach: the database is rebuilt in
// one transaction from the source-of-truth file. Malformed lines are
// skipped; unknown fields in well-formed lines are ignored.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// initJSONL creates an empty JSONL file when none exists, so a fresh data
// directory is immediately usable.
func initJSONL(dataDir string) error {
	path := filepath.Join(dataDir, jsonlFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return writeJSONL(path, nil)
}

// loadJSONL loads every record from the JSONL file into the representations
// table. The load is transactional: either every valid record lands or
// none do.
func loadJSONL(db *sql.DB, dataDir string) error {
	raws, err := readJSONL(filepath.Join(dataDir, jsonlFile))
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO representations
		 (representation_id, name, trait_count, traits, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range raws {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// Valid JSON of the wrong shape; skip like a malformed line.
			continue
		}
		if rec.RepresentationID == "" || rec.Name == "" {
			continue
		}
		traitsJSON, err := json.Marshal(rec.Traits)
		if err != nil {
			return fmt.Errorf("encoding traits for %s: %w", rec.RepresentationID, err)
		}
		if _, err := stmt.Exec(
			rec.RepresentationID, rec.Name, len(rec.Traits), string(traitsJSON),
			rec.CreatedAt.Format(time.RFC3339Nano),
			rec.UpdatedAt.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("inserting %s: %w", rec.RepresentationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}
	return nil
}
