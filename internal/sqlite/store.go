// Package sqlite implements the SQLite storage backend for the shelf.
// SQLite serves as the query engine; representations.jsonl in the data
// directory is the source of truth and is rewritten atomically on every
// mutation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/pkg/store"
	"github.com/mesh-intelligence/shelf/pkg/traits"
)

// dbFile is the SQLite database file inside the data directory.
const dbFile = "shelf.db"

// record is the wire form of one stored representation, one JSON object per
// JSONL line. Unknown fields written by newer generations are ignored.
type record struct {
	RepresentationID string                    `json:"representation_id"`
	Name             string                    `json:"name"`
	Traits           map[string]map[string]any `json:"traits"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// Store implements store.Shelf on SQLite with a JSONL source of truth.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   store.Config
	dataDir  string
	db       *sql.DB
}

// NewStore creates a new SQLite store instance.
// The store is not attached; call Attach with a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Attach initializes the store with the given configuration. Creates the
// data directory if needed, rebuilds the SQLite database from
// representations.jsonl, and marks the store attached.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config store.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return store.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is disposable; remove any stale copy so the schema is
	// always fresh and the JSONL file stays authoritative.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONL(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("loading %s: %w", jsonlFile, err)
	}

	s.db = db
	s.config = config
	s.dataDir = dataDir
	s.attached = true
	return nil
}

// Detach releases the database connection. Idempotent: multiple calls
// succeed. After Detach, operations return ErrDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Save creates or updates a representation. A representation without an ID
// gets a UUID v7. Non-persistent traits are dropped; a representation
// carrying the Transient trait is refused with ErrTransient. On create,
// reusing the name of another representation fails with ErrDuplicateName.
func (s *Store) Save(rep *traits.Representation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return store.ErrDetached
	}
	if rep == nil || rep.Name == "" {
		return store.ErrInvalidID
	}
	if rep.ContainsTraitByID(traits.TransientID) {
		return fmt.Errorf("representation %s: %w", rep.Name, store.ErrTransient)
	}

	if rep.RepresentationID == "" {
		rep.RepresentationID = newUUID()
	}

	traitData, err := persistentTraitData(rep)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := record{
		RepresentationID: rep.RepresentationID,
		Name:             rep.Name,
		Traits:           traitData,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var existingName string
	var createdAt string
	err = s.db.QueryRow(
		`SELECT name, created_at FROM representations WHERE representation_id = ?`,
		rep.RepresentationID).Scan(&existingName, &createdAt)
	switch err {
	case nil:
		// Update path keeps the original creation time.
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			rec.CreatedAt = t
		}
	case sql.ErrNoRows:
		var count int
		if err := s.db.QueryRow(
			`SELECT COUNT(*) FROM representations WHERE name = ?`,
			rep.Name).Scan(&count); err != nil {
			return fmt.Errorf("checking name: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("name %s: %w", rep.Name, store.ErrDuplicateName)
		}
	default:
		return fmt.Errorf("querying representation: %w", err)
	}

	traitsJSON, err := json.Marshal(rec.Traits)
	if err != nil {
		return fmt.Errorf("encoding traits: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO representations
		 (representation_id, name, trait_count, traits, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RepresentationID, rec.Name, len(rec.Traits), string(traitsJSON),
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing representation: %w", err)
	}

	return s.persistJSONL()
}

// Load retrieves the representation with the given ID.
func (s *Store) Load(representationID string) (*traits.Representation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, store.ErrDetached
	}
	if representationID == "" {
		return nil, store.ErrInvalidID
	}
	return s.loadWhere(
		`SELECT representation_id, name, traits FROM representations
		 WHERE representation_id = ?`, representationID)
}

// LoadByName retrieves the representation with the given name.
func (s *Store) LoadByName(name string) (*traits.Representation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, store.ErrDetached
	}
	if name == "" {
		return nil, store.ErrInvalidID
	}
	return s.loadWhere(
		`SELECT representation_id, name, traits FROM representations
		 WHERE name = ?`, name)
}

func (s *Store) loadWhere(query, arg string) (*traits.Representation, error) {
	var id, name, traitsJSON string
	err := s.db.QueryRow(query, arg).Scan(&id, &name, &traitsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("representation %s: %w", arg, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying representation: %w", err)
	}

	var traitData map[string]map[string]any
	if err := json.Unmarshal([]byte(traitsJSON), &traitData); err != nil {
		return nil, fmt.Errorf("decoding traits for %s: %w", id, err)
	}
	rep, err := traits.FromTraitsDict(name, id, traitData)
	if err != nil {
		return nil, fmt.Errorf("reconstructing representation %s: %w", id, err)
	}
	return rep, nil
}

// List returns a summary row for every stored representation, ordered by
// name.
func (s *Store) List() ([]store.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, store.ErrDetached
	}
	rows, err := s.db.Query(
		`SELECT representation_id, name, trait_count, created_at, updated_at
		 FROM representations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying representations: %w", err)
	}
	defer rows.Close()

	var summaries []store.Summary
	for rows.Next() {
		var sum store.Summary
		var createdAt, updatedAt string
		if err := rows.Scan(&sum.RepresentationID, &sum.Name, &sum.TraitCount,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return summaries, nil
}

// Delete removes the representation with the given ID.
func (s *Store) Delete(representationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return store.ErrDetached
	}
	if representationID == "" {
		return store.ErrInvalidID
	}

	res, err := s.db.Exec(
		`DELETE FROM representations WHERE representation_id = ?`,
		representationID)
	if err != nil {
		return fmt.Errorf("deleting representation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("representation %s: %w", representationID, store.ErrNotFound)
	}
	return s.persistJSONL()
}

// persistJSONL dumps every representation row to the JSONL file atomically.
// The caller must hold s.mu.
func (s *Store) persistJSONL() error {
	rows, err := s.db.Query(
		`SELECT representation_id, name, traits, created_at, updated_at
		 FROM representations ORDER BY representation_id`)
	if err != nil {
		return fmt.Errorf("querying representations: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec record
		var traitsJSON, createdAt, updatedAt string
		if err := rows.Scan(&rec.RepresentationID, &rec.Name, &traitsJSON,
			&createdAt, &updatedAt); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(traitsJSON), &rec.Traits); err != nil {
			return fmt.Errorf("decoding traits for %s: %w", rec.RepresentationID, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", rec.RepresentationID, err)
		}
		records = append(records, raw)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return writeJSONL(filepath.Join(s.dataDir, jsonlFile), records)
}

// persistentTraitData externalizes the representation's traits, dropping
// the non-persistent ones.
func persistentTraitData(rep *traits.Representation) (map[string]map[string]any, error) {
	all, err := rep.GetTraits(nil)
	if err != nil {
		return nil, err
	}
	data := make(map[string]map[string]any, len(all))
	for id, tr := range all {
		if !tr.Persistent() {
			continue
		}
		fields, err := traits.TraitFields(tr)
		if err != nil {
			return nil, err
		}
		data[id] = fields
	}
	return data, nil
}

// newUUID generates a UUID v7 string for new representation IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
