// Shared helpers for shelf CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/shelf/pkg/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/store"
	"github.com/mesh-intelligence/shelf/pkg/traits"
)

// attachShelf resolves the data directory, creates a SQLite store, and
// attaches it. The caller must defer shelf.Detach().
func attachShelf() (store.Shelf, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	shelf := sqlite.NewStore()
	if err := shelf.Attach(store.Config{
		Backend: store.BackendSQLite,
		DataDir: dataDir,
	}); err != nil {
		return nil, fmt.Errorf("attach shelf: %w", err)
	}

	return shelf, nil
}

// representationFile is the JSON file form of a representation, as consumed
// by add/validate and produced by export.
type representationFile struct {
	Name             string         `json:"name"`
	RepresentationID string         `json:"representation_id,omitempty"`
	Traits           map[string]any `json:"traits"`
}

// readRepresentationFile parses a representation JSON file into a
// Representation through the trait registry.
func readRepresentationFile(path string) (*traits.Representation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file representationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("%s: representation name must not be empty", path)
	}

	rep, err := traits.FromDict(file.Name, file.RepresentationID, file.Traits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

// writeRepresentationFile externalizes a representation to a JSON file.
func writeRepresentationFile(path string, rep *traits.Representation) error {
	traitData, err := rep.TraitsAsDict()
	if err != nil {
		return fmt.Errorf("externalizing representation: %w", err)
	}

	untyped := make(map[string]any, len(traitData))
	for id, fields := range traitData {
		untyped[id] = fields
	}
	out, err := json.MarshalIndent(representationFile{
		Name:             rep.Name,
		RepresentationID: rep.RepresentationID,
		Traits:           untyped,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding representation: %w", err)
	}

	return os.WriteFile(path, append(out, '\n'), 0o644)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// isNotFound returns true if the error wraps store.ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
