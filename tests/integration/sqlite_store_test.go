// SQLite store integration tests. These exercise the full
// Attach → Save/Load/List/Delete → Detach lifecycle through the public
// store interface, including JSONL persistence across reattach.
package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/shelf/pkg/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/store"
	"github.com/mesh-intelligence/shelf/pkg/traits"
)

// newTestShelf creates a store attached to a temp directory.
func newTestShelf(t *testing.T) (store.Shelf, string) {
	t.Helper()
	dir := t.TempDir()
	s := sqlite.NewStore()
	if err := s.Attach(store.Config{Backend: store.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { s.Detach() })
	return s, dir
}

// sequenceRepresentation builds a frame-ranged representation with file
// locations that satisfy its declared range.
func sequenceRepresentation(t *testing.T, name string) *traits.Representation {
	t.Helper()
	files := make([]traits.FileLocation, 0, 5)
	for frame := 1001; frame <= 1005; frame++ {
		files = append(files, traits.FileLocation{
			FilePath: fmt.Sprintf("/renders/sh010/sh010.%04d.exr", frame),
		})
	}
	rep, err := traits.NewRepresentation(name,
		&traits.MimeType{MimeType: "image/x-exr"},
		&traits.Image{},
		&traits.FrameRanged{FrameStart: 1001, FrameEnd: 1005},
		&traits.Sequence{FramePadding: 4},
		&traits.FileLocations{FilePaths: files},
	)
	if err != nil {
		t.Fatalf("building representation: %v", err)
	}
	return rep
}

func TestStoreAttachDetachLifecycle(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "attach creates data directory and JSONL file",
			run: func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "new-data")
				s := sqlite.NewStore()
				if err := s.Attach(store.Config{Backend: store.BackendSQLite, DataDir: dir}); err != nil {
					t.Fatalf("Attach: %v", err)
				}
				defer s.Detach()

				if _, err := os.Stat(filepath.Join(dir, "representations.jsonl")); err != nil {
					t.Errorf("missing representations.jsonl: %v", err)
				}
			},
		},
		{
			name: "double attach returns ErrAlreadyAttached",
			run: func(t *testing.T) {
				s, _ := newTestShelf(t)
				err := s.Attach(store.Config{Backend: store.BackendSQLite, DataDir: t.TempDir()})
				if !errors.Is(err, store.ErrAlreadyAttached) {
					t.Fatalf("expected ErrAlreadyAttached, got %v", err)
				}
			},
		},
		{
			name: "detach is idempotent",
			run: func(t *testing.T) {
				s, _ := newTestShelf(t)
				if err := s.Detach(); err != nil {
					t.Fatalf("first Detach: %v", err)
				}
				if err := s.Detach(); err != nil {
					t.Fatalf("second Detach: %v", err)
				}
			},
		},
		{
			name: "operations after detach return ErrDetached",
			run: func(t *testing.T) {
				s, _ := newTestShelf(t)
				if err := s.Detach(); err != nil {
					t.Fatalf("Detach: %v", err)
				}
				if err := s.Save(sequenceRepresentation(t, "seq")); !errors.Is(err, store.ErrDetached) {
					t.Errorf("Save: expected ErrDetached, got %v", err)
				}
				if _, err := s.Load("some-id"); !errors.Is(err, store.ErrDetached) {
					t.Errorf("Load: expected ErrDetached, got %v", err)
				}
				if _, err := s.List(); !errors.Is(err, store.ErrDetached) {
					t.Errorf("List: expected ErrDetached, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestShelf(t)

	rep := sequenceRepresentation(t, "exr_sequence")
	if err := s.Save(rep); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rep.RepresentationID == "" {
		t.Fatal("Save did not assign a representation ID")
	}

	loaded, err := s.Load(rep.RepresentationID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rep.Equal(loaded) {
		t.Error("loaded representation differs from saved one")
	}

	byName, err := s.LoadByName("exr_sequence")
	if err != nil {
		t.Fatalf("LoadByName: %v", err)
	}
	if byName.RepresentationID != rep.RepresentationID {
		t.Errorf("LoadByName ID mismatch: %s vs %s", byName.RepresentationID, rep.RepresentationID)
	}
}

func TestStoreLoadedRepresentationValidates(t *testing.T) {
	s, _ := newTestShelf(t)

	rep := sequenceRepresentation(t, "exr_sequence")
	if err := s.Save(rep); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(rep.RepresentationID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("loaded representation should validate: %v", err)
	}
}

func TestStoreJSONLPersistence(t *testing.T) {
	dir := t.TempDir()

	s := sqlite.NewStore()
	if err := s.Attach(store.Config{Backend: store.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	rep := sequenceRepresentation(t, "exr_sequence")
	if err := s.Save(rep); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	// The JSONL file is the source of truth; a fresh store rebuilds
	// its index from it on attach.
	records := ReadJSONLFile[RepresentationDoc](t, filepath.Join(dir, "representations.jsonl"))
	if len(records) != 1 {
		t.Fatalf("expected 1 JSONL record, got %d", len(records))
	}
	if records[0].RepresentationID != rep.RepresentationID {
		t.Errorf("JSONL record ID mismatch: %s vs %s", records[0].RepresentationID, rep.RepresentationID)
	}

	fresh := sqlite.NewStore()
	if err := fresh.Attach(store.Config{Backend: store.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("reattach: %v", err)
	}
	defer fresh.Detach()

	loaded, err := fresh.Load(rep.RepresentationID)
	if err != nil {
		t.Fatalf("Load after reattach: %v", err)
	}
	if !rep.Equal(loaded) {
		t.Error("representation changed across reattach")
	}
}

func TestStoreDuplicateName(t *testing.T) {
	s, _ := newTestShelf(t)

	if err := s.Save(sequenceRepresentation(t, "exr_sequence")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	err := s.Save(sequenceRepresentation(t, "exr_sequence"))
	if !errors.Is(err, store.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStoreTransientRefused(t *testing.T) {
	s, _ := newTestShelf(t)

	rep, err := traits.NewRepresentation("scratch",
		&traits.Transient{},
		&traits.MimeType{MimeType: "text/plain"},
	)
	if err != nil {
		t.Fatalf("building representation: %v", err)
	}
	if err := s.Save(rep); !errors.Is(err, store.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestStoreDeleteAndList(t *testing.T) {
	s, _ := newTestShelf(t)

	first := sequenceRepresentation(t, "exr_sequence")
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := traits.NewRepresentation("audio_track",
		&traits.MimeType{MimeType: "audio/wav"},
	)
	if err != nil {
		t.Fatalf("building representation: %v", err)
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	summaries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "audio_track" || summaries[1].Name != "exr_sequence" {
		t.Errorf("expected name-ordered summaries, got %q, %q", summaries[0].Name, summaries[1].Name)
	}

	if err := s.Delete(first.RepresentationID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(first.RepresentationID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(first.RepresentationID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
