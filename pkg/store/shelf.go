package store

import (
	"errors"
	"time"

	"github.com/mesh-intelligence/shelf/pkg/traits"
)

// Shelf defines the interface for backend-agnostic representation storage.
// Callers attach to a backend, save and load representations, and detach
// when done.
type Shelf interface {
	// Attach connects the Shelf to the backend described by config.
	// Creates the DataDir if it does not exist. Idempotent on first call;
	// returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrDetached.
	Detach() error

	// Save creates or updates a representation. Non-persistent traits are
	// dropped before writing. A representation carrying the Transient
	// trait is refused with ErrTransient. On create, a representation
	// with the name of an existing one is refused with ErrDuplicateName.
	Save(rep *traits.Representation) error

	// Load retrieves the representation with the given ID.
	// Returns ErrNotFound if no representation exists with that ID.
	Load(representationID string) (*traits.Representation, error)

	// LoadByName retrieves the representation with the given name.
	// Returns ErrNotFound if no representation carries that name.
	LoadByName(name string) (*traits.Representation, error)

	// List returns a summary for every stored representation.
	List() ([]Summary, error)

	// Delete removes the representation with the given ID.
	// Returns ErrNotFound if no representation exists with that ID.
	Delete(representationID string) error
}

// Summary is the listing view of a stored representation.
type Summary struct {
	RepresentationID string    `json:"representation_id"`
	Name             string    `json:"name"`
	TraitCount       int       `json:"trait_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Shelf lifecycle errors.
var (
	ErrDetached        = errors.New("shelf is detached")
	ErrAlreadyAttached = errors.New("shelf is already attached")
)

// Shelf operation errors.
var (
	ErrNotFound      = errors.New("representation not found")
	ErrInvalidID     = errors.New("invalid representation ID")
	ErrDuplicateName = errors.New("representation name already in use")
	ErrTransient     = errors.New("transient representation cannot be saved")
)
