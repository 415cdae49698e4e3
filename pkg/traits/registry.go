package traits

import (
	"fmt"
	"sync"
)

// Factory builds a trait instance from a flat field map.
type Factory func(fields map[string]any) (Trait, error)

// Descriptor ties a versioned trait ID to the factory producing instances
// of its concrete type.
type Descriptor struct {
	ID  string
	New Factory
}

// Upgrade converts field data stored for an older trait schema version into
// an instance of a newer one.
type Upgrade struct {
	// NewID is the versioned ID of the trait type produced by Apply.
	NewID string

	// Apply takes the old-version field map and returns a current-schema
	// trait instance.
	Apply Factory
}

// Resolution kinds. A lookup either hits a descriptor verbatim, matches only
// by versionless base (loose), or finds nothing.
const (
	ResolvedExact = "exact"
	ResolvedLoose = "loose"
	ResolvedNone  = "none"
)

// Resolution is the outcome of resolving a trait ID against a registry.
// For loose matches the descriptor is the highest registered version whose
// versionless base equals the request's; the caller decides policy.
type Resolution struct {
	Kind        string
	Descriptor  *Descriptor
	RequestedID string
}

// Registry is an explicit, closed map from versioned trait ID to trait
// descriptor, with a migration table for schema upgrades. The builtin
// catalog is registered at package initialization; additional trait types
// must be registered explicitly.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*Descriptor
	upgrades map[string]Upgrade
	memo     map[string]Resolution
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*Descriptor),
		upgrades: make(map[string]Upgrade),
		memo:     make(map[string]Resolution),
	}
}

// Register adds a trait descriptor. Returns ErrDuplicateTrait if the ID is
// already registered.
func (rg *Registry) Register(desc Descriptor) error {
	if desc.ID == "" || desc.New == nil {
		return fmt.Errorf("descriptor needs an ID and a factory: %w", ErrMalformedData)
	}
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if _, ok := rg.byID[desc.ID]; ok {
		return fmt.Errorf("trait with ID %s: %w", desc.ID, ErrDuplicateTrait)
	}
	d := desc
	rg.byID[desc.ID] = &d
	// New registrations can change loose-match outcomes.
	rg.memo = make(map[string]Resolution)
	return nil
}

// RegisterUpgrade records a migration from the old versioned trait ID to a
// newer schema. Re-registering an old ID replaces the migration.
func (rg *Registry) RegisterUpgrade(oldID string, up Upgrade) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.upgrades[oldID] = up
}

// UpgradePath returns the registered migration for the given old trait ID.
func (rg *Registry) UpgradePath(oldID string) (Upgrade, bool) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	up, ok := rg.upgrades[oldID]
	return up, ok
}

// Resolve maps a trait ID (possibly unversioned) to a registered descriptor.
// An exact ID match wins. Otherwise the registry is searched for descriptors
// sharing the versionless base and the highest version is returned as a
// loose match. Results are memoized per requested ID.
func (rg *Registry) Resolve(traitID string) Resolution {
	rg.mu.RLock()
	if res, ok := rg.memo[traitID]; ok {
		rg.mu.RUnlock()
		return res
	}
	rg.mu.RUnlock()

	res := rg.resolve(traitID)

	rg.mu.Lock()
	rg.memo[traitID] = res
	rg.mu.Unlock()
	return res
}

func (rg *Registry) resolve(traitID string) Resolution {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	if desc, ok := rg.byID[traitID]; ok {
		return Resolution{
			Kind:        ResolvedExact,
			Descriptor:  desc,
			RequestedID: traitID,
		}
	}

	base := VersionlessID(traitID)
	var found *Descriptor
	foundVersion := -1
	for id, desc := range rg.byID {
		if VersionlessID(id) != base {
			continue
		}
		v, ok := VersionFromID(id)
		if !ok {
			continue
		}
		if v > foundVersion {
			found = desc
			foundVersion = v
		}
	}
	if found != nil {
		return Resolution{
			Kind:        ResolvedLoose,
			Descriptor:  found,
			RequestedID: traitID,
		}
	}
	return Resolution{Kind: ResolvedNone, RequestedID: traitID}
}

// Decode resolves a trait ID and instantiates the trait from the field map.
// Loose-match policy:
//   - request carries no version: accept the highest registered version.
//   - requested version newer than any registered: ErrIncompatibleVersion.
//   - requested version older, migration registered: apply the upgrade.
//   - requested version older, no migration: ErrIncompatibleVersion.
func (rg *Registry) Decode(traitID string, fields map[string]any) (Trait, error) {
	res := rg.Resolve(traitID)
	switch res.Kind {
	case ResolvedExact:
		return res.Descriptor.New(fields)

	case ResolvedLoose:
		requested, versioned := VersionFromID(traitID)
		if !versioned {
			return res.Descriptor.New(fields)
		}
		found, _ := VersionFromID(res.Descriptor.ID)
		if requested > found {
			return nil, fmt.Errorf(
				"requested trait version %d is higher than the known version %d for %s: %w",
				requested, found, VersionlessID(traitID), ErrIncompatibleVersion)
		}
		if up, ok := rg.UpgradePath(traitID); ok {
			return up.Apply(fields)
		}
		return nil, fmt.Errorf(
			"no upgrade path from %s to version %d: %w",
			traitID, found, ErrIncompatibleVersion)

	default:
		return nil, fmt.Errorf("trait model with ID %s: %w", traitID, ErrTraitNotFound)
	}
}

// defaultRegistry holds the builtin catalog plus explicit registrations.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a trait descriptor to the default registry.
func Register(desc Descriptor) error {
	return defaultRegistry.Register(desc)
}

// RegisterUpgrade records a migration in the default registry.
func RegisterUpgrade(oldID string, up Upgrade) {
	defaultRegistry.RegisterUpgrade(oldID, up)
}

// Resolve resolves a trait ID against the default registry.
func Resolve(traitID string) Resolution {
	return defaultRegistry.Resolve(traitID)
}

// DecodeTrait instantiates a trait from the default registry.
func DecodeTrait(traitID string, fields map[string]any) (Trait, error) {
	return defaultRegistry.Decode(traitID, fields)
}

// factoryFor builds a Factory for a concrete trait type.
func factoryFor[T any, PT interface {
	Trait
	*T
}]() Factory {
	return func(fields map[string]any) (Trait, error) {
		t := PT(new(T))
		if err := decodeFields(fields, t); err != nil {
			return nil, err
		}
		return t, nil
	}
}

func init() {
	for _, desc := range builtinDescriptors() {
		if err := defaultRegistry.Register(desc); err != nil {
			panic(err)
		}
	}
}
