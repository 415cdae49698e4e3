package traits

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Representation is a named bag of traits describing one deliverable form of
// a published product (e.g. "exr sequence", "proxy abc"). It holds at most
// one trait per trait ID. The zero value is not usable; use
// NewRepresentation or FromDict.
type Representation struct {
	// Name is the representation name. Uniqueness within the owning
	// instance is the caller's concern.
	Name string

	// RepresentationID is a globally unique identifier, defaulted to a
	// random value when not supplied.
	RepresentationID string

	data map[string]Trait
}

// newRepresentationID returns a random 128-bit hex identifier.
func newRepresentationID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Sprintf("generating representation id: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// NewRepresentation creates a representation with the given name and initial
// traits. Returns ErrDuplicateTrait if two initial traits share an ID.
func NewRepresentation(name string, initial ...Trait) (*Representation, error) {
	r := &Representation{
		Name:             name,
		RepresentationID: newRepresentationID(),
		data:             make(map[string]Trait, len(initial)),
	}
	for _, t := range initial {
		if err := r.AddTrait(t, false); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddTrait inserts a trait keyed by its ID. When existsOK is false and a
// trait with the same ID is already present, ErrDuplicateTrait is returned;
// when existsOK is true the existing trait is replaced.
func (r *Representation) AddTrait(t Trait, existsOK bool) error {
	if t == nil || t.ID() == "" {
		return fmt.Errorf("invalid trait %v: %w", t, ErrMissingTrait)
	}
	if _, ok := r.data[t.ID()]; ok && !existsOK {
		return fmt.Errorf("trait with ID %s: %w", t.ID(), ErrDuplicateTrait)
	}
	r.data[t.ID()] = t
	return nil
}

// AddTraits inserts a list of traits with per-item AddTrait semantics.
func (r *Representation) AddTraits(ts []Trait, existsOK bool) error {
	for _, t := range ts {
		if err := r.AddTrait(t, existsOK); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTrait removes the trait with the same ID as the given trait value.
// Returns ErrMissingTrait if absent.
func (r *Representation) RemoveTrait(like Trait) error {
	return r.RemoveTraitByID(like.ID())
}

// RemoveTraitByID removes the trait with the given ID.
// Returns ErrMissingTrait if absent.
func (r *Representation) RemoveTraitByID(traitID string) error {
	if _, ok := r.data[traitID]; !ok {
		return fmt.Errorf("trait with ID %s: %w", traitID, ErrMissingTrait)
	}
	delete(r.data, traitID)
	return nil
}

// RemoveTraits removes each listed trait. An empty list removes nothing;
// use Clear to drop every trait.
func (r *Representation) RemoveTraits(ts []Trait) error {
	for _, t := range ts {
		if err := r.RemoveTrait(t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTraitsByID removes each listed trait ID. An empty list removes
// nothing; use Clear to drop every trait.
func (r *Representation) RemoveTraitsByID(traitIDs []string) error {
	for _, id := range traitIDs {
		if err := r.RemoveTraitByID(id); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all traits from the representation.
func (r *Representation) Clear() {
	r.data = make(map[string]Trait)
}

// HasTraits reports whether the representation holds any traits.
func (r *Representation) HasTraits() bool {
	return len(r.data) > 0
}

// ContainsTrait reports whether a trait with the same ID as the given trait
// value is present.
func (r *Representation) ContainsTrait(like Trait) bool {
	return r.ContainsTraitByID(like.ID())
}

// ContainsTraitByID reports whether a trait with the given ID is present.
func (r *Representation) ContainsTraitByID(traitID string) bool {
	_, ok := r.data[traitID]
	return ok
}

// ContainsTraits reports whether every listed trait is present.
func (r *Representation) ContainsTraits(ts []Trait) bool {
	for _, t := range ts {
		if !r.ContainsTrait(t) {
			return false
		}
	}
	return true
}

// ContainsTraitsByID reports whether every listed trait ID is present.
func (r *Representation) ContainsTraitsByID(traitIDs []string) bool {
	for _, id := range traitIDs {
		if !r.ContainsTraitByID(id) {
			return false
		}
	}
	return true
}

// GetTrait returns the trait with the same ID as the given trait value.
// Returns ErrMissingTrait if absent.
func (r *Representation) GetTrait(like Trait) (Trait, error) {
	return r.GetTraitByID(like.ID())
}

// GetTraitByID returns the trait with the given ID. A versioned ID must
// match verbatim. An unversioned ID matches the highest version whose
// versionless base equals the request; this prefix lookup is deliberate.
// Returns ErrMissingTrait if nothing matches.
func (r *Representation) GetTraitByID(traitID string) (Trait, error) {
	if _, versioned := VersionFromID(traitID); versioned {
		t, ok := r.data[traitID]
		if !ok {
			return nil, fmt.Errorf("trait with ID %s: %w", traitID, ErrMissingTrait)
		}
		return t, nil
	}

	var found Trait
	foundVersion := -1
	for id, t := range r.data {
		if VersionlessID(id) != traitID {
			continue
		}
		v, _ := VersionFromID(id)
		if v > foundVersion {
			found = t
			foundVersion = v
		}
	}
	if found == nil {
		return nil, fmt.Errorf("trait with ID %s: %w", traitID, ErrMissingTrait)
	}
	return found, nil
}

// GetTraits returns a map of trait ID to trait for the listed trait values.
// A nil or empty list returns every trait.
func (r *Representation) GetTraits(likes []Trait) (map[string]Trait, error) {
	if len(likes) == 0 {
		result := make(map[string]Trait, len(r.data))
		for id, t := range r.data {
			result[id] = t
		}
		return result, nil
	}
	result := make(map[string]Trait, len(likes))
	for _, like := range likes {
		t, err := r.GetTrait(like)
		if err != nil {
			return nil, err
		}
		result[like.ID()] = t
	}
	return result, nil
}

// GetTraitsByIDs returns a map of trait ID to trait for the listed IDs.
// A nil or empty list returns every trait.
func (r *Representation) GetTraitsByIDs(traitIDs []string) (map[string]Trait, error) {
	if len(traitIDs) == 0 {
		result := make(map[string]Trait, len(r.data))
		for id, t := range r.data {
			result[id] = t
		}
		return result, nil
	}
	result := make(map[string]Trait, len(traitIDs))
	for _, id := range traitIDs {
		t, err := r.GetTraitByID(id)
		if err != nil {
			return nil, err
		}
		result[id] = t
	}
	return result, nil
}

// TraitsAsDict externalizes every trait to a mapping from versioned trait ID
// to flat field map, suitable for storage and exchange.
func (r *Representation) TraitsAsDict() (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(r.data))
	for id, t := range r.data {
		fields, err := TraitFields(t)
		if err != nil {
			return nil, err
		}
		result[id] = fields
	}
	return result, nil
}

// Len returns the number of traits on the representation.
func (r *Representation) Len() int {
	return len(r.data)
}

// TraitIDs returns the sorted trait IDs present on the representation.
func (r *Representation) TraitIDs() []string {
	ids := make([]string, 0, len(r.data))
	for id := range r.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate runs every contained trait's Validate hook against this
// representation. All failures are collected; the returned ValidationError
// is scoped to the representation name and joins the individual messages.
func (r *Representation) Validate() error {
	var msgs []string
	for _, id := range r.TraitIDs() {
		if err := r.data[id].Validate(r); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) > 0 {
		return &ValidationError{Scope: r.Name, Message: strings.Join(msgs, "\n")}
	}
	return nil
}

// Equal reports full structural equality: same representation ID, same name,
// same trait count, and every trait comparing field-for-field equal by ID.
func (r *Representation) Equal(other *Representation) bool {
	if other == nil {
		return false
	}
	if r.RepresentationID != other.RepresentationID {
		return false
	}
	if r.Name != other.Name {
		return false
	}
	if len(r.data) != len(other.data) {
		return false
	}
	for id, t := range r.data {
		ot, ok := other.data[id]
		if !ok {
			return false
		}
		if !TraitsEqual(t, ot) {
			return false
		}
	}
	return true
}

// Hash returns a hash derived solely from the representation ID.
func (r *Representation) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(r.RepresentationID))
	return h.Sum64()
}

// String returns the representation name.
func (r *Representation) String() string {
	return r.Name
}

// FromDict reconstructs a representation from a mapping of trait ID to flat
// field map, resolving each ID to a registered trait type. An empty
// representationID is replaced with a random one. A value that is not itself
// a mapping fails with ErrMalformedData; an ID that resolves to no
// registered trait fails with ErrTraitNotFound. Older stored versions are
// upgraded through the registry's upgrade table when available.
func FromDict(name, representationID string, traitData map[string]any) (*Representation, error) {
	if representationID == "" {
		representationID = newRepresentationID()
	}
	r := &Representation{
		Name:             name,
		RepresentationID: representationID,
		data:             make(map[string]Trait, len(traitData)),
	}
	for _, traitID := range sortedKeys(traitData) {
		fields, ok := traitData[traitID].(map[string]any)
		if !ok {
			return nil, fmt.Errorf(
				"trait data for ID %s: %w", traitID, ErrMalformedData)
		}
		t, err := DecodeTrait(traitID, fields)
		if err != nil {
			return nil, err
		}
		if err := r.AddTrait(t, false); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FromTraitsDict is FromDict for already-typed trait data, as produced by
// TraitsAsDict.
func FromTraitsDict(name, representationID string, traitData map[string]map[string]any) (*Representation, error) {
	untyped := make(map[string]any, len(traitData))
	for id, fields := range traitData {
		untyped[id] = fields
	}
	return FromDict(name, representationID, untyped)
}

// sortedKeys returns map keys in sorted order for deterministic iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
