package traits

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
)

// Trait is the contract every trait fulfills: a versioned ID, display
// metadata, a persistence flag, and a validation hook against the owning
// representation. Trait values are treated as immutable once added to a
// representation.
type Trait interface {
	// ID returns the versioned trait ID, "<namespace>.<category>.<Name>.v<N>".
	ID() string

	// TraitName returns the human-facing trait name. Not unique.
	TraitName() string

	// Description returns the human-facing trait description.
	Description() string

	// Persistent reports whether the trait survives serialization round
	// trips. Non-persistent traits are dropped by stores.
	Persistent() bool

	// Validate checks cross-trait invariants against the representation.
	// Failure is signalled with a *ValidationError, never a boolean.
	Validate(rep *Representation) error
}

// versionSuffix matches the trailing ".v<N>" of a trait ID.
var versionSuffix = regexp.MustCompile(`\.v(\d+)$`)

// VersionFromID extracts the schema version from a trait ID. The second
// return value is false when the ID carries no version suffix.
func VersionFromID(id string) (int, bool) {
	m := versionSuffix.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// VersionlessID strips the trailing ".v<N>" from a trait ID, if present.
func VersionlessID(id string) string {
	return versionSuffix.ReplaceAllString(id, "")
}

// TraitFields externalizes a trait to a flat field map matching its JSON
// field set. The result is suitable for storage and for reconstructing the
// trait through the registry.
func TraitFields(t Trait) (map[string]any, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshaling trait %s: %w", t.ID(), err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("externalizing trait %s: %w", t.ID(), err)
	}
	return fields, nil
}

// TraitsEqual reports whether two traits have the same ID and compare
// field-for-field equal on their externalized field maps.
func TraitsEqual(a, b Trait) bool {
	if a.ID() != b.ID() {
		return false
	}
	af, err := TraitFields(a)
	if err != nil {
		return false
	}
	bf, err := TraitFields(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(af, bf)
}

// decodeFields reconstructs a trait value from a flat field map. Unknown
// fields are ignored for forward compatibility with data written by newer
// generations.
func decodeFields(fields map[string]any, out Trait) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding trait data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s data: %w", out.ID(), err)
	}
	return nil
}
