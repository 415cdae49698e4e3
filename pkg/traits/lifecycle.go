package traits

// Lifecycle trait IDs.
const (
	TransientID  = "ayon.lifecycle.Transient.v1"
	PersistentID = "ayon.lifecycle.Persistent.v1"
)

// Transient marks a representation that must not survive the current
// pipeline run. Mutually exclusive with the Persistent trait.
type Transient struct {
	baseTrait
}

func (*Transient) ID() string          { return TransientID }
func (*Transient) TraitName() string   { return "Transient" }
func (*Transient) Description() string { return "Transient Trait" }

// Persistent reports false: the marker itself is not stored.
func (*Transient) Persistent() bool { return false }

// Validate fails when a Persistent trait is present on the same
// representation.
func (t *Transient) Validate(rep *Representation) error {
	if rep.ContainsTraitByID(PersistentID) {
		return validationErrorf(t.TraitName(),
			"Transient and Persistent traits are mutually exclusive")
	}
	return nil
}

// Persistent marks a representation that must survive serialization round
// trips. Mutually exclusive with the Transient trait.
type Persistent struct {
	baseTrait
}

func (*Persistent) ID() string          { return PersistentID }
func (*Persistent) TraitName() string   { return "Persistent" }
func (*Persistent) Description() string { return "Persistent Trait" }

// Validate fails when a Transient trait is present on the same
// representation.
func (p *Persistent) Validate(rep *Representation) error {
	if rep.ContainsTraitByID(TransientID) {
		return validationErrorf(p.TraitName(),
			"Transient and Persistent traits are mutually exclusive")
	}
	return nil
}
