package traits

// Three-dimensional trait IDs.
const (
	SpatialID = "ayon.3d.Spatial.v1"
)

// Spatial describes the spatial conventions of 3D content: up axis,
// handedness and scene unit scale.
type Spatial struct {
	baseTrait
	UpAxis        string  `json:"up_axis"`
	Handedness    string  `json:"handedness,omitempty"`
	MetersPerUnit float64 `json:"meters_per_unit,omitempty"`
}

func (*Spatial) ID() string          { return SpatialID }
func (*Spatial) TraitName() string   { return "Spatial" }
func (*Spatial) Description() string { return "Spatial Trait" }
