package traits

// Color trait IDs.
const (
	ColorManagedID = "ayon.color.ColorManaged.v1"
)

// ColorManaged declares the colorspace of the content and optionally the
// color management config it refers to.
type ColorManaged struct {
	baseTrait
	ColorSpace string `json:"color_space"`
	Config     string `json:"config,omitempty"`
}

func (*ColorManaged) ID() string          { return ColorManagedID }
func (*ColorManaged) TraitName() string   { return "ColorManaged" }
func (*ColorManaged) Description() string { return "ColorManaged Trait" }
