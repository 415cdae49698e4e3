package traits

// Meta trait IDs.
const (
	TaggedID               = "ayon.meta.Tagged.v1"
	TemplatePathID         = "ayon.meta.TemplatePath.v1"
	VariantID              = "ayon.meta.Variant.v1"
	SourceApplicationID    = "ayon.meta.SourceApplication.v1"
	KeepOriginalLocationID = "ayon.meta.KeepOriginalLocation.v1"
	KeepOriginalNameID     = "ayon.meta.KeepOriginalName.v1"
)

// Tagged holds a list of free-form tags.
type Tagged struct {
	baseTrait
	Tags []string `json:"tags"`
}

func (*Tagged) ID() string          { return TaggedID }
func (*Tagged) TraitName() string   { return "Tagged" }
func (*Tagged) Description() string { return "Tagged Trait" }

// TemplatePath is a path template plus the data to resolve it, e.g.
// "{root}/{project}/{asset}" with a mapping of template keys to values.
type TemplatePath struct {
	baseTrait
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

func (*TemplatePath) ID() string          { return TemplatePathID }
func (*TemplatePath) TraitName() string   { return "TemplatePath" }
func (*TemplatePath) Description() string { return "TemplatePath Trait" }

// Variant distinguishes different forms of the same product, e.g. "Main",
// "Proxy".
type Variant struct {
	baseTrait
	Variant string `json:"variant"`
}

func (*Variant) ID() string          { return VariantID }
func (*Variant) TraitName() string   { return "Variant" }
func (*Variant) Description() string { return "Variant Trait" }

// SourceApplication records the application the content was produced with.
type SourceApplication struct {
	baseTrait
	Application string `json:"application"`
	Variant     string `json:"variant,omitempty"`
	Version     string `json:"version,omitempty"`
	Platform    string `json:"platform,omitempty"`
	HostName    string `json:"host_name,omitempty"`
}

func (*SourceApplication) ID() string          { return SourceApplicationID }
func (*SourceApplication) TraitName() string   { return "SourceApplication" }
func (*SourceApplication) Description() string { return "SourceApplication Trait" }

// KeepOriginalLocation marks content that must stay at its original
// location instead of being relocated by integration.
type KeepOriginalLocation struct {
	baseTrait
}

func (*KeepOriginalLocation) ID() string          { return KeepOriginalLocationID }
func (*KeepOriginalLocation) TraitName() string   { return "KeepOriginalLocation" }
func (*KeepOriginalLocation) Description() string { return "Keep Original Location Trait" }

// KeepOriginalName marks content that must keep its original file name
// instead of being renamed by integration.
type KeepOriginalName struct {
	baseTrait
}

func (*KeepOriginalName) ID() string          { return KeepOriginalNameID }
func (*KeepOriginalName) TraitName() string   { return "KeepOriginalName" }
func (*KeepOriginalName) Description() string { return "Keep Original Name Trait" }
