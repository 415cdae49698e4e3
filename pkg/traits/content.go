package traits

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Content trait IDs.
const (
	MimeTypeID         = "ayon.content.MimeType.v1"
	LocatableContentID = "ayon.content.LocatableContent.v1"
	FileLocationID     = "ayon.content.FileLocation.v1"
	FileLocationsID    = "ayon.content.FileLocations.v1"
	RootlessLocationID = "ayon.content.RootlessLocation.v1"
	CompressedID       = "ayon.content.Compressed.v1"
	BundleID           = "ayon.content.Bundle.v1"
	FragmentID         = "ayon.content.Fragment.v1"
)

// MimeType describes the type of content regardless of file extension,
// e.g. "image/jpeg". See RFC 2046 and RFC 4288.
type MimeType struct {
	baseTrait
	MimeType string `json:"mime_type"`
}

func (*MimeType) ID() string          { return MimeTypeID }
func (*MimeType) TraitName() string   { return "MimeType" }
func (*MimeType) Description() string { return "MimeType Trait Model" }

// LocatableContent is content that has a location. It doesn't have to be a
// file; it could be a URL or some other addressable location.
type LocatableContent struct {
	baseTrait
	Location    string `json:"location"`
	IsTemplated bool   `json:"is_templated,omitempty"`
}

func (*LocatableContent) ID() string          { return LocatableContentID }
func (*LocatableContent) TraitName() string   { return "LocatableContent" }
func (*LocatableContent) Description() string { return "LocatableContent Trait Model" }

// FileLocation is a single file path with optional size and hash.
type FileLocation struct {
	baseTrait
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size,omitempty"`
	FileHash string `json:"file_hash,omitempty"`
}

func (*FileLocation) ID() string          { return FileLocationID }
func (*FileLocation) TraitName() string   { return "FileLocation" }
func (*FileLocation) Description() string { return "FileLocation Trait Model" }

// FileLocations is a collection of file locations forming one deliverable,
// e.g. the files of a frame sequence or a UDIM tile set.
type FileLocations struct {
	baseTrait
	FilePaths []FileLocation `json:"file_paths"`
}

func (*FileLocations) ID() string          { return FileLocationsID }
func (*FileLocations) TraitName() string   { return "FileLocations" }
func (*FileLocations) Description() string { return "FileLocations Trait Model" }

// Paths returns the raw file paths of all locations.
func (f *FileLocations) Paths() []string {
	paths := make([]string, len(f.FilePaths))
	for i, loc := range f.FilePaths {
		paths[i] = loc.FilePath
	}
	return paths
}

// assemble groups the file paths into a single frame collection.
func (f *FileLocations) assemble(frameRegex *regexp.Regexp) (*FrameCollection, error) {
	return AssembleFrames(f.Paths(), frameRegex)
}

// Validate checks the file set shape against sibling traits: a multi-file
// set needs a Sequence or UDIM trait explaining it, a single file must not
// carry one, and a declared FrameRanged range must agree with the frame
// numbers actually present in the file names.
func (f *FileLocations) Validate(rep *Representation) error {
	if len(f.FilePaths) == 0 {
		return validationErrorf(f.TraitName(),
			"no file locations defined (empty list)")
	}

	hasSequence := rep.ContainsTraitByID(SequenceID)
	hasUDIM := rep.ContainsTraitByID(UDIMID)
	if len(f.FilePaths) > 1 && !hasSequence && !hasUDIM {
		return validationErrorf(f.TraitName(),
			"multiple file locations (%d) without a Sequence or UDIM trait",
			len(f.FilePaths))
	}
	if len(f.FilePaths) == 1 && (hasSequence || hasUDIM) {
		return validationErrorf(f.TraitName(),
			"single file location with a Sequence or UDIM trait")
	}

	if siblingFrameRanged(rep) != nil && hasSequence {
		return f.validateFrameRange(rep)
	}
	return nil
}

// validateFrameRange compares the frame numbers found in the file names
// against the declared FrameRanged range, adjusted by exclusive Handles.
func (f *FileLocations) validateFrameRange(rep *Representation) error {
	seq := siblingSequence(rep)
	pattern, err := seq.FramePattern()
	if err != nil {
		return validationErrorf(f.TraitName(), "%v", err)
	}
	collection, err := f.assemble(pattern)
	if err != nil {
		return validationErrorf(f.TraitName(), "%v", err)
	}

	if seq.FrameSpec != "" {
		// An explicit frame spec governs the exact frame set; set
		// equality is validated by the Sequence trait.
		return nil
	}

	ranged := siblingFrameRanged(rep)
	startWithHandles := ranged.FrameStart
	endWithHandles := ranged.FrameEnd
	if h := siblingHandles(rep); h != nil && !h.Inclusive {
		startWithHandles -= h.FrameStartHandle
		endWithHandles += h.FrameEndHandle
	}

	if collection.Min() != startWithHandles || collection.Max() != endWithHandles {
		return validationErrorf(f.TraitName(),
			"frame range %d-%d in files does not match frame range %d-%d defined in FrameRanged trait",
			collection.Min(), collection.Max(), startWithHandles, endWithHandles)
	}

	expectedCount := endWithHandles - startWithHandles + 1
	if len(f.FilePaths) != expectedCount {
		return validationErrorf(f.TraitName(),
			"number of file locations (%d) does not match frame range (%d)",
			len(f.FilePaths), expectedCount)
	}
	return nil
}

// GetFileLocationForFrame returns the file location whose name carries the
// given frame number, or nil when no file matches. The frame regex of the
// given Sequence trait is used when provided; otherwise DefaultFramePattern.
func (f *FileLocations) GetFileLocationForFrame(frame int, seq *Sequence) *FileLocation {
	pattern := defaultFrameRegex
	if seq != nil {
		p, err := seq.FramePattern()
		if err != nil {
			return nil
		}
		pattern = p
	}
	indexGroup := pattern.SubexpIndex("index")
	if indexGroup < 0 {
		return nil
	}
	for i := range f.FilePaths {
		m := pattern.FindStringSubmatch(f.FilePaths[i].FilePath)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[indexGroup])
		if err != nil {
			continue
		}
		if idx == frame {
			return &f.FilePaths[i]
		}
	}
	return nil
}

// RootlessLocation is a file path without a specific root, resolvable on
// multiple platforms, e.g. "{root[work]}/project/asset/asset.jpg".
type RootlessLocation struct {
	baseTrait
	RootlessPath string `json:"rootless_path"`
}

func (*RootlessLocation) ID() string          { return RootlessLocationID }
func (*RootlessLocation) TraitName() string   { return "RootlessLocation" }
func (*RootlessLocation) Description() string { return "RootlessLocation Trait Model" }

// Compressed records the compression applied to the content, e.g. "gzip".
type Compressed struct {
	baseTrait
	CompressionType string `json:"compression_type"`
}

func (*Compressed) ID() string          { return CompressedID }
func (*Compressed) TraitName() string   { return "Compressed" }
func (*Compressed) Description() string { return "Compressed Trait" }

// Bundle holds independent lists of traits that are bundled together, one
// list per sub-representation of a single entity (e.g. the textures of a
// material).
type Bundle struct {
	baseTrait
	Items [][]Trait `json:"-"`
}

func (*Bundle) ID() string          { return BundleID }
func (*Bundle) TraitName() string   { return "Bundle" }
func (*Bundle) Description() string { return "Bundle Trait" }

// bundleEntry is the wire form of one trait inside a bundle item.
type bundleEntry struct {
	TraitID string         `json:"trait_id"`
	Data    map[string]any `json:"data"`
}

// MarshalJSON encodes each bundled trait as its ID plus flat field map.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	items := make([][]bundleEntry, len(b.Items))
	for i, item := range b.Items {
		entries := make([]bundleEntry, len(item))
		for j, t := range item {
			fields, err := TraitFields(t)
			if err != nil {
				return nil, err
			}
			entries[j] = bundleEntry{TraitID: t.ID(), Data: fields}
		}
		items[i] = entries
	}
	return json.Marshal(map[string]any{"items": items})
}

// UnmarshalJSON reconstructs bundled traits through the registry.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var wire struct {
		Items [][]bundleEntry `json:"items"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding bundle items: %w", err)
	}
	b.Items = make([][]Trait, len(wire.Items))
	for i, entries := range wire.Items {
		item := make([]Trait, len(entries))
		for j, entry := range entries {
			t, err := DecodeTrait(entry.TraitID, entry.Data)
			if err != nil {
				return err
			}
			item[j] = t
		}
		b.Items[i] = item
	}
	return nil
}

// ToRepresentations expands the bundle into standalone representations, one
// per inner trait list, named "<name>_<index>".
func (b *Bundle) ToRepresentations(name string) ([]*Representation, error) {
	reps := make([]*Representation, len(b.Items))
	for i, item := range b.Items {
		rep, err := NewRepresentation(fmt.Sprintf("%s_%d", name, i), item...)
		if err != nil {
			return nil, err
		}
		reps[i] = rep
	}
	return reps, nil
}

// Fragment marks a representation as part of a larger entity represented by
// another representation, referenced by its ID. The relation is a weak
// back-reference; nothing owns anything across it.
type Fragment struct {
	baseTrait
	Parent string `json:"parent"`
}

func (*Fragment) ID() string          { return FragmentID }
func (*Fragment) TraitName() string   { return "Fragment" }
func (*Fragment) Description() string { return "Fragment Trait" }
