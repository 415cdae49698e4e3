package traits

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Two-dimensional trait IDs.
const (
	ImageID      = "ayon.2d.Image.v1"
	PixelBasedID = "ayon.2d.PixelBased.v1"
	PlanarID     = "ayon.2d.Planar.v1"
	DeepID       = "ayon.2d.Deep.v1"
	OverscanID   = "ayon.2d.Overscan.v1"
	UDIMID       = "ayon.2d.UDIM.v1"
)

// DefaultUDIMPattern matches the UDIM tile number in filenames like
// "texture.1001.png" or "texture_1001.png".
const DefaultUDIMPattern = `(?:\.|_)(?P<udim>\d+)\.\D+\d?$`

// Image marks content as an image.
type Image struct {
	baseTrait
}

func (*Image) ID() string          { return ImageID }
func (*Image) TraitName() string   { return "Image" }
func (*Image) Description() string { return "Image Trait" }

// PixelBased carries the pixel-related properties of image data.
type PixelBased struct {
	baseTrait
	DisplayWindowWidth  int     `json:"display_window_width"`
	DisplayWindowHeight int     `json:"display_window_height"`
	PixelAspectRatio    float64 `json:"pixel_aspect_ratio"`
}

func (*PixelBased) ID() string          { return PixelBasedID }
func (*PixelBased) TraitName() string   { return "PixelBased" }
func (*PixelBased) Description() string { return "PixelBased Trait Model" }

// Planar marks an image with planar channel configuration, e.g. "RGB".
type Planar struct {
	baseTrait
	PlanarConfiguration string `json:"planar_configuration"`
}

func (*Planar) ID() string          { return PlanarID }
func (*Planar) TraitName() string   { return "Planar" }
func (*Planar) Description() string { return "Planar Trait Model" }

// Deep marks deep image data (e.g. deep EXR).
type Deep struct {
	baseTrait
}

func (*Deep) ID() string          { return DeepID }
func (*Deep) TraitName() string   { return "Deep" }
func (*Deep) Description() string { return "Deep Trait Model" }

// Overscan declares extra pixels around the image display window.
type Overscan struct {
	baseTrait
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

func (*Overscan) ID() string          { return OverscanID }
func (*Overscan) TraitName() string   { return "Overscan" }
func (*Overscan) Description() string { return "Overscan Trait" }

// UDIM describes a texture tile set following the UDIM convention: each
// file covers one numbered tile of a surface.
type UDIM struct {
	baseTrait
	UDIM      []int  `json:"udim"`
	UDIMRegex string `json:"udim_regex,omitempty"`
}

func (*UDIM) ID() string          { return UDIMID }
func (*UDIM) TraitName() string   { return "UDIM" }
func (*UDIM) Description() string { return "UDIM Trait" }

// pattern compiles the UDIM regex, falling back to DefaultUDIMPattern. The
// regex must carry a 'udim' named group.
func (u *UDIM) pattern() (*regexp.Regexp, error) {
	expr := u.UDIMRegex
	if expr == "" {
		expr = DefaultUDIMPattern
	}
	if !strings.Contains(expr, "?P<udim>") {
		return nil, fmt.Errorf(
			"UDIM regex must include 'udim' named group: %w", ErrMalformedData)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling UDIM regex: %w", err)
	}
	return re, nil
}

// GetFileLocationForUDIM returns the file location covering the given UDIM
// tile, or nil when no file matches.
func (u *UDIM) GetFileLocationForUDIM(locs *FileLocations, udim int) (*FileLocation, error) {
	re, err := u.pattern()
	if err != nil {
		return nil, err
	}
	group := re.SubexpIndex("udim")
	for i := range locs.FilePaths {
		name := filepath.Base(filepath.ToSlash(locs.FilePaths[i].FilePath))
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		tile, err := strconv.Atoi(m[group])
		if err != nil {
			continue
		}
		if tile == udim {
			return &locs.FilePaths[i], nil
		}
	}
	return nil, nil
}

// GetUDIMFromFileLocation returns the UDIM tile number found in the file
// name, or false when the name does not match.
func (u *UDIM) GetUDIMFromFileLocation(loc FileLocation) (int, bool) {
	re, err := u.pattern()
	if err != nil {
		return 0, false
	}
	group := re.SubexpIndex("udim")
	name := filepath.Base(filepath.ToSlash(loc.FilePath))
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	tile, err := strconv.Atoi(m[group])
	if err != nil {
		return 0, false
	}
	return tile, true
}
