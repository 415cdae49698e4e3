package traits

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultFramePattern matches frame numbers in filenames of the common
// "<name>.<frame>.<ext>" shape. The named groups "index" and "padding" are
// required by every frame regex used with sequences.
const DefaultFramePattern = `\.(?P<index>(?P<padding>0*)\d+)\.\D+\d?$`

var defaultFrameRegex = regexp.MustCompile(DefaultFramePattern)

// FrameCollection is a set of files assembled into a single numbered
// sequence: a shared filename head and tail around a varying frame index.
type FrameCollection struct {
	Head   string
	Tail   string
	Frames []int
}

// Min returns the lowest frame index in the collection.
func (c *FrameCollection) Min() int {
	return c.Frames[0]
}

// Max returns the highest frame index in the collection.
func (c *FrameCollection) Max() int {
	return c.Frames[len(c.Frames)-1]
}

// Padding returns the digit width of the highest frame index.
func (c *FrameCollection) Padding() int {
	return len(strconv.Itoa(c.Max()))
}

// AssembleFrames groups file paths into one frame collection using the given
// frame regex (nil uses DefaultFramePattern). Grouping is by filename head
// and tail around the matched index. Exactly one collection must result;
// zero (no filename matched) or several (mixed naming) is an error.
func AssembleFrames(paths []string, frameRegex *regexp.Regexp) (*FrameCollection, error) {
	if frameRegex == nil {
		frameRegex = defaultFrameRegex
	}
	indexGroup := frameRegex.SubexpIndex("index")
	if indexGroup < 0 {
		return nil, fmt.Errorf(
			"frame regex must include an 'index' named group: %w", ErrMalformedData)
	}

	type group struct {
		head, tail string
		frames     map[int]struct{}
	}
	groups := map[string]*group{}
	for _, path := range paths {
		base := filepath.Base(filepath.ToSlash(path))
		loc := frameRegex.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}
		start, end := loc[2*indexGroup], loc[2*indexGroup+1]
		if start < 0 {
			continue
		}
		frame, err := strconv.Atoi(base[start:end])
		if err != nil {
			continue
		}
		head, tail := base[:start], base[end:]
		key := head + "\x00" + tail
		g, ok := groups[key]
		if !ok {
			g = &group{head: head, tail: tail, frames: map[int]struct{}{}}
			groups[key] = g
		}
		g.frames[frame] = struct{}{}
	}

	if len(groups) != 1 {
		return nil, fmt.Errorf(
			"zero or multiple collections found: %d, expected 1", len(groups))
	}
	for _, g := range groups {
		frames := make([]int, 0, len(g.frames))
		for f := range g.frames {
			frames = append(frames, f)
		}
		sort.Ints(frames)
		return &FrameCollection{Head: g.head, Tail: g.tail, Frames: frames}, nil
	}
	return nil, fmt.Errorf("zero or multiple collections found: 0, expected 1")
}

// ListSpecToFrames parses a frame list specification into concrete frame
// numbers. The spec is comma-separated segments, each a single frame "a" or
// an inclusive range "a-b" (e.g. "1-10,20-30,55").
// Returns ErrMalformedSpec for non-numeric values.
func ListSpecToFrames(listSpec string) ([]int, error) {
	var frames []int
	for _, segment := range strings.Split(listSpec, ",") {
		bounds := strings.Split(segment, "-")
		switch len(bounds) {
		case 1:
			frame, err := strconv.Atoi(bounds[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedSpec, bounds[0])
			}
			frames = append(frames, frame)
		case 2:
			start, err := strconv.Atoi(bounds[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedSpec, bounds[0])
			}
			end, err := strconv.Atoi(bounds[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedSpec, bounds[1])
			}
			for f := start; f <= end; f++ {
				frames = append(frames, f)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrMalformedSpec, segment)
		}
	}
	return frames, nil
}
