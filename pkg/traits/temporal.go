package traits

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Temporal trait IDs.
const (
	FrameRangedID   = "ayon.time.FrameRanged.v1"
	HandlesID       = "ayon.time.Handles.v1"
	SequenceID      = "ayon.time.Sequence.v1"
	SMPTETimecodeID = "ayon.time.SMPTETimecode.v1"
	StaticID        = "ayon.time.Static.v1"
)

// Gap policies. These define how gaps in a frame sequence are interpreted.
const (
	GapForbidden = "forbidden"
	GapMissing   = "missing"
	GapHold      = "hold"
	GapBlack     = "black"
)

// validGapPolicies is the set of recognized gap policy values.
var validGapPolicies = map[string]bool{
	GapForbidden: true,
	GapMissing:   true,
	GapHold:      true,
	GapBlack:     true,
}

// baseTrait provides the default no-op validation hook and persistence flag.
type baseTrait struct{}

func (baseTrait) Persistent() bool               { return true }
func (baseTrait) Validate(*Representation) error { return nil }

// FrameRanged declares the frame range of time-varying content.
//
// FramesPerSecond is a string to allow various precision formats: a decimal
// ("25"), a fraction ("30000/1001") or an irrational approximation.
type FrameRanged struct {
	baseTrait
	FrameStart      int    `json:"frame_start"`
	FrameEnd        int    `json:"frame_end"`
	FrameIn         *int   `json:"frame_in,omitempty"`
	FrameOut        *int   `json:"frame_out,omitempty"`
	FramesPerSecond string `json:"frames_per_second,omitempty"`
	Step            *int   `json:"step,omitempty"`
}

func (*FrameRanged) ID() string          { return FrameRangedID }
func (*FrameRanged) TraitName() string   { return "FrameRanged" }
func (*FrameRanged) Description() string { return "Frame Ranged Trait" }

// Handles declares extra frames around the official shot range. When
// Inclusive is true the handles are already counted in the declared
// FrameRanged range; otherwise they extend it.
type Handles struct {
	baseTrait
	Inclusive        bool `json:"inclusive,omitempty"`
	FrameStartHandle int  `json:"frame_start_handle,omitempty"`
	FrameEndHandle   int  `json:"frame_end_handle,omitempty"`
}

func (*Handles) ID() string          { return HandlesID }
func (*Handles) TraitName() string   { return "Handles" }
func (*Handles) Description() string { return "Handles Trait" }

// Sequence describes a frame sequence on top of FrameRanged and Handles:
// gap policy, frame padding, an optional frame regex and an optional
// explicit frame list specification ("1-10,20-30").
type Sequence struct {
	baseTrait
	FramePadding int    `json:"frame_padding"`
	GapsPolicy   string `json:"gaps_policy,omitempty"`
	FrameRegex   string `json:"frame_regex,omitempty"`
	FrameSpec    string `json:"frame_spec,omitempty"`
}

func (*Sequence) ID() string          { return SequenceID }
func (*Sequence) TraitName() string   { return "Sequence" }
func (*Sequence) Description() string { return "Sequence Trait Model" }

// FramePattern compiles the sequence's frame regex, falling back to
// DefaultFramePattern. The regex must carry 'index' and 'padding' named
// groups.
func (s *Sequence) FramePattern() (*regexp.Regexp, error) {
	if s.FrameRegex == "" {
		return defaultFrameRegex, nil
	}
	for _, group := range []string{"?P<index>", "?P<padding>"} {
		if !strings.Contains(s.FrameRegex, group) {
			return nil, fmt.Errorf(
				"frame regex must include 'index' and 'padding' named groups: %w",
				ErrMalformedData)
		}
	}
	re, err := regexp.Compile(s.FrameRegex)
	if err != nil {
		return nil, fmt.Errorf("compiling frame regex: %w", err)
	}
	return re, nil
}

// Validate cross-checks the sequence against sibling traits. When a
// FileLocations trait is present, the actual files must agree with the
// declared frame spec and frame padding.
func (s *Sequence) Validate(rep *Representation) error {
	if s.GapsPolicy != "" && !validGapPolicies[s.GapsPolicy] {
		return validationErrorf(s.TraitName(),
			"unknown gaps policy %q", s.GapsPolicy)
	}
	locs := siblingFileLocations(rep)
	if locs == nil {
		return nil
	}
	return s.validateFileLocations(rep, locs)
}

// validateFileLocations validates the actual files against the frame list
// specification and frame padding, taking FrameRanged and exclusive Handles
// into account.
func (s *Sequence) validateFileLocations(rep *Representation, locs *FileLocations) error {
	var handleStart, handleEnd int
	if h := siblingHandles(rep); h != nil && !h.Inclusive {
		// Inclusive handles are already accounted for in the declared
		// frame range.
		handleStart = h.FrameStartHandle
		handleEnd = h.FrameEndHandle
	}

	if s.FrameSpec != "" {
		if err := s.ValidateFrameList(locs, handleStart, handleEnd); err != nil {
			return err
		}
	}
	return s.ValidateFramePadding(locs)
}

// ValidateFrameList checks that the frame numbers present in the file
// locations equal the set declared by the frame spec, extended by the given
// exclusive handle counts. Skipped when no frame spec is set.
func (s *Sequence) ValidateFrameList(locs *FileLocations, handleStart, handleEnd int) error {
	if s.FrameSpec == "" {
		return nil
	}
	pattern, err := s.FramePattern()
	if err != nil {
		return validationErrorf(s.TraitName(), "%v", err)
	}
	collection, err := locs.assemble(pattern)
	if err != nil {
		return validationErrorf(s.TraitName(), "%v", err)
	}
	expected, err := ListSpecToFrames(s.FrameSpec)
	if err != nil {
		return validationErrorf(s.TraitName(), "%v", err)
	}

	found := collection.Frames
	expectedSet := make(map[int]struct{}, len(expected))
	for _, f := range expected {
		expectedSet[f] = struct{}{}
	}
	// Exclusive handles extend the expected set around the declared range.
	if len(expected) > 0 {
		lo, hi := expected[0], expected[0]
		for _, f := range expected {
			if f < lo {
				lo = f
			}
			if f > hi {
				hi = f
			}
		}
		for f := lo - handleStart; f < lo; f++ {
			expectedSet[f] = struct{}{}
		}
		for f := hi + 1; f <= hi+handleEnd; f++ {
			expectedSet[f] = struct{}{}
		}
	}

	foundSet := make(map[int]struct{}, len(found))
	for _, f := range found {
		foundSet[f] = struct{}{}
	}
	if !frameSetsEqual(expectedSet, foundSet) {
		return validationErrorf(s.TraitName(),
			"frame list does not match the expected frames, expected: %v, found: %v",
			sortedFrames(expectedSet), found)
	}
	return nil
}

// ValidateFramePadding checks that the declared frame padding equals the
// digit width of the highest frame index found in the file locations.
func (s *Sequence) ValidateFramePadding(locs *FileLocations) error {
	expected, err := DetectFramePadding(locs)
	if err != nil {
		return validationErrorf(s.TraitName(), "%v", err)
	}
	if s.FramePadding != expected {
		return validationErrorf(s.TraitName(),
			"frame padding does not match the expected frame padding, expected: %d, found: %d",
			expected, s.FramePadding)
	}
	return nil
}

// DetectFrames returns the frame numbers present in the file locations,
// matched by the given regex (nil uses DefaultFramePattern).
func DetectFrames(locs *FileLocations, frameRegex *regexp.Regexp) ([]int, error) {
	collection, err := locs.assemble(frameRegex)
	if err != nil {
		return nil, err
	}
	return collection.Frames, nil
}

// DetectFramePadding returns the digit width of the highest frame index
// found in the file locations.
func DetectFramePadding(locs *FileLocations) (int, error) {
	collection, err := locs.assemble(nil)
	if err != nil {
		return 0, err
	}
	return collection.Padding(), nil
}

func frameSetsEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for f := range a {
		if _, ok := b[f]; !ok {
			return false
		}
	}
	return true
}

func sortedFrames(set map[int]struct{}) []int {
	frames := make([]int, 0, len(set))
	for f := range set {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// SMPTETimecode carries an SMPTE timecode "HH:MM:SS:FF".
type SMPTETimecode struct {
	baseTrait
	Timecode string `json:"timecode"`
}

func (*SMPTETimecode) ID() string          { return SMPTETimecodeID }
func (*SMPTETimecode) TraitName() string   { return "Timecode" }
func (*SMPTETimecode) Description() string { return "SMPTE Timecode Trait" }

// Static marks content with static time (a single frame).
type Static struct {
	baseTrait
}

func (*Static) ID() string          { return StaticID }
func (*Static) TraitName() string   { return "Static" }
func (*Static) Description() string { return "Static Time Trait" }

// Sibling lookup helpers. A missing sibling is not an error during
// validation; the checks that need it are simply skipped.

func siblingFrameRanged(rep *Representation) *FrameRanged {
	if t, err := rep.GetTraitByID(FrameRangedID); err == nil {
		return t.(*FrameRanged)
	}
	return nil
}

func siblingHandles(rep *Representation) *Handles {
	if t, err := rep.GetTraitByID(HandlesID); err == nil {
		return t.(*Handles)
	}
	return nil
}

func siblingSequence(rep *Representation) *Sequence {
	if t, err := rep.GetTraitByID(SequenceID); err == nil {
		return t.(*Sequence)
	}
	return nil
}

func siblingFileLocations(rep *Representation) *FileLocations {
	if t, err := rep.GetTraitByID(FileLocationsID); err == nil {
		return t.(*FileLocations)
	}
	return nil
}
