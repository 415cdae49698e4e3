package traits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceFiles builds a FileLocations trait with one file per frame, named
// "<head>.<frame padded to width>.<ext>".
func sequenceFiles(head, ext string, width int, frames ...int) *FileLocations {
	locs := &FileLocations{}
	for _, f := range frames {
		locs.FilePaths = append(locs.FilePaths, FileLocation{
			FilePath: fmt.Sprintf("%s.%0*d.%s", head, width, f, ext),
		})
	}
	return locs
}

// frameRange returns the inclusive integer range [start, end].
func frameRange(start, end int) []int {
	frames := make([]int, 0, end-start+1)
	for f := start; f <= end; f++ {
		frames = append(frames, f)
	}
	return frames
}

func TestSequenceFramePattern(t *testing.T) {
	tests := []struct {
		name    string
		regex   string
		wantErr bool
	}{
		{
			name:  "empty regex falls back to default",
			regex: "",
		},
		{
			name:  "custom regex with required groups",
			regex: `_(?P<index>(?P<padding>0*)\d+)\.exr$`,
		},
		{
			name:    "missing index group",
			regex:   `\.(?P<padding>0*)\d+\.exr$`,
			wantErr: true,
		},
		{
			name:    "missing padding group",
			regex:   `\.(?P<index>\d+)\.exr$`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sequence{FramePadding: 4, FrameRegex: tt.regex}

			re, err := s.FramePattern()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, re)
			}
		})
	}
}

func TestSequenceValidateGapsPolicy(t *testing.T) {
	for _, policy := range []string{"", GapForbidden, GapMissing, GapHold, GapBlack} {
		t.Run("valid_"+policy, func(t *testing.T) {
			rep, err := NewRepresentation("seq",
				&Sequence{FramePadding: 4, GapsPolicy: policy})
			require.NoError(t, err)

			s, err := rep.GetTraitByID(SequenceID)
			require.NoError(t, err)
			assert.NoError(t, s.Validate(rep))
		})
	}

	rep, err := NewRepresentation("seq",
		&Sequence{FramePadding: 4, GapsPolicy: "sometimes"})
	require.NoError(t, err)

	s, err := rep.GetTraitByID(SequenceID)
	require.NoError(t, err)
	err = s.Validate(rep)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Sequence", verr.Scope)
	assert.Contains(t, verr.Message, "gaps policy")
}

func TestSequenceValidateWithoutFileLocations(t *testing.T) {
	rep, err := NewRepresentation("seq",
		&Sequence{FramePadding: 4, FrameSpec: "1-100"})
	require.NoError(t, err)

	s, err := rep.GetTraitByID(SequenceID)
	require.NoError(t, err)
	assert.NoError(t, s.Validate(rep))
}

func TestSequenceValidateFrameList(t *testing.T) {
	tests := []struct {
		name        string
		frameSpec   string
		files       []int
		handles     *Handles
		wantErr     bool
		wantMessage string
	}{
		{
			name:      "files match the spec",
			frameSpec: "1001-1005",
			files:     frameRange(1001, 1005),
		},
		{
			name:      "spec with a deliberate gap",
			frameSpec: "1001-1002,1004-1005",
			files:     []int{1001, 1002, 1004, 1005},
		},
		{
			name:        "missing frame",
			frameSpec:   "1001-1005",
			files:       []int{1001, 1002, 1004, 1005},
			wantErr:     true,
			wantMessage: "frame list does not match",
		},
		{
			name:        "extra frame",
			frameSpec:   "1001-1005",
			files:       frameRange(1001, 1006),
			wantErr:     true,
			wantMessage: "frame list does not match",
		},
		{
			name:      "exclusive handles extend the expected range",
			frameSpec: "1001-1005",
			files:     frameRange(999, 1007),
			handles:   &Handles{FrameStartHandle: 2, FrameEndHandle: 2},
		},
		{
			name:        "exclusive handles declared but handle frames missing",
			frameSpec:   "1001-1005",
			files:       frameRange(1001, 1005),
			handles:     &Handles{FrameStartHandle: 2, FrameEndHandle: 2},
			wantErr:     true,
			wantMessage: "frame list does not match",
		},
		{
			name:      "inclusive handles do not extend the range",
			frameSpec: "1001-1005",
			files:     frameRange(1001, 1005),
			handles:   &Handles{Inclusive: true, FrameStartHandle: 2, FrameEndHandle: 2},
		},
		{
			name:        "malformed frame spec",
			frameSpec:   "a-3",
			files:       frameRange(1001, 1005),
			wantErr:     true,
			wantMessage: "invalid frame number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := &Sequence{FramePadding: 4, FrameSpec: tt.frameSpec}
			traits := []Trait{
				seq,
				sequenceFiles("render", "exr", 4, tt.files...),
			}
			if tt.handles != nil {
				traits = append(traits, tt.handles)
			}
			rep, err := NewRepresentation("seq", traits...)
			require.NoError(t, err)

			err = seq.Validate(rep)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tt.wantMessage)
		})
	}
}

func TestSequenceValidateFramePadding(t *testing.T) {
	tests := []struct {
		name    string
		padding int
		wantErr bool
	}{
		{
			name:    "padding matches",
			padding: 4,
		},
		{
			name:    "padding too small",
			padding: 3,
			wantErr: true,
		},
		{
			name:    "padding too large",
			padding: 5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := &Sequence{FramePadding: tt.padding}
			locs := sequenceFiles("render", "exr", 4, frameRange(1001, 1005)...)

			err := seq.ValidateFramePadding(locs)

			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Message, "frame padding does not match")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDetectFrames(t *testing.T) {
	locs := sequenceFiles("render", "exr", 4, 1003, 1001, 1002)

	frames, err := DetectFrames(locs, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1001, 1002, 1003}, frames)
}

func TestDetectFramesMixedCollections(t *testing.T) {
	locs := &FileLocations{FilePaths: []FileLocation{
		{FilePath: "render.1001.exr"},
		{FilePath: "preview.1001.exr"},
	}}

	_, err := DetectFrames(locs, nil)
	assert.Error(t, err)
}

func TestDetectFramePadding(t *testing.T) {
	tests := []struct {
		name   string
		frames []int
		width  int
		want   int
	}{
		{name: "four digit frames", frames: frameRange(1001, 1005), width: 4, want: 4},
		{name: "padded low frames", frames: frameRange(1, 5), width: 4, want: 1},
		{name: "unpadded frames", frames: frameRange(98, 102), width: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs := sequenceFiles("render", "exr", tt.width, tt.frames...)

			got, err := DetectFramePadding(locs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
