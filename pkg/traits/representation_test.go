package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepresentation(t *testing.T) {
	rep, err := NewRepresentation("exr",
		&Image{},
		&MimeType{MimeType: "image/x-exr"},
	)
	require.NoError(t, err)

	assert.Equal(t, "exr", rep.Name)
	assert.NotEmpty(t, rep.RepresentationID)
	assert.Equal(t, 2, rep.Len())
	assert.True(t, rep.ContainsTraitByID(ImageID))
	assert.True(t, rep.ContainsTraitByID(MimeTypeID))
}

func TestNewRepresentationDuplicateInitialTraits(t *testing.T) {
	_, err := NewRepresentation("exr", &Image{}, &Image{})
	assert.ErrorIs(t, err, ErrDuplicateTrait)
}

func TestNewRepresentationUniqueIDs(t *testing.T) {
	a, err := NewRepresentation("a")
	require.NoError(t, err)
	b, err := NewRepresentation("a")
	require.NoError(t, err)

	assert.NotEqual(t, a.RepresentationID, b.RepresentationID)
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestAddTrait(t *testing.T) {
	tests := []struct {
		name     string
		existing []Trait
		add      Trait
		existsOK bool
		wantErr  error
	}{
		{
			name: "add new trait",
			add:  &Image{},
		},
		{
			name:     "duplicate rejected",
			existing: []Trait{&Image{}},
			add:      &Image{},
			wantErr:  ErrDuplicateTrait,
		},
		{
			name:     "duplicate replaced with exists ok",
			existing: []Trait{&MimeType{MimeType: "image/png"}},
			add:      &MimeType{MimeType: "image/x-exr"},
			existsOK: true,
		},
		{
			name:    "nil trait rejected",
			add:     nil,
			wantErr: ErrMissingTrait,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := NewRepresentation("test", tt.existing...)
			require.NoError(t, err)

			err = rep.AddTrait(tt.add, tt.existsOK)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.True(t, rep.ContainsTrait(tt.add))
			}
		})
	}
}

func TestAddTraitReplaceKeepsNewValue(t *testing.T) {
	rep, err := NewRepresentation("test", &MimeType{MimeType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, rep.AddTrait(&MimeType{MimeType: "image/x-exr"}, true))

	got, err := rep.GetTraitByID(MimeTypeID)
	require.NoError(t, err)
	assert.Equal(t, "image/x-exr", got.(*MimeType).MimeType)
	assert.Equal(t, 1, rep.Len())
}

func TestRemoveTrait(t *testing.T) {
	tests := []struct {
		name    string
		initial []Trait
		remove  Trait
		wantErr error
	}{
		{
			name:    "remove existing trait",
			initial: []Trait{&Image{}, &Deep{}},
			remove:  &Image{},
		},
		{
			name:    "remove missing trait",
			initial: []Trait{&Image{}},
			remove:  &Deep{},
			wantErr: ErrMissingTrait,
		},
		{
			name:    "remove from empty representation",
			remove:  &Image{},
			wantErr: ErrMissingTrait,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := NewRepresentation("test", tt.initial...)
			require.NoError(t, err)

			err = rep.RemoveTrait(tt.remove)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, len(tt.initial), rep.Len(), "failed remove must not mutate")
			} else {
				assert.NoError(t, err)
				assert.False(t, rep.ContainsTrait(tt.remove))
			}
		})
	}
}

func TestRemoveTraitsEmptyListRemovesNothing(t *testing.T) {
	rep, err := NewRepresentation("test", &Image{}, &Deep{})
	require.NoError(t, err)

	require.NoError(t, rep.RemoveTraits(nil))
	assert.Equal(t, 2, rep.Len())

	require.NoError(t, rep.RemoveTraitsByID([]string{}))
	assert.Equal(t, 2, rep.Len())
}

func TestClear(t *testing.T) {
	rep, err := NewRepresentation("test", &Image{}, &Deep{}, &Static{})
	require.NoError(t, err)

	rep.Clear()

	assert.False(t, rep.HasTraits())
	assert.Equal(t, 0, rep.Len())

	// Still usable after clearing.
	require.NoError(t, rep.AddTrait(&Image{}, false))
	assert.Equal(t, 1, rep.Len())
}

func TestContainsTraits(t *testing.T) {
	rep, err := NewRepresentation("test", &Image{}, &Deep{})
	require.NoError(t, err)

	assert.True(t, rep.ContainsTraits([]Trait{&Image{}, &Deep{}}))
	assert.False(t, rep.ContainsTraits([]Trait{&Image{}, &Static{}}))
	assert.True(t, rep.ContainsTraitsByID([]string{ImageID}))
	assert.False(t, rep.ContainsTraitsByID([]string{ImageID, StaticID}))
}

func TestGetTraitByID(t *testing.T) {
	rep, err := NewRepresentation("test",
		&Image{},
		&MimeType{MimeType: "image/x-exr"},
	)
	require.NoError(t, err)

	tests := []struct {
		name    string
		traitID string
		wantID  string
		wantErr error
	}{
		{
			name:    "versioned lookup",
			traitID: MimeTypeID,
			wantID:  MimeTypeID,
		},
		{
			name:    "unversioned lookup matches versioned trait",
			traitID: "ayon.content.MimeType",
			wantID:  MimeTypeID,
		},
		{
			name:    "versioned lookup of absent version",
			traitID: "ayon.content.MimeType.v2",
			wantErr: ErrMissingTrait,
		},
		{
			name:    "missing trait",
			traitID: StaticID,
			wantErr: ErrMissingTrait,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rep.GetTraitByID(tt.traitID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID())
			}
		})
	}
}

func TestGetTraitsEmptyListReturnsAll(t *testing.T) {
	rep, err := NewRepresentation("test", &Image{}, &Deep{})
	require.NoError(t, err)

	all, err := rep.GetTraits(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = rep.GetTraitsByIDs(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTraitsByIDsMissingFails(t *testing.T) {
	rep, err := NewRepresentation("test", &Image{})
	require.NoError(t, err)

	_, err = rep.GetTraitsByIDs([]string{ImageID, StaticID})
	assert.ErrorIs(t, err, ErrMissingTrait)
}

func TestTraitIDsSorted(t *testing.T) {
	rep, err := NewRepresentation("test", &Static{}, &Image{}, &Deep{})
	require.NoError(t, err)

	assert.Equal(t, []string{DeepID, ImageID, StaticID}, rep.TraitIDs())
}

func TestRepresentationEqual(t *testing.T) {
	base := func() *Representation {
		rep, err := FromTraitsDict("exr", "fixed-id", map[string]map[string]any{
			MimeTypeID: {"mime_type": "image/x-exr"},
		})
		require.NoError(t, err)
		return rep
	}

	tests := []struct {
		name   string
		mutate func(*Representation)
		want   bool
	}{
		{
			name:   "identical representations",
			mutate: func(*Representation) {},
			want:   true,
		},
		{
			name:   "different name",
			mutate: func(r *Representation) { r.Name = "png" },
			want:   false,
		},
		{
			name:   "different id",
			mutate: func(r *Representation) { r.RepresentationID = "other-id" },
			want:   false,
		},
		{
			name: "different trait count",
			mutate: func(r *Representation) {
				require.NoError(t, r.AddTrait(&Image{}, false))
			},
			want: false,
		},
		{
			name: "different trait field value",
			mutate: func(r *Representation) {
				require.NoError(t, r.AddTrait(&MimeType{MimeType: "image/png"}, true))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(b)
			assert.Equal(t, tt.want, a.Equal(b))
		})
	}
}

func TestRepresentationEqualNil(t *testing.T) {
	rep, err := NewRepresentation("test")
	require.NoError(t, err)
	assert.False(t, rep.Equal(nil))
}

func TestTraitsAsDictRoundTrip(t *testing.T) {
	rep, err := NewRepresentation("exr_seq",
		&MimeType{MimeType: "image/x-exr"},
		&FrameRanged{FrameStart: 1001, FrameEnd: 1005, FramesPerSecond: "25"},
		&Sequence{FramePadding: 4, FrameSpec: "1001-1005"},
		&Tagged{Tags: []string{"review", "final"}},
	)
	require.NoError(t, err)

	data, err := rep.TraitsAsDict()
	require.NoError(t, err)
	require.Len(t, data, 4)
	assert.Equal(t, "image/x-exr", data[MimeTypeID]["mime_type"])

	back, err := FromTraitsDict(rep.Name, rep.RepresentationID, data)
	require.NoError(t, err)
	assert.True(t, rep.Equal(back))

	ranged, err := back.GetTraitByID(FrameRangedID)
	require.NoError(t, err)
	assert.Equal(t, 1001, ranged.(*FrameRanged).FrameStart)
	assert.Equal(t, "25", ranged.(*FrameRanged).FramesPerSecond)
}

func TestFromDict(t *testing.T) {
	tests := []struct {
		name    string
		repID   string
		data    map[string]any
		wantErr error
	}{
		{
			name:  "valid data",
			repID: "abc",
			data: map[string]any{
				MimeTypeID: map[string]any{"mime_type": "image/png"},
			},
		},
		{
			name:  "empty representation id is generated",
			repID: "",
			data:  map[string]any{},
		},
		{
			name:  "non-mapping trait data",
			repID: "abc",
			data: map[string]any{
				MimeTypeID: "image/png",
			},
			wantErr: ErrMalformedData,
		},
		{
			name:  "unknown trait id",
			repID: "abc",
			data: map[string]any{
				"ayon.nonsense.Unknown.v1": map[string]any{},
			},
			wantErr: ErrTraitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := FromDict("test", tt.repID, tt.data)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, rep.RepresentationID)
			if tt.repID != "" {
				assert.Equal(t, tt.repID, rep.RepresentationID)
			}
			assert.Equal(t, len(tt.data), rep.Len())
		})
	}
}

func TestFromDictIgnoresUnknownFields(t *testing.T) {
	rep, err := FromDict("test", "", map[string]any{
		MimeTypeID: map[string]any{
			"mime_type":    "image/png",
			"future_field": "from a newer writer",
		},
	})
	require.NoError(t, err)

	got, err := rep.GetTraitByID(MimeTypeID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.(*MimeType).MimeType)
}

func TestRepresentationValidateAggregatesFailures(t *testing.T) {
	rep, err := NewRepresentation("broken",
		&Transient{},
		&Persistent{},
		&Sequence{FramePadding: 4, GapsPolicy: "bogus"},
		&FileLocations{FilePaths: []FileLocation{
			{FilePath: "render.1001.exr"},
			{FilePath: "render.1002.exr"},
		}},
	)
	require.NoError(t, err)

	err = rep.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "broken", verr.Scope)
	// Mutual exclusion fires for both lifecycle traits plus the bad gaps
	// policy; all failures are reported together.
	assert.Contains(t, verr.Message, "mutually exclusive")
	assert.Contains(t, verr.Message, "gaps policy")
}

func TestRepresentationValidateCleanPasses(t *testing.T) {
	rep, err := NewRepresentation("single",
		&MimeType{MimeType: "image/png"},
		&FileLocations{FilePaths: []FileLocation{{FilePath: "thumb.png"}}},
	)
	require.NoError(t, err)

	assert.NoError(t, rep.Validate())
}

func TestRepresentationString(t *testing.T) {
	rep, err := NewRepresentation("exr")
	require.NoError(t, err)
	assert.Equal(t, "exr", rep.String())
}
