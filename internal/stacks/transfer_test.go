package stacks

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// browserPayload is what the browser build leaves in localStorage.
const browserPayload = `[
  {"projectName":"App1","description":"","layers":[{"provider":"Vercel","use":"Frontend"}],
   "id":"1717000000000","createdAt":"2024-05-29T16:26:40.000Z",
   "colorPalette":["linear-gradient(135deg, #667eea 0%, #764ba2 100%)"]},
  {"projectName":"App2","layers":[{"provider":"AWS","use":"Backend"}],
   "id":"1717000000001","createdAt":"2024-05-29T16:26:41.000Z"}
]`

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestRepo(t)
	_, _ = src.Add(draft("A", "p", "u"))
	_, _ = src.Add(draft("B", "p", "u", "q", "v"))

	data, err := src.Export()
	require.NoError(t, err)

	dst, _ := newTestRepo(t)
	res, err := dst.Import(data, ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2}, res)

	want, _ := src.List()
	got, _ := dst.List()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("import mismatch (-want +got):\n%s", diff)
	}
}

func TestImportBrowserPayload(t *testing.T) {
	r, _ := newTestRepo(t)

	res, err := r.Import([]byte(browserPayload), ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)

	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "1717000000000", list[0].ID)
	assert.True(t, palette.IsPermutation(list[0].ColorPalette), "short palette is replaced")
	assert.True(t, palette.IsPermutation(list[1].ColorPalette), "missing palette is assigned")
	assert.Equal(t, 2024, list[1].CreatedAt.Year())
}

func TestImportPaletteMustBePermutation(t *testing.T) {
	shuffled := palette.Shuffle(palette.Canonical(), func(int) int { return 0 })

	tests := []struct {
		name    string
		palette string
		keep    bool
	}{
		{"repeated entries", `["red","blue","red"]`, false},
		{"unknown gradients", `["red"]`, false},
		{"canonical order", mustJSON(t, palette.Canonical()), true},
		{"shuffled", mustJSON(t, shuffled), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRepo(t)
			payload := `[{"id":"x1","projectName":"App","layers":[{"provider":"p","use":"u"}],"colorPalette":` + tt.palette + `}]`
			_, err := r.Import([]byte(payload), ImportAppend)
			require.NoError(t, err)

			list, err := r.List()
			require.NoError(t, err)
			require.Len(t, list, 1)
			got := list[0].ColorPalette
			assert.Len(t, got, palette.Size)
			assert.True(t, palette.IsPermutation(got))
			if tt.keep {
				assert.JSONEq(t, tt.palette, mustJSON(t, got))
			}
		})
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestImportAppendSkipsExistingIDs(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.Import([]byte(browserPayload), ImportAppend)
	require.NoError(t, err)

	res, err := r.Import([]byte(browserPayload), ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Skipped: 2}, res)

	list, _ := r.List()
	assert.Len(t, list, 2)
}

func TestImportReplace(t *testing.T) {
	r, _ := newTestRepo(t)
	_, _ = r.Add(draft("Old", "p", "u"))

	res, err := r.Import([]byte(browserPayload), ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)

	list, _ := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "App1", list[0].ProjectName)
}

func TestImportAssignsMissingIDAndTimestamp(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.Import([]byte(`[{"projectName":" New ","layers":[{"provider":"Fly","use":"Hosting"}]}]`), ImportAppend)
	require.NoError(t, err)

	list, _ := r.List()
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
	assert.Equal(t, "New", list[0].ProjectName)
}

func TestImportRejectsInvalidRecord(t *testing.T) {
	r, s := newTestRepo(t)

	_, err := r.Import([]byte(`[{"projectName":"ok","layers":[{"provider":"a","use":"b"}]},{"projectName":"bad","layers":[]}]`), ImportAppend)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Contains(t, err.Error(), "record 2")

	_, ok, _ := s.Get(types.StacksKey)
	assert.False(t, ok, "nothing written when any record is invalid")
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.Import([]byte(`{"not":"an array"}`), ImportAppend)
	assert.ErrorIs(t, err, types.ErrCorruptData)
}
