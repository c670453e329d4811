package stacks

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/internal/memstore"
	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repository, *memstore.Backend) {
	t.Helper()
	s := memstore.Open()
	t.Cleanup(func() { _ = s.Detach() })
	return New(s, WithClock(stepClock(epoch))), s
}

func draft(name string, layers ...string) types.StackDraft {
	d := types.StackDraft{ProjectName: name}
	for i := 0; i+1 < len(layers); i += 2 {
		d.Layers = append(d.Layers, types.Layer{Provider: layers[i], Use: layers[i+1]})
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestListEmptyStore(t *testing.T) {
	r, _ := newTestRepo(t)

	list, err := r.List()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListBlankPayload(t *testing.T) {
	r, s := newTestRepo(t)
	require.NoError(t, s.Set(types.StacksKey, "  "))

	list, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListCorruptPayload(t *testing.T) {
	r, s := newTestRepo(t)
	require.NoError(t, s.Set(types.StacksKey, `[{"id":`))

	_, err := r.List()
	assert.ErrorIs(t, err, types.ErrCorruptData)

	_, err = r.Add(draft("App", "Vercel", "Frontend"))
	assert.ErrorIs(t, err, types.ErrCorruptData, "mutations must not overwrite corrupt data")

	raw, _, _ := s.Get(types.StacksKey)
	assert.Equal(t, `[{"id":`, raw)
}

func TestAddAppendsOneRecord(t *testing.T) {
	r, _ := newTestRepo(t)

	first, err := r.Add(draft("App1", "Vercel", "Frontend"))
	require.NoError(t, err)

	before, err := r.List()
	require.NoError(t, err)

	second, err := r.Add(draft("App2", "AWS", "Backend", "Stripe", "Payments"))
	require.NoError(t, err)

	after, err := r.List()
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	for _, s := range before {
		assert.NotEqual(t, s.ID, second.ID, "new id must not already exist")
	}
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second.ID, after[len(after)-1].ID, "add appends to the end")
	assert.Equal(t, epoch.Add(2*time.Minute), second.CreatedAt)
	assert.Nil(t, second.UpdatedAt)
}

func TestAddAssignsPermutationPalette(t *testing.T) {
	r, _ := newTestRepo(t)

	s, err := r.Add(draft("App1", "Vercel", "Frontend"))
	require.NoError(t, err)
	assert.True(t, palette.IsPermutation(s.ColorPalette))
	assert.Len(t, s.ColorPalette, palette.Size, "palette length is independent of layer count")
}

func TestAddTrimsFields(t *testing.T) {
	r, _ := newTestRepo(t)

	s, err := r.Add(types.StackDraft{
		ProjectName: "  App  ",
		Description: "  notes ",
		Layers:      []types.Layer{{Provider: " Vercel", Use: "Frontend "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "App", s.ProjectName)
	assert.Equal(t, "notes", s.Description)
	assert.Equal(t, []types.Layer{{Provider: "Vercel", Use: "Frontend"}}, s.Layers)
}

func TestAddRejectsInvalidDraft(t *testing.T) {
	r, s := newTestRepo(t)

	_, err := r.Add(draft("", "Vercel", "Frontend"))
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, types.MsgProjectNameRequired, verr.Message)

	_, err = r.Add(draft("App"))
	assert.ErrorIs(t, err, types.ErrValidation)

	_, ok, err := s.Get(types.StacksKey)
	require.NoError(t, err)
	assert.False(t, ok, "nothing is written on a rejected add")
}

func TestAddRetriesDuplicateID(t *testing.T) {
	ids := []string{"a", "a", "b"}
	store := memstore.Open()
	r := New(store, WithIDGenerator(func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}))

	first, err := r.Add(draft("One", "p", "u"))
	require.NoError(t, err)
	second, err := r.Add(draft("Two", "p", "u"))
	require.NoError(t, err)

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestAddIDGeneratorError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	r := New(memstore.Open(), WithIDGenerator(func() (string, error) { return "", boom }))

	_, err := r.Add(draft("One", "p", "u"))
	assert.ErrorIs(t, err, boom)
}

func TestUpdateChangesOnlyNameAndTimestamp(t *testing.T) {
	r, _ := newTestRepo(t)

	orig, err := r.Add(types.StackDraft{
		ProjectName: "App1",
		Description: "desc",
		Layers:      []types.Layer{{Provider: "Vercel", Use: "Frontend"}},
	})
	require.NoError(t, err)

	got, found, err := r.Update(orig.ID, types.StackPatch{ProjectName: strPtr("X")})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "X", got.ProjectName)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.After(orig.CreatedAt))

	want := orig.Clone()
	want.ProjectName = "X"
	want.UpdatedAt = got.UpdatedAt
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected changes (-want +got):\n%s", diff)
	}

	stored, found, err := r.Get(orig.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, cmp.Diff(got, stored))
}

func TestUpdateKeepsPalette(t *testing.T) {
	r, _ := newTestRepo(t)

	orig, err := r.Add(draft("App1", "Vercel", "Frontend"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := r.Update(orig.ID, types.StackPatch{
			Layers: []types.Layer{{Provider: fmt.Sprintf("P%d", i), Use: "U"}, {Provider: "Q", Use: "V"}},
		})
		require.NoError(t, err)
	}

	got, _, err := r.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.ColorPalette, got.ColorPalette)
	assert.Len(t, got.Layers, 2)
}

func TestUpdateMissingIDIsSilent(t *testing.T) {
	r, s := newTestRepo(t)
	_, err := r.Add(draft("App1", "Vercel", "Frontend"))
	require.NoError(t, err)
	before, _, _ := s.Get(types.StacksKey)

	_, found, err := r.Update("nope", types.StackPatch{ProjectName: strPtr("X")})
	require.NoError(t, err)
	assert.False(t, found)

	after, _, _ := s.Get(types.StacksKey)
	assert.Equal(t, before, after)
}

func TestUpdateValidationLeavesStoreUnchanged(t *testing.T) {
	r, s := newTestRepo(t)
	orig, err := r.Add(draft("App1", "Vercel", "Frontend"))
	require.NoError(t, err)
	before, _, _ := s.Get(types.StacksKey)

	_, found, err := r.Update(orig.ID, types.StackPatch{Layers: []types.Layer{{Provider: "", Use: "x"}}})
	assert.True(t, found)
	assert.ErrorIs(t, err, types.ErrValidation)

	after, _, _ := s.Get(types.StacksKey)
	assert.Equal(t, before, after)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	r, _ := newTestRepo(t)
	a, _ := r.Add(draft("A", "p", "u"))
	b, _ := r.Add(draft("B", "p", "u"))
	c, _ := r.Add(draft("C", "p", "u"))

	require.NoError(t, r.Delete(b.ID))

	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{a.ID, c.ID}, []string{list[0].ID, list[1].ID})
	if diff := cmp.Diff(a, list[0]); diff != "" {
		t.Errorf("remaining record changed (-want +got):\n%s", diff)
	}
}

func TestDeleteMissingIDLeavesBytesUnchanged(t *testing.T) {
	r, s := newTestRepo(t)
	_, _ = r.Add(draft("A", "p", "u"))
	_, _ = r.Add(draft("B", "p", "u"))
	before, _, _ := s.Get(types.StacksKey)

	require.NoError(t, r.Delete("missing"))

	after, _, _ := s.Get(types.StacksKey)
	assert.Equal(t, before, after)
}

func TestDeleteLastLeavesEmptyArray(t *testing.T) {
	r, s := newTestRepo(t)
	a, _ := r.Add(draft("A", "p", "u"))

	require.NoError(t, r.Delete(a.ID))

	raw, ok, err := s.Get(types.StacksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, "[]", raw)
}

func TestSerializationRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	var want []types.Stack
	for i := 0; i < 4; i++ {
		s, err := r.Add(draft(fmt.Sprintf("App%d", i), "Vercel", "Frontend", "Supabase", "Database"))
		require.NoError(t, err)
		want = append(want, s)
	}
	_, _, err := r.Update(want[1].ID, types.StackPatch{Description: strPtr("edited")})
	require.NoError(t, err)
	want[1], _, _ = r.Get(want[1].ID)

	data, err := json.Marshal(want)
	require.NoError(t, err)
	var got []types.Stack
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got, len(want))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
