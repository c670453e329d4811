package gallery

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func stackWith(name string, layers int, day int) types.Stack {
	s := types.Stack{
		ID:           name,
		ProjectName:  name,
		ColorPalette: palette.Canonical(),
		CreatedAt:    base.AddDate(0, 0, day),
	}
	for i := 0; i < layers; i++ {
		s.Layers = append(s.Layers, types.Layer{Provider: fmt.Sprintf("P%d", i), Use: fmt.Sprintf("U%d", i)})
	}
	return s
}

func names(r Result) []string {
	out := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Stack.ProjectName)
	}
	return out
}

func TestRenderSearch(t *testing.T) {
	stacks := []types.Stack{
		{ID: "1", ProjectName: "App1", Layers: []types.Layer{{Provider: "Vercel", Use: "Frontend"}}, CreatedAt: base},
		{ID: "2", ProjectName: "App2", Layers: []types.Layer{{Provider: "AWS", Use: "Backend"}}, CreatedAt: base},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "provider match case-insensitive", search: "vercel", want: []string{"App1"}},
		{name: "project name match", search: "app2", want: []string{"App2"}},
		{name: "use is not searched", search: "backend", want: []string{}},
		{name: "blank search keeps all", search: "   ", want: []string{"App1", "App2"}},
		{name: "surrounding spaces trimmed", search: "  AWS ", want: []string{"App2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(stacks, Filter{Search: tt.search, Sort: SortOldest})
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestRenderSort(t *testing.T) {
	stacks := []types.Stack{
		stackWith("one", 1, 0),
		stackWith("three", 3, 2),
		stackWith("two", 2, 1),
	}

	tests := []struct {
		sort SortOrder
		want []string
	}{
		{sort: SortLayersDesc, want: []string{"three", "two", "one"}},
		{sort: SortLayersAsc, want: []string{"one", "two", "three"}},
		{sort: SortNewest, want: []string{"three", "two", "one"}},
		{sort: SortOldest, want: []string{"one", "two", "three"}},
		{sort: "bogus", want: []string{"three", "two", "one"}},
		{sort: "", want: []string{"three", "two", "one"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := Render(stacks, Filter{Sort: tt.sort})
			assert.Equal(t, tt.want, names(got))
		})
	}

	assert.Equal(t, "one", stacks[0].ProjectName, "input must not be reordered")
}

func TestRenderSortIsStable(t *testing.T) {
	stacks := []types.Stack{stackWith("a", 2, 0), stackWith("b", 2, 1), stackWith("c", 2, 2)}

	got := Render(stacks, Filter{Sort: SortLayersDesc})
	assert.Equal(t, []string{"a", "b", "c"}, names(got))
}

func TestRenderEmpty(t *testing.T) {
	assert.True(t, Render(nil, Filter{}).Empty())
	assert.True(t, Render([]types.Stack{stackWith("a", 1, 0)}, Filter{Search: "zzz"}).Empty())
	assert.False(t, Render([]types.Stack{stackWith("a", 1, 0)}, Filter{}).Empty())
}

func TestLayoutSevenLayers(t *testing.T) {
	s := stackWith("big", 7, 0)

	item := Layout(s)
	require.Len(t, item.Visible, 5)
	assert.Equal(t, 2, item.More)
	assert.Equal(t, 358, item.Height)

	// Top of the stack first.
	assert.Equal(t, "P6", item.Visible[0].Provider)
	assert.Equal(t, "P2", item.Visible[4].Provider)
	assert.Equal(t, palette.Gradients[0], item.Visible[0].Style)
	assert.Equal(t, palette.Gradients[4], item.Visible[4].Style)
}

func TestCardHeight(t *testing.T) {
	tests := []struct {
		layers int
		want   int
	}{
		{0, 80},
		{1, 130},
		{5, 330},
		{6, 358},
		{40, 358},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.layers), func(t *testing.T) {
			assert.Equal(t, tt.want, CardHeight(tt.layers))
		})
	}
}

func TestDetailCyclesPalette(t *testing.T) {
	s := stackWith("x", 3, 0)
	s.ColorPalette = []string{"red", "blue"}

	got := Detail(s)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"red", "blue", "red"}, []string{got[0].Style, got[1].Style, got[2].Style})
	assert.Equal(t, "P2", got[0].Provider)
}

func TestDetailLegacyRecordWithoutPalette(t *testing.T) {
	s := stackWith("legacy", 2, 0)
	s.ColorPalette = nil

	got := Detail(s)
	assert.Equal(t, palette.Gradients[0], got[0].Style)
	assert.Equal(t, palette.Gradients[1], got[1].Style)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "1 layer", LayerCountLabel(1))
	assert.Equal(t, "0 layers", LayerCountLabel(0))
	assert.Equal(t, "7 layers", LayerCountLabel(7))
	assert.Equal(t, "", MoreLabel(0))
	assert.Equal(t, "+ 2 more layers", MoreLabel(2))
	assert.Equal(t, NoDescription, DescriptionText(types.Stack{Description: "  "}))
	assert.Equal(t, "hi", DescriptionText(types.Stack{Description: "hi"}))
}

func TestParseSortAndNext(t *testing.T) {
	assert.Equal(t, SortLayersAsc, ParseSort("Layers-Asc"))
	assert.Equal(t, SortNewest, ParseSort("random"))
	assert.Equal(t, SortOldest, SortNewest.Next())
	assert.Equal(t, SortNewest, SortLayersAsc.Next())
}
