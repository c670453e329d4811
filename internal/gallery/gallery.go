// Package gallery turns the stored stack list into what a surface draws:
// filtered, sorted cards with their visible layers, colours and heights.
package gallery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Card layout in pixels, as the browser build draws cards. Terminal surfaces divide by
// LayerHeight to get rows.
const (
	MaxVisibleLayers    = 5
	LayerHeight         = 50
	MoreIndicatorHeight = 28
	FooterHeight        = 80
)

// NoDescription is shown in place of an empty description.
const NoDescription = "No description provided."

// SortOrder selects the gallery ordering.
type SortOrder string

// Sort orders.
const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortLayersDesc SortOrder = "layers-desc"
	SortLayersAsc  SortOrder = "layers-asc"
)

// SortOrders lists the orders in the sequence a surface cycles through them.
var SortOrders = []SortOrder{SortNewest, SortOldest, SortLayersDesc, SortLayersAsc}

// ParseSort maps a name to a SortOrder. Unknown names fall back to newest.
func ParseSort(name string) SortOrder {
	for _, o := range SortOrders {
		if string(o) == strings.TrimSpace(strings.ToLower(name)) {
			return o
		}
	}
	return SortNewest
}

// Next returns the order after o in SortOrders, wrapping around.
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// Filter is the search term and sort order applied to the list.
type Filter struct {
	Search string
	Sort   SortOrder
}

// VisibleLayer is one layer as drawn, paired with its background style.
type VisibleLayer struct {
	types.Layer
	Style string
}

// DisplayItem is one card in the gallery.
type DisplayItem struct {
	Stack   types.Stack
	Visible []VisibleLayer
	More    int // layers hidden behind the "+ N more layers" line
	Height  int
}

// Result is the rendered gallery.
type Result struct {
	Items []DisplayItem
}

// Empty reports whether no stack survived the filter. Surfaces show the
// empty-state placeholder instead of a grid.
func (r Result) Empty() bool { return len(r.Items) == 0 }

// Render filters, sorts and lays out the stacks. The input slice is not
// modified.
func Render(stacks []types.Stack, f Filter) Result {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	kept := make([]types.Stack, 0, len(stacks))
	for _, s := range stacks {
		if term == "" || matches(s, term) {
			kept = append(kept, s)
		}
	}

	sortStacks(kept, ParseSort(string(f.Sort)))

	items := make([]DisplayItem, 0, len(kept))
	for _, s := range kept {
		items = append(items, Layout(s))
	}
	return Result{Items: items}
}

func matches(s types.Stack, term string) bool {
	if strings.Contains(strings.ToLower(s.ProjectName), term) {
		return true
	}
	for _, l := range s.Layers {
		if strings.Contains(strings.ToLower(l.Provider), term) {
			return true
		}
	}
	return false
}

func sortStacks(list []types.Stack, order SortOrder) {
	var cmp func(a, b types.Stack) int
	switch order {
	case SortOldest:
		cmp = func(a, b types.Stack) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortLayersDesc:
		cmp = func(a, b types.Stack) int { return b.LayerCount() - a.LayerCount() }
	case SortLayersAsc:
		cmp = func(a, b types.Stack) int { return a.LayerCount() - b.LayerCount() }
	default:
		cmp = func(a, b types.Stack) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	slices.SortStableFunc(list, cmp)
}

// Layout computes the card for one stack: up to MaxVisibleLayers layers,
// top of the stack first, and the card height.
func Layout(s types.Stack) DisplayItem {
	all := Detail(s)
	n := len(all)
	visible := all[:min(n, MaxVisibleLayers)]
	more := max(n-MaxVisibleLayers, 0)
	return DisplayItem{
		Stack:   s,
		Visible: visible,
		More:    more,
		Height:  CardHeight(n),
	}
}

// CardHeight is the card height for a stack with n layers.
func CardHeight(n int) int {
	h := min(n, MaxVisibleLayers)*LayerHeight + FooterHeight
	if n > MaxVisibleLayers {
		h += MoreIndicatorHeight
	}
	return h
}

// Detail projects every layer top-first with its cyclic palette style, as
// the detail view shows them.
func Detail(s types.Stack) []VisibleLayer {
	p := s.ColorPalette
	if len(p) == 0 {
		p = palette.Canonical()
	}
	out := make([]VisibleLayer, 0, len(s.Layers))
	for i := len(s.Layers) - 1; i >= 0; i-- {
		out = append(out, VisibleLayer{Layer: s.Layers[i], Style: palette.StyleAt(p, len(out))})
	}
	return out
}

// DescriptionText returns the description or the NoDescription fallback.
func DescriptionText(s types.Stack) string {
	if strings.TrimSpace(s.Description) == "" {
		return NoDescription
	}
	return s.Description
}

// LayerCountLabel renders "1 layer" or "N layers".
func LayerCountLabel(n int) string {
	if n == 1 {
		return "1 layer"
	}
	return fmt.Sprintf("%d layers", n)
}

// MoreLabel renders the overflow line for a card, or "" when nothing is
// hidden.
func MoreLabel(more int) string {
	if more <= 0 {
		return ""
	}
	return fmt.Sprintf("+ %d more layers", more)
}
