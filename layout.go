package mdrender

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout metrics in points.
const (
	DefaultBlockGap         = 12.0
	DefaultListItemGap      = 6.0
	DefaultNestedListIndent = 12.0
	DefaultTableCellPadding = 5.0
)

// UnorderedMarker prefixes every unordered list item.
const UnorderedMarker = "•"

// Heading font sizes: level 1 is 36, each deeper level is 4 smaller.
const (
	headingBaseSize = 40.0
	headingStep     = 4.0
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// headerZebraIndex is the background index of a table head row.
const headerZebraIndex = 1

// Layout holds the spacing metrics applied while building the render tree.
type Layout struct {
	BlockGap         float64 // bottom padding of top-level blocks
	ListItemGap      float64 // bottom padding of each list item row
	NestedListIndent float64 // leading padding of a list nested in an item
	TableCellPadding float64 // padding around table row content
}

// DefaultLayout returns the default spacing metrics.
func DefaultLayout() Layout {
	return Layout{
		BlockGap:         DefaultBlockGap,
		ListItemGap:      DefaultListItemGap,
		NestedListIndent: DefaultNestedListIndent,
		TableCellPadding: DefaultTableCellPadding,
	}
}

// Validate checks that no metric is negative.
func (l Layout) Validate() error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"blockGap", l.BlockGap},
		{"listItemGap", l.ListItemGap},
		{"nestedListIndent", l.NestedListIndent},
		{"tableCellPadding", l.TableCellPadding},
	}
	for _, m := range metrics {
		if m.value < 0 {
			return fmt.Errorf("%w: %s is %.1f, must be >= 0", ErrInvalidLayout, m.name, m.value)
		}
	}
	return nil
}

// ListKind distinguishes ordered from unordered lists.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

// ListContext is the list state handed down to the items of a list.
// It is passed by value and never shared across siblings.
type ListContext struct {
	Kind ListKind
	// NumberPrefix is the full ordered marker of the item, e.g. "2.1.".
	// Unordered contexts carry the prefix of the enclosing ordered item.
	NumberPrefix string
}

// Marker returns the marker drawn before an item in this context.
func (c ListContext) Marker() string {
	if c.Kind == Ordered {
		return c.NumberPrefix
	}
	return UnorderedMarker
}

// itemContext derives the context of the item at zero-based index i of a
// list nested in parent. A nil parent means a top-level list.
func itemContext(parent *ListContext, ordered bool, start, i int) ListContext {
	var prefix string
	if parent != nil {
		prefix = parent.NumberPrefix
	}
	if !ordered {
		return ListContext{Kind: Unordered, NumberPrefix: prefix}
	}
	if start < 1 {
		start = 1
	}
	return ListContext{Kind: Ordered, NumberPrefix: prefix + strconv.Itoa(start+i) + "."}
}

// HeadingFontSize returns the font size of a heading: 36 for level 1 down to
// 16 for level 6. Levels outside 1..6 are clamped.
func HeadingFontSize(level int) float64 {
	level = max(minHeadingLevel, min(level, maxHeadingLevel))
	return headingBaseSize - headingStep*float64(level)
}

// ZebraIndex returns the background index of the body row at 1-based
// position i.
func ZebraIndex(i int) int {
	return i % 2
}

func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}
