package mdrender

import "github.com/alnah/go-mdrender/internal/highlight"

// RenderNode is one node of the render tree. The set of variants is closed:
// consumers switch on the concrete type and keep a default arm.
//
// Every field needed to draw a node is resolved when the tree is built; the
// presentation layer never looks back at the markup tree.
type RenderNode interface {
	renderNode()
}

// CodeToken is one classified piece of a code block.
type CodeToken = highlight.Token

// TextRun is a run of plain text. Headings are text runs with Heading set
// and a font size derived from their level.
type TextRun struct {
	Content       string
	Heading       bool
	HeadingLevel  int
	FontSize      float64
	BottomPadding float64
}

// ImageSlot is an image placeholder bound to an asynchronous load. The slot
// draws a progress indicator, the image, or ImageFailurePlaceholder
// depending on Load.State().
type ImageSlot struct {
	Source string
	Alt    string
	Load   *ImageLoad
}

// CodeBlockRun is a block of code, drawn monospaced. Tokens is nil when
// highlighting is disabled.
type CodeBlockRun struct {
	Code          string
	Language      string
	Tokens        []CodeToken
	BottomPadding float64
}

// ListItemRow is a list marker laid out on the same line as its body.
type ListItemRow struct {
	Marker        string
	Body          []RenderNode
	BottomPadding float64
}

// QuoteRow is one child of a block quote, drawn behind a vertical bar.
type QuoteRow struct {
	Body []RenderNode
	// TrailingGapPadding is set on the last row of a top-level quote only.
	TrailingGapPadding bool
	BottomPadding      float64
}

// TableView is a table laid out as rows of cells.
type TableView struct {
	Rows          []TableRowView
	BottomPadding float64
}

// TableRowView is one table row. ZebraIndex selects the row background:
// the head row is always 1, body rows alternate starting with 1.
type TableRowView struct {
	Cells      []TableCellView
	ZebraIndex int
	Header     bool
	Padding    float64
}

// TableCellView is one table cell. Every cell but the first of its row is
// preceded by a vertical divider.
type TableCellView struct {
	LeadingDivider bool
	Body           []RenderNode
}

// Divider is a horizontal rule.
type Divider struct{}

// Group stacks its children vertically.
type Group struct {
	Children       []RenderNode
	BottomPadding  float64
	LeadingPadding float64
}

func (*TextRun) renderNode()      {}
func (*ImageSlot) renderNode()    {}
func (*CodeBlockRun) renderNode() {}
func (*ListItemRow) renderNode()  {}
func (*QuoteRow) renderNode()     {}
func (*TableView) renderNode()    {}
func (*Divider) renderNode()      {}
func (*Group) renderNode()        {}

// Walk visits n and its descendants depth-first, in display order. When fn
// returns false the children of that node are skipped.
func Walk(n RenderNode, fn func(RenderNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range renderChildren(n) {
		Walk(child, fn)
	}
}

func renderChildren(n RenderNode) []RenderNode {
	switch v := n.(type) {
	case *Group:
		return v.Children
	case *ListItemRow:
		return v.Body
	case *QuoteRow:
		return v.Body
	case *TableView:
		var out []RenderNode
		for _, row := range v.Rows {
			for _, cell := range row.Cells {
				out = append(out, cell.Body...)
			}
		}
		return out
	default:
		return nil
	}
}
