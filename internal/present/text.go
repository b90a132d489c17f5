// Package present draws render trees for the command line: as styled
// terminal text, or as a YAML outline of the tree itself.
package present

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	mdrender "github.com/alnah/go-mdrender"
)

// DefaultWidth is the wrap width when none is configured.
const DefaultWidth = 80

// Paddings are expressed in points. A terminal line is one block gap high
// and a column is half a list item gap wide.
const (
	pointsPerLine   = mdrender.DefaultBlockGap
	pointsPerColumn = mdrender.DefaultListItemGap
)

const (
	quoteBar    = "│"
	ruleRune    = "─"
	crossRune   = "┼"
	ellipsis    = "…"
	codeIndent  = "  "
	cellDivider = " │ "
)

// Text draws render trees as wrapped, styled terminal text.
type Text struct {
	width  int
	styles Styles
}

// TextOption configures a Text presenter.
type TextOption func(*Text)

// WithWidth sets the wrap width. Widths below 1 keep the default.
func WithWidth(width int) TextOption {
	return func(t *Text) {
		if width > 0 {
			t.width = width
		}
	}
}

// WithStyles replaces the default palette.
func WithStyles(s Styles) TextOption {
	return func(t *Text) {
		t.styles = s
	}
}

// NewText creates a Text presenter styled for stdout.
func NewText(opts ...TextOption) *Text {
	t := &Text{
		width:  DefaultWidth,
		styles: DefaultStyles(lipgloss.NewRenderer(os.Stdout)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Width returns the wrap width.
func (t *Text) Width() int {
	return t.width
}

// Render writes root to w.
func (t *Text) Render(w io.Writer, root mdrender.RenderNode) error {
	_, err := io.WriteString(w, t.String(root))
	return err
}

// String draws root. Trailing blank lines are dropped and every line ends
// with a newline.
func (t *Text) String(root mdrender.RenderNode) string {
	lines := trimBlankTail(t.lines(root, t.width))
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (t *Text) lines(n mdrender.RenderNode, width int) []string {
	switch v := n.(type) {
	case *mdrender.Group:
		indent := columns(v.LeadingPadding)
		out := indentLines(t.stack(v.Children, width-indent), indent)
		return pad(out, v.BottomPadding)
	case *mdrender.TextRun:
		style := t.styles.Body
		if v.Heading {
			style = t.styles.heading(v.HeadingLevel)
		}
		return pad(styleLines(style, wrap(v.Content, width)), v.BottomPadding)
	case *mdrender.ImageSlot:
		return []string{t.image(v)}
	case *mdrender.CodeBlockRun:
		return pad(t.code(v), v.BottomPadding)
	case *mdrender.ListItemRow:
		return pad(t.listItem(v, width), v.BottomPadding)
	case *mdrender.QuoteRow:
		return pad(t.quote(v, width), v.BottomPadding)
	case *mdrender.TableView:
		return pad(t.table(v, width), v.BottomPadding)
	case *mdrender.Divider:
		return []string{t.styles.Rule.Render(strings.Repeat(ruleRune, max(width, 1)))}
	default:
		return nil
	}
}

func (t *Text) stack(nodes []mdrender.RenderNode, width int) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, t.lines(n, width)...)
	}
	return out
}

func (t *Text) listItem(v *mdrender.ListItemRow, width int) []string {
	markerWidth := ansi.StringWidth(v.Marker) + 1
	body := t.stack(v.Body, width-markerWidth)
	if len(body) == 0 {
		body = []string{""}
	}

	marker := t.styles.Marker.Render(v.Marker) + " "
	hang := strings.Repeat(" ", markerWidth)
	out := make([]string, len(body))
	for i, line := range body {
		if i == 0 {
			out[i] = marker + line
			continue
		}
		out[i] = hang + line
	}
	return out
}

func (t *Text) quote(v *mdrender.QuoteRow, width int) []string {
	bar := t.styles.Quote.Render(quoteBar)
	body := trimBlankTail(t.stack(v.Body, width-2))

	out := make([]string, 0, len(body)+1)
	for _, line := range body {
		out = append(out, bar+" "+line)
	}
	if v.TrailingGapPadding {
		out = append(out, bar)
	}
	return out
}

func (t *Text) image(v *mdrender.ImageSlot) string {
	label := v.Alt
	if label == "" {
		label = v.Source
	}
	if v.Load == nil {
		return t.styles.ImageError.Render(mdrender.ImageFailurePlaceholder)
	}

	state := v.Load.State()
	switch state.Status {
	case mdrender.ImageSuccess:
		return t.styles.ImageOK.Render(fmt.Sprintf("[image: %s, %d bytes]", label, len(state.Data)))
	case mdrender.ImageFailure:
		return t.styles.ImageError.Render(mdrender.ImageFailurePlaceholder)
	default:
		return t.styles.ImageDim.Render(fmt.Sprintf("[loading image: %s]", label))
	}
}

func (t *Text) code(v *mdrender.CodeBlockRun) []string {
	if v.Code == "" {
		return []string{codeIndent}
	}
	if len(v.Tokens) == 0 {
		return indentCode(styleLines(t.styles.Code, strings.Split(v.Code, "\n")))
	}

	lines := []string{""}
	for _, tok := range v.Tokens {
		style := t.styles.token(tok.Class)
		for i, piece := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, "")
			}
			if piece != "" {
				lines[len(lines)-1] += style.Render(piece)
			}
		}
	}
	return indentCode(lines)
}

// table draws the rows as aligned columns. Cell bodies are flattened to one
// line; rows wider than width are truncated.
func (t *Text) table(v *mdrender.TableView, width int) []string {
	if len(v.Rows) == 0 {
		return nil
	}

	cells := make([][]string, len(v.Rows))
	var widths []int
	for r, row := range v.Rows {
		for c, cell := range row.Cells {
			text := strings.Join(t.stack(cell.Body, math.MaxInt32), " ")
			cells[r] = append(cells[r], text)
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], ansi.StringWidth(text))
		}
	}

	divider := t.styles.TableBorder.Render(cellDivider)
	out := make([]string, 0, len(v.Rows)+1)
	for r, row := range v.Rows {
		margin := strings.Repeat(" ", max(columns(row.Padding), 1))

		var b strings.Builder
		for c, cell := range row.Cells {
			if cell.LeadingDivider {
				b.WriteString(divider)
			}
			text := cells[r][c]
			b.WriteString(text)
			b.WriteString(strings.Repeat(" ", widths[c]-ansi.StringWidth(text)))
		}

		line := margin + b.String() + margin
		switch {
		case row.Header:
			line = t.styles.TableHeader.Render(line)
		case row.ZebraIndex == 1:
			line = t.styles.TableZebra.Render(line)
		}
		out = append(out, ansi.Truncate(line, max(width, 1), ellipsis))

		if row.Header {
			out = append(out, ansi.Truncate(t.headerRule(widths, margin), max(width, 1), ellipsis))
		}
	}
	return out
}

func (t *Text) headerRule(widths []int, margin string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat(ruleRune, w)
	}
	rule := strings.Repeat(ruleRune, len(margin))
	sep := ruleRune + crossRune + ruleRune
	return t.styles.TableBorder.Render(rule + strings.Join(parts, sep) + rule)
}

// columns converts a horizontal padding to terminal columns.
func columns(points float64) int {
	if points <= 0 {
		return 0
	}
	return int(math.Round(points / pointsPerColumn))
}

// pad appends one blank line per full line of bottom padding.
func pad(lines []string, points float64) []string {
	n := int(points / pointsPerLine)
	for range n {
		lines = append(lines, "")
	}
	return lines
}

func wrap(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, max(width, 1), ""), "\n")
}

func styleLines(style lipgloss.Style, lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

func indentLines(lines []string, n int) []string {
	if n <= 0 {
		return lines
	}
	prefix := strings.Repeat(" ", n)
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return lines
}

func indentCode(lines []string) []string {
	for i, line := range lines {
		lines[i] = codeIndent + line
	}
	return lines
}

func trimBlankTail(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
