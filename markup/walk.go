package markup

import "strings"

// Children returns the ordered children of a container node, or nil for
// leaves. List items are returned as Nodes. Table cells are not Nodes and
// are therefore not reported; use the Table fields directly.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Document:
		return v.Children
	case *Heading:
		return v.Children
	case *Paragraph:
		return v.Children
	case *List:
		out := make([]Node, len(v.Items))
		for i, item := range v.Items {
			out[i] = item
		}
		return out
	case *ListItem:
		return v.Children
	case *BlockQuote:
		return v.Children
	case *Other:
		return v.Children
	}
	return nil
}

// PlainText flattens a subtree to the text a reader would see, dropping all
// markup syntax.
func PlainText(n Node) string {
	var b strings.Builder
	writePlainText(&b, n)
	return b.String()
}

func writePlainText(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
		return
	case *Text:
		b.WriteString(v.Content)
	case *Link:
		b.WriteString(v.Label)
	case *InlineCode:
		b.WriteString(v.Content)
	case *Strong:
		b.WriteString(v.Text)
	case *Emphasis:
		b.WriteString(v.Text)
	case *Strikethrough:
		b.WriteString(v.Text)
	case *SoftBreak:
		b.WriteByte(' ')
	case *Image:
		b.WriteString(v.Alt)
	case *CodeBlock:
		b.WriteString(v.Code)
	case *Table:
		writeRowText(b, v.Head)
		for _, row := range v.Body {
			writeRowText(b, row)
		}
	default:
		for _, child := range Children(n) {
			writePlainText(b, child)
		}
	}
}

func writeRowText(b *strings.Builder, row TableRow) {
	for _, cell := range row.Cells {
		for _, child := range cell.Children {
			writePlainText(b, child)
		}
	}
}
