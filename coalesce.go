package mdrender

import (
	"strings"

	"github.com/alnah/go-mdrender/markup"
)

// Coalesce merges adjacent inline nodes into plain text runs.
//
// Text, Link, InlineCode, Strong, Emphasis and Strikethrough are written in
// their Markdown literal form and merged into the text run that immediately
// precedes them. A SoftBreak becomes a single space inside a run and is
// dropped when no run is open. Any other node is emitted as-is and closes
// the run.
//
// Strong, Emphasis and Strikethrough carry flattened plain text, so markup
// nested inside them is not re-coalesced. The input is never mutated.
func Coalesce(children []markup.Node) []markup.Node {
	out := make([]markup.Node, 0, len(children))

	var run strings.Builder
	open := false
	flush := func() {
		if open {
			out = append(out, &markup.Text{Content: run.String()})
			run.Reset()
			open = false
		}
	}
	appendRun := func(parts ...string) {
		for _, p := range parts {
			run.WriteString(p)
		}
		open = true
	}

	for _, child := range children {
		switch v := child.(type) {
		case *markup.Text:
			appendRun(v.Content)
		case *markup.Link:
			appendRun("[", v.Label, "](", v.Destination, ")")
		case *markup.InlineCode:
			appendRun("`", v.Content, "`")
		case *markup.Strong:
			appendRun("**", v.Text, "**")
		case *markup.Emphasis:
			appendRun("*", v.Text, "*")
		case *markup.Strikethrough:
			appendRun("~", v.Text, "~")
		case *markup.SoftBreak:
			if open {
				run.WriteByte(' ')
			}
		default:
			flush()
			out = append(out, child)
		}
	}
	flush()

	return out
}

// headingText concatenates the literal text of a heading's children. Only
// Text, Link and InlineCode contribute.
func headingText(children []markup.Node) string {
	var b strings.Builder
	for _, child := range children {
		switch v := child.(type) {
		case *markup.Text:
			b.WriteString(v.Content)
		case *markup.Link:
			b.WriteString("[" + v.Label + "](" + v.Destination + ")")
		case *markup.InlineCode:
			b.WriteString("`" + v.Content + "`")
		}
	}
	return b.String()
}
