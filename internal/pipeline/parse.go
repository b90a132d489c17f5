package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdrender/internal/highlight"
	"github.com/alnah/go-mdrender/markup"
)

// ErrParse indicates the Markdown parser failed.
var ErrParse = errors.New("markdown parsing failed")

// ParseOptions holds per-document parsing options.
type ParseOptions struct {
	// SourceDir resolves relative image sources to file:// URLs.
	SourceDir string
}

// Parser abstracts Markdown text to markup tree conversion.
type Parser interface {
	Parse(ctx context.Context, content string, opts ParseOptions) (*markup.Document, error)
}

// GoldmarkParser parses Markdown using goldmark (pure Go).
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a GoldmarkParser with GFM extensions.
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes, kept as generic containers
		),
	)
	return &GoldmarkParser{md: md}
}

// Parse converts Markdown content to a markup.Document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (p *GoldmarkParser) Parse(ctx context.Context, content string, opts ParseOptions) (*markup.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *markup.Document
		err error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, r)}
			}
		}()

		source := []byte(content)
		root := p.md.Parser().Parse(text.NewReader(source))
		c := &converter{source: source, sourceDir: opts.SourceDir}
		done <- result{doc: &markup.Document{Children: c.children(root)}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

// converter maps goldmark nodes to markup nodes. One goldmark node may map
// to several markup nodes (text followed by its line break).
type converter struct {
	source    []byte
	sourceDir string
}

func (c *converter) children(n ast.Node) []markup.Node {
	var out []markup.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.convert(child)...)
	}
	return out
}

func (c *converter) convert(n ast.Node) []markup.Node {
	switch v := n.(type) {
	case *ast.Heading:
		return one(&markup.Heading{Level: v.Level, Children: c.children(v)})
	case *ast.Paragraph, *ast.TextBlock:
		return one(&markup.Paragraph{Children: c.children(n)})
	case *ast.Text:
		out := []markup.Node{&markup.Text{Content: c.text(v)}}
		switch {
		case v.HardLineBreak():
			// Hard breaks have no variant of their own and stay a run breaker.
			out = append(out, &markup.Other{})
		case v.SoftLineBreak():
			out = append(out, &markup.SoftBreak{})
		}
		return out
	case *ast.String:
		return one(&markup.Text{Content: stringValue(v)})
	case *ast.CodeSpan:
		return one(&markup.InlineCode{Content: c.codeText(v)})
	case *ast.Emphasis:
		if v.Level >= 2 {
			return one(&markup.Strong{Text: c.plainText(v)})
		}
		return one(&markup.Emphasis{Text: c.plainText(v)})
	case *east.Strikethrough:
		return one(&markup.Strikethrough{Text: c.plainText(v)})
	case *ast.Link:
		return one(&markup.Link{Label: c.plainText(v), Destination: string(v.Destination)})
	case *ast.AutoLink:
		return one(&markup.Link{Label: string(v.Label(c.source)), Destination: string(v.URL(c.source))})
	case *ast.Image:
		return one(&markup.Image{
			Source: ResolveImageSource(string(v.Destination), c.sourceDir),
			Alt:    c.plainText(v),
		})
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return one(&markup.Text{Content: b.String()})
	case *east.TaskCheckBox:
		if v.IsChecked {
			return one(&markup.Text{Content: "[x] "})
		}
		return one(&markup.Text{Content: "[ ] "})
	case *ast.FencedCodeBlock:
		return one(&markup.CodeBlock{
			Code:     c.lines(v),
			Language: highlight.Language(string(v.Language(c.source))),
		})
	case *ast.CodeBlock:
		return one(&markup.CodeBlock{Code: c.lines(v)})
	case *ast.HTMLBlock:
		return one(&markup.Other{Children: []markup.Node{&markup.Text{Content: c.lines(v)}}})
	case *ast.List:
		list := &markup.List{Ordered: v.IsOrdered(), Start: v.Start}
		for child := v.FirstChild(); child != nil; child = child.NextSibling() {
			if item, ok := child.(*ast.ListItem); ok {
				list.Items = append(list.Items, &markup.ListItem{Children: c.children(item)})
			}
		}
		return one(list)
	case *ast.ListItem:
		return one(&markup.ListItem{Children: c.children(v)})
	case *ast.ThematicBreak:
		return one(&markup.ThematicBreak{})
	case *ast.Blockquote:
		return one(&markup.BlockQuote{Children: c.children(v)})
	case *east.Table:
		return one(c.table(v))
	default:
		return one(&markup.Other{Children: c.children(n)})
	}
}

// table splits goldmark's flat table children into the head row and the
// body rows.
func (c *converter) table(n *east.Table) *markup.Table {
	t := &markup.Table{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		row := c.tableRow(child)
		if _, ok := child.(*east.TableHeader); ok {
			t.Head = row
			continue
		}
		t.Body = append(t.Body, row)
	}
	return t
}

func (c *converter) tableRow(n ast.Node) markup.TableRow {
	var row markup.TableRow
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		row.Cells = append(row.Cells, markup.TableCell{Children: c.children(cell)})
	}
	return row
}

// plainText flattens the inline content of n. Escapes and character
// references are resolved everywhere except inside code spans.
func (c *converter) plainText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.CodeSpan:
			b.WriteString(c.codeText(v))
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.WriteString(c.text(v))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.WriteString(stringValue(v))
		case *ast.AutoLink:
			b.Write(v.Label(c.source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// codeText returns the literal content of a code span. Line endings inside
// the span read as spaces.
func (c *converter) codeText(n *ast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(c.source))
		case *ast.String:
			b.Write(v.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

// text returns the content of a text node as the reader sees it.
func (c *converter) text(v *ast.Text) string {
	value := v.Segment.Value(c.source)
	if v.IsRaw() {
		return string(value)
	}
	return unescape(value)
}

func stringValue(v *ast.String) string {
	if v.IsRaw() || v.IsCode() {
		return string(v.Value)
	}
	return unescape(v.Value)
}

// unescape resolves entity names, numeric character references and
// backslash escapes, the way goldmark's HTML writer does on output.
func unescape(b []byte) string {
	return string(util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(b))))
}

// lines joins the raw source lines of a block node.
func (c *converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func one(n markup.Node) []markup.Node {
	return []markup.Node{n}
}
