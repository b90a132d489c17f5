package markup_test

// Notes:
// - Kind() is covered indirectly by the String table; each variant is listed once.
// - Children for Heading/Paragraph/BlockQuote share one code path per case; we
//   sample the ones with special handling (List converts items).

import (
	"testing"

	"github.com/alnah/go-mdrender/markup"
)

// ---------------------------------------------------------------------------
// TestKind_String - Variant names
// ---------------------------------------------------------------------------

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		node markup.Node
		want string
	}{
		{&markup.Document{}, "Document"},
		{&markup.Heading{}, "Heading"},
		{&markup.Paragraph{}, "Paragraph"},
		{&markup.Text{}, "Text"},
		{&markup.Link{}, "Link"},
		{&markup.InlineCode{}, "InlineCode"},
		{&markup.Strong{}, "Strong"},
		{&markup.Emphasis{}, "Emphasis"},
		{&markup.Strikethrough{}, "Strikethrough"},
		{&markup.SoftBreak{}, "SoftBreak"},
		{&markup.Image{}, "Image"},
		{&markup.CodeBlock{}, "CodeBlock"},
		{&markup.List{}, "List"},
		{&markup.ListItem{}, "ListItem"},
		{&markup.ThematicBreak{}, "ThematicBreak"},
		{&markup.BlockQuote{}, "BlockQuote"},
		{&markup.Table{}, "Table"},
		{&markup.Other{}, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.node.Kind().String(); got != tt.want {
				t.Errorf("Kind().String() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := markup.Kind(999).String(); got != "Unknown" {
		t.Errorf("Kind(999).String() = %q, want %q", got, "Unknown")
	}
}

// ---------------------------------------------------------------------------
// TestChildren - Container access
// ---------------------------------------------------------------------------

func TestChildren(t *testing.T) {
	t.Parallel()

	item := &markup.ListItem{Children: []markup.Node{&markup.Text{Content: "a"}}}
	list := &markup.List{Items: []*markup.ListItem{item, item}}

	got := markup.Children(list)
	if len(got) != 2 {
		t.Fatalf("len(Children(list)) = %d, want 2", len(got))
	}
	if got[0] != markup.Node(item) {
		t.Errorf("Children(list)[0] = %v, want the list item", got[0])
	}

	if got := markup.Children(&markup.Text{Content: "leaf"}); got != nil {
		t.Errorf("Children(text) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestPlainText - Flattening
// ---------------------------------------------------------------------------

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node markup.Node
		want string
	}{
		{
			name: "nil node",
			node: nil,
			want: "",
		},
		{
			name: "paragraph with inline markup",
			node: &markup.Paragraph{Children: []markup.Node{
				&markup.Text{Content: "see "},
				&markup.Link{Label: "docs", Destination: "https://example.com"},
				&markup.SoftBreak{},
				&markup.Strong{Text: "now"},
			}},
			want: "see docs now",
		},
		{
			name: "table rows",
			node: &markup.Table{
				Head: markup.TableRow{Cells: []markup.TableCell{{Children: []markup.Node{&markup.Text{Content: "h"}}}}},
				Body: []markup.TableRow{
					{Cells: []markup.TableCell{{Children: []markup.Node{&markup.Text{Content: "b"}}}}},
				},
			},
			want: "hb",
		},
		{
			name: "nested list",
			node: &markup.List{Items: []*markup.ListItem{
				{Children: []markup.Node{&markup.Paragraph{Children: []markup.Node{&markup.Text{Content: "x"}}}}},
				{Children: []markup.Node{&markup.Paragraph{Children: []markup.Node{&markup.InlineCode{Content: "y"}}}}},
			}},
			want: "xy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := markup.PlainText(tt.node); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}
