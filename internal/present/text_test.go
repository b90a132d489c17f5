package present

// Notes:
// - Output is compared after stripping escape sequences; colors depend on
//   the terminal profile and are not asserted.
// - Exact wrap points belong to x/ansi; wrapping is checked by line width
//   and word order only.

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	mdrender "github.com/alnah/go-mdrender"
	"github.com/alnah/go-mdrender/internal/highlight"
	"github.com/alnah/go-mdrender/markup"
)

func plainText(width int) *Text {
	return NewText(WithWidth(width), WithStyles(DefaultStyles(lipgloss.NewRenderer(io.Discard))))
}

func draw(t *testing.T, p *Text, root mdrender.RenderNode) string {
	t.Helper()
	return ansi.Strip(p.String(root))
}

// ---------------------------------------------------------------------------
// TestText_String - Block layout
// ---------------------------------------------------------------------------

func TestText_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root mdrender.RenderNode
		want string
	}{
		{
			name: "empty group",
			root: &mdrender.Group{},
			want: "",
		},
		{
			name: "heading paragraph and rule",
			root: &mdrender.Group{Children: []mdrender.RenderNode{
				&mdrender.TextRun{Content: "Title", Heading: true, HeadingLevel: 1, FontSize: 36, BottomPadding: 12},
				&mdrender.Group{
					Children:      []mdrender.RenderNode{&mdrender.TextRun{Content: "hello world"}},
					BottomPadding: 12,
				},
				&mdrender.Divider{},
			}},
			want: "Title\n\nhello world\n\n" + strings.Repeat("─", 20) + "\n",
		},
		{
			name: "nested list indents",
			root: &mdrender.Group{Children: []mdrender.RenderNode{
				&mdrender.ListItemRow{
					Marker:        "1.",
					Body:          []mdrender.RenderNode{&mdrender.TextRun{Content: "a"}},
					BottomPadding: 6,
				},
				&mdrender.Group{
					LeadingPadding: 12,
					Children: []mdrender.RenderNode{&mdrender.Group{Children: []mdrender.RenderNode{
						&mdrender.ListItemRow{
							Marker:        "1.1.",
							Body:          []mdrender.RenderNode{&mdrender.TextRun{Content: "b"}},
							BottomPadding: 6,
						},
					}}},
				},
			}},
			want: "1. a\n  1.1. b\n",
		},
		{
			name: "top-level quote closes with bar",
			root: &mdrender.Group{Children: []mdrender.RenderNode{
				&mdrender.Group{Children: []mdrender.RenderNode{
					&mdrender.QuoteRow{
						Body:               []mdrender.RenderNode{&mdrender.Group{Children: []mdrender.RenderNode{&mdrender.TextRun{Content: "q"}}}},
						TrailingGapPadding: true,
						BottomPadding:      12,
					},
				}},
				&mdrender.TextRun{Content: "after"},
			}},
			want: "│ q\n│\n\nafter\n",
		},
		{
			name: "code block without tokens",
			root: &mdrender.CodeBlockRun{Code: "a\nb"},
			want: "  a\n  b\n",
		},
		{
			name: "code block with tokens",
			root: &mdrender.CodeBlockRun{Code: "a\nb", Tokens: []mdrender.CodeToken{
				{Class: highlight.ClassText, Value: "a\n"},
				{Class: highlight.ClassKeyword, Value: "b"},
			}},
			want: "  a\n  b\n",
		},
		{
			name: "image without load",
			root: &mdrender.ImageSlot{Source: "https://x/y.png", Alt: "pic"},
			want: mdrender.ImageFailurePlaceholder + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := draw(t, plainText(20), tt.root); got != tt.want {
				t.Errorf("String() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestText_Table - Column alignment
// ---------------------------------------------------------------------------

func TestText_Table(t *testing.T) {
	t.Parallel()

	cell := func(s string, divider bool) mdrender.TableCellView {
		return mdrender.TableCellView{LeadingDivider: divider, Body: []mdrender.RenderNode{&mdrender.TextRun{Content: s}}}
	}
	table := &mdrender.TableView{Rows: []mdrender.TableRowView{
		{Cells: []mdrender.TableCellView{cell("A", false), cell("Long", true)}, ZebraIndex: 1, Header: true, Padding: 5},
		{Cells: []mdrender.TableCellView{cell("1", false), cell("2", true)}, ZebraIndex: 1, Padding: 5},
	}}

	want := " A │ Long \n" +
		"───┼──────\n" +
		" 1 │ 2    \n"
	if got := draw(t, plainText(40), table); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestText_Table_Truncated(t *testing.T) {
	t.Parallel()

	table := &mdrender.TableView{Rows: []mdrender.TableRowView{
		{Cells: []mdrender.TableCellView{{Body: []mdrender.RenderNode{&mdrender.TextRun{Content: strings.Repeat("x", 30)}}}}, Header: true},
	}}

	for _, line := range strings.Split(strings.TrimSuffix(draw(t, plainText(10), table), "\n"), "\n") {
		if w := ansi.StringWidth(line); w > 10 {
			t.Errorf("line %q is %d columns wide, want <= 10", line, w)
		}
	}
}

// ---------------------------------------------------------------------------
// TestText_Wrap - Width limit
// ---------------------------------------------------------------------------

func TestText_Wrap(t *testing.T) {
	t.Parallel()

	content := "the quick brown fox jumps over the lazy dog"
	got := draw(t, plainText(12), &mdrender.TextRun{Content: content})

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapped output", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > 12 {
			t.Errorf("line %q is %d columns wide, want <= 12", line, w)
		}
	}
	if joined := strings.Join(strings.Fields(got), " "); joined != content {
		t.Errorf("words = %q, want %q", joined, content)
	}
}

func TestWithWidth_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	if got := NewText(WithWidth(0)).Width(); got != DefaultWidth {
		t.Errorf("Width() = %d, want %d", got, DefaultWidth)
	}
}

// ---------------------------------------------------------------------------
// TestText_Image - Load states
// ---------------------------------------------------------------------------

func TestText_Image(t *testing.T) {
	t.Parallel()

	image := &markup.Paragraph{Children: []markup.Node{&markup.Image{Source: "https://example.com/a.png", Alt: "pic"}}}

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		tree := mdrender.NewBuilder(mdrender.WithImages(false)).Build(context.Background(), image)
		defer tree.Close()

		if got, want := draw(t, plainText(40), tree.Root), mdrender.ImageFailurePlaceholder+"\n"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("loading then loaded", func(t *testing.T) {
		t.Parallel()

		gate := make(chan struct{})
		fetcher := mdrender.FetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
			select {
			case <-gate:
				return []byte("png"), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
		tree := mdrender.NewBuilder(
			mdrender.WithFetcher(fetcher),
			mdrender.WithFetchPool(mdrender.NewFetchPool(1)),
		).Build(context.Background(), image)
		defer tree.Close()

		p := plainText(40)
		if got, want := draw(t, p, tree.Root), "[loading image: pic]\n"; got != want {
			t.Errorf("String() before load = %q, want %q", got, want)
		}

		close(gate)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tree.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}

		if got, want := draw(t, p, tree.Root), "[image: pic, 3 bytes]\n"; got != want {
			t.Errorf("String() after load = %q, want %q", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestText_Render - Writer errors
// ---------------------------------------------------------------------------

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestText_Render(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	if err := plainText(20).Render(&b, &mdrender.TextRun{Content: "x"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := ansi.Strip(b.String()); got != "x\n" {
		t.Errorf("Render() wrote %q, want %q", got, "x\n")
	}

	if err := plainText(20).Render(failingWriter{}, &mdrender.TextRun{Content: "x"}); err == nil {
		t.Error("Render() error = nil, want write error")
	}
}
