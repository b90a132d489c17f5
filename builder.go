package mdrender

import (
	"context"
	"sync"

	"github.com/alnah/go-mdrender/internal/highlight"
	"github.com/alnah/go-mdrender/markup"
)

// Builder turns markup trees into render trees. A Builder is safe for
// concurrent use; each Build call allocates a fresh tree.
type Builder struct {
	layout    Layout
	highlight bool
	images    imageLoader
	logger    Logger
}

// NewBuilder creates a Builder. Without options images are fetched with an
// HTTPFetcher and code blocks are tokenized.
func NewBuilder(opts ...Option) *Builder {
	return newBuilder(newOptions(opts))
}

func newBuilder(o *options) *Builder {
	return &Builder{
		layout:    o.layout,
		highlight: o.highlight,
		logger:    o.logger,
		images: imageLoader{
			enabled:    o.images,
			fetcher:    o.fetcher,
			pool:       o.pool,
			timeout:    o.fetchTimeout,
			dispatcher: o.dispatcher,
			onResolve:  o.onImage,
			logger:     o.logger,
		},
	}
}

// Layout returns the metrics the builder applies.
func (b *Builder) Layout() Layout {
	return b.layout
}

// buildContext is the state handed down the recursion. It is passed by
// value; a child never changes its parent's context.
type buildContext struct {
	padBlocks  bool
	list       *ListContext
	quoteDepth int
}

// treeState collects what one Build call produces besides nodes.
type treeState struct {
	ctx   context.Context
	loads []*ImageLoad
}

// Build converts root into a render tree. Building never fails: unknown
// nodes are treated as plain containers. Image fetches started by the
// build live until ctx is done or the tree is closed.
func (b *Builder) Build(ctx context.Context, root markup.Node) *Tree {
	treeCtx, cancel := context.WithCancel(ctx)
	s := &treeState{ctx: treeCtx}

	top := b.build(s, root, buildContext{padBlocks: true})
	group, ok := top.(*Group)
	if !ok {
		group = &Group{Children: []RenderNode{top}}
	}

	if len(s.loads) == 0 {
		cancel()
	}
	b.logger.Debug("render tree built", "images", len(s.loads))
	return &Tree{Root: group, loads: s.loads, cancel: cancel}
}

func (b *Builder) build(s *treeState, n markup.Node, c buildContext) RenderNode {
	switch v := n.(type) {
	case *markup.Heading:
		return &TextRun{
			Content:       headingText(v.Children),
			Heading:       true,
			HeadingLevel:  v.Level,
			FontSize:      HeadingFontSize(v.Level),
			BottomPadding: b.blockPadding(c),
		}
	case *markup.Paragraph:
		return &Group{
			Children:      b.buildAll(s, Coalesce(v.Children), c),
			BottomPadding: b.blockPadding(c),
		}
	case *markup.Text:
		return &TextRun{Content: v.Content}
	case *markup.Image:
		load := b.images.start(s.ctx, v.Source)
		s.loads = append(s.loads, load)
		return &ImageSlot{Source: v.Source, Alt: v.Alt, Load: load}
	case *markup.CodeBlock:
		code := trimTrailingNewlines(v.Code)
		run := &CodeBlockRun{Code: code, Language: v.Language, BottomPadding: b.blockPadding(c)}
		if b.highlight {
			run.Tokens = highlight.Tokenize(v.Language, code)
		}
		return run
	case *markup.List:
		return b.buildList(s, v, c)
	case *markup.ListItem:
		return b.buildListItem(s, v, c)
	case *markup.ThematicBreak:
		return &Divider{}
	case *markup.BlockQuote:
		return b.buildQuote(s, v, c)
	case *markup.Table:
		return b.buildTable(s, v, c)
	case nil:
		return &Group{}
	default:
		// Document, Other and any inline node reaching block level.
		if k := n.Kind(); k != markup.KindDocument && k != markup.KindOther {
			b.logger.Debug("inline node at block level", "kind", k.String())
		}
		return &Group{Children: b.buildAll(s, markup.Children(n), c)}
	}
}

func (b *Builder) buildAll(s *treeState, nodes []markup.Node, c buildContext) []RenderNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]RenderNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.build(s, n, c))
	}
	return out
}

func (b *Builder) buildList(s *treeState, list *markup.List, c buildContext) RenderNode {
	g := &Group{Children: make([]RenderNode, 0, len(list.Items))}
	for i, item := range list.Items {
		lc := itemContext(c.list, list.Ordered, list.Start, i)
		ic := c
		ic.list = &lc
		g.Children = append(g.Children, b.buildListItem(s, item, ic))
	}
	return g
}

// buildListItem lays out each paragraph of the item as a marker row, indents
// nested lists, and stacks anything else beneath without a marker.
func (b *Builder) buildListItem(s *treeState, item *markup.ListItem, c buildContext) RenderNode {
	lc := ListContext{Kind: Unordered}
	if c.list != nil {
		lc = *c.list
	}

	g := &Group{Children: make([]RenderNode, 0, len(item.Children))}
	for _, child := range item.Children {
		switch v := child.(type) {
		case *markup.Paragraph:
			g.Children = append(g.Children, &ListItemRow{
				Marker:        lc.Marker(),
				Body:          b.buildAll(s, Coalesce(v.Children), c),
				BottomPadding: b.layout.ListItemGap,
			})
		case *markup.List:
			nested := &Group{Children: []RenderNode{b.buildList(s, v, c)}}
			if c.padBlocks {
				nested.LeadingPadding = b.layout.NestedListIndent
			}
			g.Children = append(g.Children, nested)
		default:
			g.Children = append(g.Children, b.build(s, child, c))
		}
	}
	return g
}

func (b *Builder) buildQuote(s *treeState, quote *markup.BlockQuote, c buildContext) RenderNode {
	inner := c
	inner.padBlocks = false
	inner.quoteDepth = c.quoteDepth + 1

	g := &Group{Children: make([]RenderNode, 0, len(quote.Children))}
	last := len(quote.Children) - 1
	for i, child := range quote.Children {
		row := &QuoteRow{Body: []RenderNode{b.build(s, child, inner)}}
		if i == last && inner.quoteDepth == 1 {
			row.TrailingGapPadding = true
			row.BottomPadding = b.layout.BlockGap
		}
		g.Children = append(g.Children, row)
	}
	return g
}

func (b *Builder) buildTable(s *treeState, table *markup.Table, c buildContext) RenderNode {
	cell := c
	cell.padBlocks = false

	view := &TableView{
		Rows:          make([]TableRowView, 0, len(table.Body)+1),
		BottomPadding: b.blockPadding(c),
	}

	head := b.buildRow(s, table.Head, cell)
	head.ZebraIndex = headerZebraIndex
	head.Header = true
	view.Rows = append(view.Rows, head)

	for i, row := range table.Body {
		r := b.buildRow(s, row, cell)
		r.ZebraIndex = ZebraIndex(i + 1)
		view.Rows = append(view.Rows, r)
	}
	return view
}

func (b *Builder) buildRow(s *treeState, row markup.TableRow, c buildContext) TableRowView {
	view := TableRowView{
		Cells:   make([]TableCellView, 0, len(row.Cells)),
		Padding: b.layout.TableCellPadding,
	}
	for i, cell := range row.Cells {
		view.Cells = append(view.Cells, TableCellView{
			LeadingDivider: i > 0,
			Body:           b.buildAll(s, Coalesce(cell.Children), c),
		})
	}
	return view
}

func (b *Builder) blockPadding(c buildContext) float64 {
	if c.padBlocks {
		return b.layout.BlockGap
	}
	return 0
}

// Tree is a built render tree together with the image loads it started.
type Tree struct {
	Root RenderNode

	loads     []*ImageLoad
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Images returns the image loads of the tree in document order.
func (t *Tree) Images() []*ImageLoad {
	return t.loads
}

// Wait blocks until every image load has resolved or ctx is done.
func (t *Tree) Wait(ctx context.Context) error {
	for _, load := range t.loads {
		if _, err := load.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close cancels outstanding image fetches. Pending loads resolve to
// ImageFailure with context.Canceled. Close is safe to call more than once.
func (t *Tree) Close() {
	t.closeOnce.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
	})
}
