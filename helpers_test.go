package mdrender

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alnah/go-mdrender/markup"
)

// ignoreLoad skips the image load handle, which carries unexported state.
var ignoreLoad = cmpopts.IgnoreFields(ImageSlot{}, "Load")

// fakeFetcher records fetches and returns canned results. When gate is set,
// each fetch blocks until the gate is closed or ctx is done.
type fakeFetcher struct {
	data []byte
	err  error
	gate chan struct{}

	mu      sync.Mutex
	calls   map[string]int
	running int
	peak    int
}

func newFakeFetcher(data []byte, err error) *fakeFetcher {
	return &fakeFetcher{data: data, err: err, calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	f.mu.Lock()
	f.calls[source]++
	f.running++
	f.peak = max(f.peak, f.running)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.running--
		f.mu.Unlock()
	}()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.data, f.err
}

func (f *fakeFetcher) Calls(source string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[source]
}

func (f *fakeFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeFetcher) Peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peak
}

// buildTree builds root with a fake fetcher and a private pool, and closes
// the tree when the test ends.
func buildTree(t *testing.T, root markup.Node, opts ...Option) *Tree {
	t.Helper()

	base := []Option{
		WithFetcher(newFakeFetcher([]byte("img"), nil)),
		WithFetchPool(NewFetchPool(4)),
		WithHighlighting(false),
	}
	tree := NewBuilder(append(base, opts...)...).Build(context.Background(), root)
	t.Cleanup(tree.Close)
	return tree
}

func para(children ...markup.Node) *markup.Paragraph {
	return &markup.Paragraph{Children: children}
}

func item(children ...markup.Node) *markup.ListItem {
	return &markup.ListItem{Children: children}
}

func doc(children ...markup.Node) *markup.Document {
	return &markup.Document{Children: children}
}

// markers collects list item markers in display order.
func markers(n RenderNode) []string {
	var out []string
	Walk(n, func(n RenderNode) bool {
		if row, ok := n.(*ListItemRow); ok {
			out = append(out, row.Marker)
		}
		return true
	})
	return out
}
