// Package mdrender turns Markdown documents into render trees: trees of
// text runs, list rows, quote rows, tables and image slots that a
// presentation layer draws without further layout decisions.
//
// # Quick Start
//
// Create a renderer, render markdown, and close the tree when done:
//
//	r := mdrender.NewRenderer()
//
//	tree, err := r.Render(ctx, mdrender.Input{
//	    Markdown:  "# Hello\n\nWorld ![logo](logo.png)",
//	    SourceDir: "/path/to/markdown", // for relative image sources
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tree.Close()
//
// # Render Pipeline
//
// The transformation follows these stages:
//
//  1. Text preprocessing (line endings, blank line compression)
//  2. Markdown parsing via Goldmark (GFM) into a markup.Node tree
//  3. Tree building: inline runs are coalesced, list markers numbered,
//     quote and table rows laid out, image loads started
//
// Callers holding a markup tree from another parser can skip the first two
// stages with Builder.Build.
//
// # Inline Coalescing
//
// Adjacent inline nodes are merged into text runs in their Markdown literal
// form: a link becomes "[label](destination)", inline code "`code`", strong
// "**text**", emphasis "*text*" and strikethrough "~text~". A soft break
// inside a run becomes a single space.
//
// # Images
//
// Each image slot owns an ImageLoad that starts in ImageLoading and
// resolves once, to ImageSuccess with the fetched bytes or to ImageFailure.
// Sources that are empty, relative or use an unsupported scheme fail before
// any fetch. Fetches run concurrently under a shared FetchPool; use
// WithDispatcher and WithImageListener to receive resolutions on a UI
// event loop:
//
//	r := mdrender.NewRenderer(
//	    mdrender.WithDispatcher(mdrender.DispatcherFunc(ui.Post)),
//	    mdrender.WithImageListener(func(*mdrender.ImageLoad) { ui.Redraw() }),
//	)
//
// # Configuration
//
// Use functional options to customize spacing and image loading:
//
//	r := mdrender.NewRenderer(
//	    mdrender.WithLayout(mdrender.Layout{BlockGap: 8, ListItemGap: 4}),
//	    mdrender.WithFetchTimeout(5 * time.Second),
//	    mdrender.WithImages(false),
//	)
package mdrender
