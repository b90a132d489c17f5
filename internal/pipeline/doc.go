// Package pipeline turns raw Markdown text into a markup.Document.
//
// The stages run in order:
//   - Markdown preprocessing (line ending normalization, blank line compression)
//   - Parsing via Goldmark with GFM extensions (tables, strikethrough, task lists, autolinks)
//   - Conversion of the Goldmark AST into the closed markup.Node union
//   - Resolution of relative image sources against the document directory
//
// Building the render tree from the markup.Document is handled by the root
// mdrender package. This package knows nothing about presentation.
package pipeline
