// Package markup defines the Markdown document tree consumed by mdrender.
//
// The tree is produced by a parser (see internal/pipeline for the goldmark
// adapter) and is treated as immutable once built. Every node is one of the
// concrete types declared here; the set is closed through an unexported
// marker method so consumers can switch over it exhaustively.
package markup

// Kind identifies the variant of a Node.
type Kind int

// Node kinds.
const (
	KindOther Kind = iota
	KindDocument
	KindHeading
	KindParagraph
	KindText
	KindLink
	KindInlineCode
	KindStrong
	KindEmphasis
	KindStrikethrough
	KindSoftBreak
	KindImage
	KindCodeBlock
	KindList
	KindListItem
	KindThematicBreak
	KindBlockQuote
	KindTable
)

var kindNames = map[Kind]string{
	KindOther:         "Other",
	KindDocument:      "Document",
	KindHeading:       "Heading",
	KindParagraph:     "Paragraph",
	KindText:          "Text",
	KindLink:          "Link",
	KindInlineCode:    "InlineCode",
	KindStrong:        "Strong",
	KindEmphasis:      "Emphasis",
	KindStrikethrough: "Strikethrough",
	KindSoftBreak:     "SoftBreak",
	KindImage:         "Image",
	KindCodeBlock:     "CodeBlock",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindThematicBreak: "ThematicBreak",
	KindBlockQuote:    "BlockQuote",
	KindTable:         "Table",
}

// String returns the variant name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a node of the Markdown document tree.
type Node interface {
	Kind() Kind
	markupNode()
}

// Document is the root of a parsed document.
type Document struct {
	Children []Node
}

// Heading is an ATX or setext heading. Level is 1 through 6.
type Heading struct {
	Level    int
	Children []Node
}

// Paragraph holds inline content. Tight list items also produce paragraphs.
type Paragraph struct {
	Children []Node
}

// Text is a literal run of text.
type Text struct {
	Content string
}

// Link is an inline link. Label is the flattened link text.
type Link struct {
	Label       string
	Destination string
}

// InlineCode is a code span.
type InlineCode struct {
	Content string
}

// Strong is strong emphasis. Text is the flattened content: nested markup
// such as links is reduced to its plain text.
type Strong struct {
	Text string
}

// Emphasis is regular emphasis, flattened like Strong.
type Emphasis struct {
	Text string
}

// Strikethrough is GFM strikethrough, flattened like Strong.
type Strikethrough struct {
	Text string
}

// SoftBreak is a line ending inside a paragraph.
type SoftBreak struct{}

// Image references an image by source string (URL or path).
type Image struct {
	Source string
	Alt    string
}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Code     string
	Language string
}

// List is an ordered or unordered list. Start is the first ordinal of an
// ordered list; zero means 1.
type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

// ListItem is one entry of a List.
type ListItem struct {
	Children []Node
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// BlockQuote holds quoted blocks.
type BlockQuote struct {
	Children []Node
}

// Table is a GFM table: one head row followed by body rows.
type Table struct {
	Head TableRow
	Body []TableRow
}

// TableRow is a row of cells. It is not a Node on its own.
type TableRow struct {
	Cells []TableCell
}

// TableCell holds the inline content of one cell.
type TableCell struct {
	Children []Node
}

// Other is a generic container for anything without a dedicated variant.
type Other struct {
	Children []Node
}

func (*Document) Kind() Kind      { return KindDocument }
func (*Heading) Kind() Kind       { return KindHeading }
func (*Paragraph) Kind() Kind     { return KindParagraph }
func (*Text) Kind() Kind          { return KindText }
func (*Link) Kind() Kind          { return KindLink }
func (*InlineCode) Kind() Kind    { return KindInlineCode }
func (*Strong) Kind() Kind        { return KindStrong }
func (*Emphasis) Kind() Kind      { return KindEmphasis }
func (*Strikethrough) Kind() Kind { return KindStrikethrough }
func (*SoftBreak) Kind() Kind     { return KindSoftBreak }
func (*Image) Kind() Kind         { return KindImage }
func (*CodeBlock) Kind() Kind     { return KindCodeBlock }
func (*List) Kind() Kind          { return KindList }
func (*ListItem) Kind() Kind      { return KindListItem }
func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*BlockQuote) Kind() Kind    { return KindBlockQuote }
func (*Table) Kind() Kind         { return KindTable }
func (*Other) Kind() Kind         { return KindOther }

func (*Document) markupNode()      {}
func (*Heading) markupNode()       {}
func (*Paragraph) markupNode()     {}
func (*Text) markupNode()          {}
func (*Link) markupNode()          {}
func (*InlineCode) markupNode()    {}
func (*Strong) markupNode()        {}
func (*Emphasis) markupNode()      {}
func (*Strikethrough) markupNode() {}
func (*SoftBreak) markupNode()     {}
func (*Image) markupNode()         {}
func (*CodeBlock) markupNode()     {}
func (*List) markupNode()          {}
func (*ListItem) markupNode()      {}
func (*ThematicBreak) markupNode() {}
func (*BlockQuote) markupNode()    {}
func (*Table) markupNode()         {}
func (*Other) markupNode()         {}
