package present

import (
	"io"

	mdrender "github.com/alnah/go-mdrender"
	"github.com/alnah/go-mdrender/internal/yamlutil"
)

// Node kinds written in an outline.
const (
	KindGroup    = "group"
	KindText     = "text"
	KindHeading  = "heading"
	KindImage    = "image"
	KindCode     = "code"
	KindListItem = "listItem"
	KindQuote    = "quote"
	KindTable    = "table"
	KindRow      = "row"
	KindCell     = "cell"
	KindDivider  = "divider"
)

// OutlineNode is the serializable form of one render node.
type OutlineNode struct {
	Kind           string        `yaml:"kind"`
	Text           string        `yaml:"text,omitempty"`
	Level          int           `yaml:"level,omitempty"`
	FontSize       float64       `yaml:"fontSize,omitempty"`
	Marker         string        `yaml:"marker,omitempty"`
	Language       string        `yaml:"language,omitempty"`
	Tokens         int           `yaml:"tokens,omitempty"`
	Source         string        `yaml:"source,omitempty"`
	Alt            string        `yaml:"alt,omitempty"`
	Status         string        `yaml:"status,omitempty"`
	Error          string        `yaml:"error,omitempty"`
	Header         bool          `yaml:"header,omitempty"`
	Zebra          *int          `yaml:"zebra,omitempty"`
	Divider        bool          `yaml:"divider,omitempty"`
	TrailingGap    bool          `yaml:"trailingGap,omitempty"`
	Padding        float64       `yaml:"padding,omitempty"`
	LeadingPadding float64       `yaml:"leadingPadding,omitempty"`
	BottomPadding  float64       `yaml:"bottomPadding,omitempty"`
	Children       []OutlineNode `yaml:"children,omitempty"`
}

// Outline converts root into its serializable form. Image nodes record the
// load state at the time of the call.
func Outline(root mdrender.RenderNode) OutlineNode {
	switch v := root.(type) {
	case *mdrender.Group:
		return OutlineNode{
			Kind:           KindGroup,
			LeadingPadding: v.LeadingPadding,
			BottomPadding:  v.BottomPadding,
			Children:       outlineAll(v.Children),
		}
	case *mdrender.TextRun:
		if v.Heading {
			return OutlineNode{
				Kind:          KindHeading,
				Text:          v.Content,
				Level:         v.HeadingLevel,
				FontSize:      v.FontSize,
				BottomPadding: v.BottomPadding,
			}
		}
		return OutlineNode{Kind: KindText, Text: v.Content, BottomPadding: v.BottomPadding}
	case *mdrender.ImageSlot:
		node := OutlineNode{Kind: KindImage, Source: v.Source, Alt: v.Alt}
		if v.Load != nil {
			state := v.Load.State()
			node.Status = state.Status.String()
			if state.Err != nil {
				node.Error = state.Err.Error()
			}
		}
		return node
	case *mdrender.CodeBlockRun:
		return OutlineNode{
			Kind:          KindCode,
			Text:          v.Code,
			Language:      v.Language,
			Tokens:        len(v.Tokens),
			BottomPadding: v.BottomPadding,
		}
	case *mdrender.ListItemRow:
		return OutlineNode{
			Kind:          KindListItem,
			Marker:        v.Marker,
			BottomPadding: v.BottomPadding,
			Children:      outlineAll(v.Body),
		}
	case *mdrender.QuoteRow:
		return OutlineNode{
			Kind:          KindQuote,
			TrailingGap:   v.TrailingGapPadding,
			BottomPadding: v.BottomPadding,
			Children:      outlineAll(v.Body),
		}
	case *mdrender.TableView:
		node := OutlineNode{Kind: KindTable, BottomPadding: v.BottomPadding}
		for _, row := range v.Rows {
			node.Children = append(node.Children, outlineRow(row))
		}
		return node
	case *mdrender.Divider:
		return OutlineNode{Kind: KindDivider}
	default:
		return OutlineNode{Kind: KindGroup}
	}
}

func outlineRow(row mdrender.TableRowView) OutlineNode {
	zebra := row.ZebraIndex
	node := OutlineNode{Kind: KindRow, Header: row.Header, Zebra: &zebra, Padding: row.Padding}
	for _, cell := range row.Cells {
		node.Children = append(node.Children, OutlineNode{
			Kind:     KindCell,
			Divider:  cell.LeadingDivider,
			Children: outlineAll(cell.Body),
		})
	}
	return node
}

func outlineAll(nodes []mdrender.RenderNode) []OutlineNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]OutlineNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Outline(n))
	}
	return out
}

// WriteOutline writes the outline of root to w as YAML.
func WriteOutline(w io.Writer, root mdrender.RenderNode) error {
	return yamlutil.Encode(w, Outline(root))
}
