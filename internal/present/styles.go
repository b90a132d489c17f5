package present

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-mdrender/internal/highlight"
)

// Monokai Pro palette.
const (
	colorForeground = "#FCFCFA"
	colorRed        = "#FF6188"
	colorOrange     = "#FC9867"
	colorYellow     = "#FFD866"
	colorGreen      = "#A9DC76"
	colorCyan       = "#78DCE8"
	colorBlue       = "#AB9DF2"
	colorComment    = "#727072"
	colorBorder     = "#5B595C"
	colorZebra      = "#403E41"
)

// Styles holds every style the text presenter draws with.
type Styles struct {
	Headings    [6]lipgloss.Style
	Body        lipgloss.Style
	Marker      lipgloss.Style
	Quote       lipgloss.Style
	Rule        lipgloss.Style
	Code        lipgloss.Style
	TableHeader lipgloss.Style
	TableZebra  lipgloss.Style
	TableBorder lipgloss.Style
	ImageDim    lipgloss.Style
	ImageOK     lipgloss.Style
	ImageError  lipgloss.Style
	Tokens      map[highlight.Class]lipgloss.Style
}

// DefaultStyles builds the palette on r. A renderer bound to a non-terminal
// writer drops colors.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		Headings: [6]lipgloss.Style{
			color(colorRed).Bold(true).Underline(true),
			color(colorRed).Bold(true),
			color(colorOrange).Bold(true),
			color(colorYellow).Bold(true),
			color(colorYellow),
			color(colorComment).Bold(true),
		},
		Body:        r.NewStyle(),
		Marker:      color(colorCyan),
		Quote:       color(colorComment),
		Rule:        color(colorBorder),
		Code:        color(colorForeground),
		TableHeader: color(colorRed).Bold(true),
		TableZebra:  r.NewStyle().Background(lipgloss.Color(colorZebra)),
		TableBorder: color(colorBorder),
		ImageDim:    color(colorComment).Italic(true),
		ImageOK:     color(colorGreen),
		ImageError:  color(colorRed),
		Tokens: map[highlight.Class]lipgloss.Style{
			highlight.ClassKeyword:     color(colorRed),
			highlight.ClassName:        color(colorGreen),
			highlight.ClassString:      color(colorYellow),
			highlight.ClassNumber:      color(colorBlue),
			highlight.ClassComment:     color(colorComment).Italic(true),
			highlight.ClassOperator:    color(colorRed),
			highlight.ClassPunctuation: color(colorForeground),
		},
	}
}

func (s Styles) heading(level int) lipgloss.Style {
	if level < 1 {
		level = 1
	}
	if level > len(s.Headings) {
		level = len(s.Headings)
	}
	return s.Headings[level-1]
}

func (s Styles) token(class highlight.Class) lipgloss.Style {
	if st, ok := s.Tokens[class]; ok {
		return st
	}
	return s.Code
}
