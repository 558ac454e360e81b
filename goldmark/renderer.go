// Package goldmark renders the static markdown pages of the client (home,
// features, privacy, footer) to ANSI-styled terminal text using goldmark for
// parsing and lipgloss for styling.
package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// Renderer turns markdown into styled terminal text. It is safe for
// concurrent use.
type Renderer struct {
	parser parser.Parser

	title   lipgloss.Style
	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	badge   lipgloss.Style
}

// NewRenderer returns a Renderer styled with theme.
func NewRenderer(theme medichat.Theme) *Renderer {
	return &Renderer{
		parser:  goldmark.DefaultParser(),
		title:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true).Underline(true),
		heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Foreground(ansiColor(theme.Link)).Underline(true),
		badge: lipgloss.NewStyle().
			Foreground(ansiColor(theme.Success)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(theme.Success)).
			Padding(0, 1),
	}
}

// Render parses markdown source and returns styled output word-wrapped to
// width. A non-positive width falls back to 80 columns.
func Render(source string, width int, theme medichat.Theme) string {
	return NewRenderer(theme).Render(source, width)
}

// Render parses source and returns styled output wrapped to width.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	src := []byte(source)
	doc := r.parser.Parse(text.NewReader(src))

	var buf bytes.Buffer
	r.walkBlock(doc, src, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *Renderer) walkBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, width, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (r *Renderer) renderBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Heading:
		style := r.heading
		if n.Level == 1 {
			style = r.title
		}
		writeWrapped(buf, style.Render(r.collectInline(n, source)), width)

	case *ast.Paragraph, *ast.TextBlock:
		writeWrapped(buf, r.collectInline(n, source), width)

	case *ast.List:
		r.renderList(n, source, width, buf, 0)

	case *ast.Blockquote:
		// Rendered as a bordered badge, e.g. the privacy guarantee.
		var inner bytes.Buffer
		r.walkBlock(n, source, width-4, &inner)
		buf.WriteString(r.badge.Render(strings.TrimRight(inner.String(), "\n")))
		buf.WriteString("\n")

	case *ast.ThematicBreak:
		buf.WriteString(r.muted.Render(strings.Repeat("─", width)))
		buf.WriteString("\n")

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.WriteString(r.muted.Render(strings.TrimRight(string(line.Value(source)), "\n")))
			buf.WriteString("\n")
		}

	case *ast.HTMLBlock:
		// Raw HTML has no terminal rendering.

	default:
		r.walkBlock(node, source, width, buf)
	}
}

func writeWrapped(buf *bytes.Buffer, content string, width int) {
	buf.WriteString(lipgloss.NewStyle().Width(width).Render(content))
	buf.WriteString("\n")
}

func (r *Renderer) renderList(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		marker := "• "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		var content []string
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				if len(content) > 0 {
					writeListItem(buf, indent, marker, strings.Join(content, " "), width)
					content = nil
				}
				r.renderList(sub, source, width, buf, depth+1)
				marker = strings.Repeat(" ", lipgloss.Width(marker))
				continue
			}
			content = append(content, r.collectInline(ic, source))
		}
		if len(content) > 0 {
			writeListItem(buf, indent, marker, strings.Join(content, " "), width)
		}
	}
}

// writeListItem writes a list item with continuation lines aligned under the
// first character after the marker.
func writeListItem(buf *bytes.Buffer, indent, marker, content string, width int) {
	prefix := indent + marker
	itemWidth := max(width-lipgloss.Width(prefix), 10)
	lines := strings.Split(lipgloss.NewStyle().Width(itemWidth).Render(content), "\n")
	continuation := strings.Repeat(" ", lipgloss.Width(prefix))
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
			continue
		}
		buf.WriteString(continuation + line + "\n")
	}
}

func (r *Renderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *Renderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.collectInline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
			return
		}
		buf.WriteString(r.bold.Render(inner))

	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.collectInline(n, source)))

	case *ast.Link:
		buf.WriteString(r.link.Render(r.collectInline(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.link.Render(string(n.URL(source))))

	case *ast.Image:
		// Logos and pictures are replaced by their alt text.
		buf.WriteString(r.muted.Render(r.collectInline(n, source)))

	case *ast.RawHTML:

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}
