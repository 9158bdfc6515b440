package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
)

const (
	lineHeight = 6.0
	rowHeight  = 8.0
	baseSize   = 11.0
)

// NativeConverter lays out a simple HTML subset (headings, paragraphs,
// tables, bold text, rules) on A4 pages with the core Helvetica font.
type NativeConverter struct{}

// NewNativeConverter creates the in-process converter
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

type result struct {
	data []byte
	err  error
}

// Convert renders doc. The layout runs in its own goroutine so a context
// deadline returns promptly.
func (c *NativeConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan result, 1)
	go func() {
		data, err := render(doc)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.data, r.err
	}
}

func render(doc []byte) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r := &renderer{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		size: baseSize,
	}
	if title := findTitle(root); title != "" {
		pdf.SetTitle(title, true)
	}
	r.applyFont()
	r.walk(root)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	bold int
	size float64
}

func (r *renderer) applyFont() {
	style := ""
	if r.bold > 0 {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, r.size)
}

func (r *renderer) newline() {
	left, _, _, _ := r.pdf.GetMargins()
	if r.pdf.GetX() > left+0.01 {
		r.pdf.Ln(lineHeight)
	}
}

func (r *renderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
		if r.element(n) {
			return
		}
	}
	r.children(n)
}

func (r *renderer) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		r.walk(child)
	}
}

// element renders n and reports whether its children were handled
func (r *renderer) element(n *html.Node) bool {
	switch n.Data {
	case "head", "style", "script", "title":
		return true
	case "h1", "h2", "h3":
		r.heading(n, map[string]float64{"h1": 18, "h2": 14, "h3": 12}[n.Data])
		return true
	case "p", "div", "section", "header", "footer", "li":
		r.newline()
		r.children(n)
		r.newline()
		if n.Data == "p" {
			r.pdf.Ln(2)
		}
		return true
	case "br":
		r.pdf.Ln(lineHeight)
		return true
	case "strong", "b", "th":
		r.bold++
		r.applyFont()
		r.children(n)
		r.bold--
		r.applyFont()
		return true
	case "hr":
		r.newline()
		left, _, right, _ := r.pdf.GetMargins()
		width, _ := r.pdf.GetPageSize()
		y := r.pdf.GetY() + 2
		r.pdf.Line(left, y, width-right, y)
		r.pdf.Ln(4)
		return true
	case "table":
		r.newline()
		r.table(n)
		r.pdf.Ln(2)
		return true
	}
	return false
}

func (r *renderer) heading(n *html.Node, size float64) {
	r.newline()
	prev := r.size
	r.size = size
	r.bold++
	r.applyFont()
	r.children(n)
	r.bold--
	r.size = prev
	r.applyFont()
	r.newline()
	r.pdf.Ln(2)
}

func (r *renderer) text(raw string) {
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return
	}
	left, _, _, _ := r.pdf.GetMargins()
	if r.pdf.GetX() > left+0.01 && startsWithSpace(raw) {
		text = " " + text
	}
	if endsWithSpace(raw) {
		text += " "
	}
	r.pdf.Write(lineHeight, r.tr(text))
}

type cell struct {
	text   string
	header bool
}

func (r *renderer) table(n *html.Node) {
	var rows [][]cell
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []cell
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, cell{text: textContent(c), header: c.Data == "th"})
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	left, _, right, _ := r.pdf.GetMargins()
	pageWidth, _ := r.pdf.GetPageSize()
	usable := pageWidth - left - right

	for _, row := range rows {
		width := usable / float64(len(row))
		for i, c := range row {
			style := ""
			if c.header {
				style = "B"
			}
			r.pdf.SetFont("Helvetica", style, r.size)
			ln := 0
			if i == len(row)-1 {
				ln = 1
			}
			r.pdf.CellFormat(width, rowHeight, r.tr(c.text), "1", ln, "L", false, 0, "")
		}
	}
	r.applyFont()
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}
