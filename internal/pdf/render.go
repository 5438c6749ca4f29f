// Package pdf renders itinerary text into a paginated A4 document. The
// input is the markdown-ish completion text; emphasis and heading markers
// are stripped to plain lines before layout since the page model is plain
// runs of wrapped text.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight

	titleFontSize   = 16.0
	bodyFontSize    = 11.0
	titleLineHeight = 8.0
	lineHeight      = 6.0
)

// Fixed document dates keep output byte-identical for identical input.
var stampDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Render converts markdown-ish text into a multi-page PDF. The title is
// written at the top of the first page only; body lines are greedily
// word-wrapped to the content width and flow onto new pages as vertical
// space runs out.
func Render(markdownText, title string) ([]byte, error) {
	doc := build(markdownText, title)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Render: %w", err)
	}
	return buf.Bytes(), nil
}

func build(markdownText, title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(stampDate)
	doc.SetModificationDate(stampDate)
	doc.SetMargins(marginLeft, marginTop, marginRight)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	w := &lineWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), y: marginTop}

	doc.SetFont("Helvetica", "B", titleFontSize)
	for _, line := range wrap(title, contentWidth, doc.GetStringWidth) {
		w.write(line, titleLineHeight)
	}
	w.write("", lineHeight)

	doc.SetFont("Helvetica", "", bodyFontSize)
	for _, raw := range strings.Split(markdownText, "\n") {
		for _, line := range wrap(plainLine(raw), contentWidth, doc.GetStringWidth) {
			w.write(line, lineHeight)
		}
	}
	return doc
}

// lineWriter advances a vertical cursor line by line, starting a fresh
// page whenever the next line would cross the bottom margin.
type lineWriter struct {
	doc *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (w *lineWriter) write(line string, height float64) {
	if w.y+height > pageHeight-marginBottom {
		w.doc.AddPage()
		w.y = marginTop
	}
	w.doc.SetXY(marginLeft, w.y)
	w.doc.CellFormat(contentWidth, height, w.tr(line), "", 0, "L", false, 0, "")
	w.y += height
}

// plainLine reduces one markdown line to plain text: heading markers and
// bold/code emphasis are dropped, star bullets become dashes.
func plainLine(raw string) string {
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimLeft(line, " \t")
	if stripped := strings.TrimLeft(trimmed, "#"); stripped != trimmed {
		line = strings.TrimLeft(stripped, " ")
	} else if strings.HasPrefix(trimmed, "* ") {
		line = "- " + trimmed[len("* "):]
	}
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "`", "")
	return line
}

// wrap greedily packs words into lines no wider than width according to
// measure. Words are never split: a single word wider than the content
// width is emitted alone on its own line. An empty input still yields one
// empty line so blank lines keep their vertical space.
func wrap(line string, width float64, measure func(string) float64) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		out = append(out, current)
		current = word
	}
	return append(out, current)
}
