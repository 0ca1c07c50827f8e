package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pdfInfo is what the tests read back out of an uncompressed document.
type pdfInfo struct {
	Pages  int
	Title  string
	Author string
	Texts  []string // Every string shown with Tj, in content order
}

var (
	pageObjectPattern = regexp.MustCompile(`<</Type /Page\n`)
	showTextPattern   = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)\s?Tj`)
	infoPattern       = regexp.MustCompile(`/(Title|Author) \(((?:\\.|[^\\)])*)\)`)
	rectPattern       = regexp.MustCompile(`(?m)^(-?[\d.]+) (-?[\d.]+) (-?[\d.]+) (-?[\d.]+) re\b`)
	placedTextPattern = regexp.MustCompile(`BT (-?[\d.]+) (-?[\d.]+) Td \(((?:\\.|[^\\)])*)\) Tj ET`)
)

// pdfRect is a rectangle in page coordinates, measured from the top-left
// corner like the renderer's own coordinates.
type pdfRect struct {
	X, Top, W, H float64
}

// pdfText is a string placed with Td, baseline measured from the page top.
type pdfText struct {
	X, Baseline float64
	Text        string
}

// pdfPage holds what was drawn on one page, in content order.
type pdfPage struct {
	Rects []pdfRect
	Texts []pdfText
}

// inspectPages reads the rectangles and placed text of every page of an
// uncompressed document. fpdf writes each page object right before its
// content stream, so the bytes between two page objects belong to the
// first one.
func inspectPages(data []byte, pageHeight float64) ([]pdfPage, error) {
	chunks := bytes.Split(data, []byte("<</Type /Page\n"))
	if len(chunks) < 2 {
		return nil, fmt.Errorf("no pages found")
	}

	pages := make([]pdfPage, 0, len(chunks)-1)
	for _, chunk := range chunks[1:] {
		var page pdfPage
		for _, m := range rectPattern.FindAllSubmatch(chunk, -1) {
			v, err := parseFloats(m[1:5])
			if err != nil {
				return nil, err
			}
			// fpdf flips y and writes the height negated.
			page.Rects = append(page.Rects, pdfRect{X: v[0], Top: pageHeight - v[1], W: v[2], H: -v[3]})
		}
		for _, m := range placedTextPattern.FindAllSubmatch(chunk, -1) {
			v, err := parseFloats(m[1:3])
			if err != nil {
				return nil, err
			}
			page.Texts = append(page.Texts, pdfText{
				X:        v[0],
				Baseline: pageHeight - v[1],
				Text:     unescapePDFString(string(m[3])),
			})
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// textsEqual returns the placed strings on the page equal to s.
func (p pdfPage) textsEqual(s string) []pdfText {
	var out []pdfText
	for _, t := range p.Texts {
		if t.Text == s {
			out = append(out, t)
		}
	}
	return out
}

func parseFloats(raw [][]byte) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, r := range raw {
		v, err := strconv.ParseFloat(string(r), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", r, err)
		}
		out[i] = v
	}
	return out, nil
}

// inspectPDF scans raw PDF bytes for page objects, info strings and shown
// text. It only understands uncompressed output.
func inspectPDF(data []byte) (pdfInfo, error) {
	var info pdfInfo
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return info, fmt.Errorf("missing PDF header")
	}

	info.Pages = len(pageObjectPattern.FindAll(data, -1))

	for _, m := range showTextPattern.FindAllSubmatch(data, -1) {
		info.Texts = append(info.Texts, unescapePDFString(string(m[1])))
	}

	for _, m := range infoPattern.FindAllSubmatch(data, -1) {
		value := unescapePDFString(string(m[2]))
		if decoded, err := decodeUTF16BE([]byte(value)); err == nil {
			value = decoded
		}
		switch string(m[1]) {
		case "Title":
			info.Title = value
		case "Author":
			info.Author = value
		}
	}
	return info, nil
}

// count returns how many shown strings equal s.
func (i pdfInfo) count(s string) int {
	n := 0
	for _, t := range i.Texts {
		if t == s {
			n++
		}
	}
	return n
}

func unescapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\(", "(")
	s = strings.ReplaceAll(s, "\\)", ")")
	s = strings.ReplaceAll(s, "\\r", "\r")
	s = strings.ReplaceAll(s, "\\\\", "\\")
	return s
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	b = b[2:]
	var runes []rune
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes), nil
}
