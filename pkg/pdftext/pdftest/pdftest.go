// Package pdftest builds small single-use PDF documents for tests. The
// generated files use uncompressed content streams and a classic xref
// table, which is enough for the text extractor to walk them.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Build assembles a PDF with one page per element of pageTexts. Newlines
// within an element become separate text lines on the page. An empty
// element produces a page with no text layer at all, which extraction
// reports as unreadable.
func Build(pageTexts []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objectCount := 3 + 2*len(pageTexts)
	offsets := make([]int, objectCount+1)

	writeObject := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, len(pageTexts))
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	writeObject(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObject(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pageTexts)))
	writeObject(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pageTexts {
		pageNum := 4 + 2*i
		contentNum := pageNum + 1

		writeObject(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentNum))

		stream := contentStream(text)
		writeObject(contentNum, fmt.Sprintf(
			"<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objectCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objectCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objectCount+1, xrefOffset)

	return buf.Bytes()
}

// contentStream renders text lines as one Tj operation each, stepping down
// the page between lines. Empty input yields an empty stream.
func contentStream(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("0 -16 Td\n")
		}
		// Extraction concatenates text runs directly; the trailing space
		// keeps tokens on adjacent lines from fusing.
		fmt.Fprintf(&sb, "(%s ) Tj\n", escapeText(line))
	}
	sb.WriteString("ET")
	return sb.String()
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}
