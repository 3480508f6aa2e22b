package document

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageTop     = 800
	lineSpacing = 16
)

// buildPDF lays lines out top to bottom on a single A4 page using the
// built-in Helvetica font.
func buildPDF(title string, lines []string) []byte {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("BT\n/F2 16 Tf\n50 %d Td\n(%s) Tj\n", pageTop, pdfEscape(title)))
	content.WriteString(fmt.Sprintf("/F1 11 Tf\n%d TL\nT* T*\n", lineSpacing))
	for _, line := range lines {
		content.WriteString(fmt.Sprintf("(%s) Tj T*\n", pdfEscape(line)))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xrefStart)

	return out.Bytes()
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return toLatin1(replacer.Replace(v))
}

// toLatin1 keeps accented Spanish names readable under WinAnsiEncoding.
func toLatin1(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFF:
			fmt.Fprintf(&b, "\\%03o", r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
