package pdftext

import (
	"fmt"
	"strings"
	"testing"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// buildPDF assembles a minimal single-font PDF with one content stream per
// page, computing the xref offsets so the file is structurally valid.
func buildPDF(pages ...string) []byte {
	type object struct {
		num  int
		body string
	}

	var objects []object
	add := func(num int, body string) {
		objects = append(objects, object{num: num, body: body})
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	add(1, "<< /Type /Catalog /Pages 2 0 R >>")
	add(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	for i, text := range pages {
		pageNum := 3 + 2*i
		contentNum := pageNum + 1
		add(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			3+2*len(pages), contentNum))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		add(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	add(3+2*len(pages), "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf strings.Builder
	buf.WriteString("%PDF-1.4\n")
	offsets := make(map[int]int)
	for _, obj := range objects {
		offsets[obj.num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", obj.num, obj.body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return []byte(buf.String())
}

func TestExtractTextConcatenatesPagesInOrder(t *testing.T) {
	data := buildPDF("First page text", "Second page text")

	extractor := NewExtractor(false, "")
	text, err := extractor.ExtractText(data)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	first := strings.Index(text, "First page text")
	second := strings.Index(text, "Second page text")
	if first < 0 || second < 0 {
		t.Fatalf("missing page text in %q", text)
	}
	if first > second {
		t.Fatalf("pages out of order in %q", text)
	}
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	extractor := NewExtractor(true, "")

	if _, err := extractor.ExtractText([]byte("definitely not a pdf")); !domain.IsKind(err, domain.ErrUnparsablePDF) {
		t.Fatalf("expected unparsable pdf error, got %v", err)
	}
	if _, err := extractor.ExtractText(nil); !domain.IsKind(err, domain.ErrUnparsablePDF) {
		t.Fatalf("expected unparsable pdf error for empty bytes, got %v", err)
	}
}

func TestExtractTextStripsBoilerplateHeader(t *testing.T) {
	data := buildPDF("HEADER case one", "HEADER case two")

	extractor := NewExtractor(true, "HEADER")
	text, err := extractor.ExtractText(data)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if strings.Contains(text, "HEADER") {
		t.Fatalf("boilerplate not stripped: %q", text)
	}
	if !strings.Contains(text, "case one") || !strings.Contains(text, "case two") {
		t.Fatalf("page text lost during stripping: %q", text)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "a  \t b\r\n\n\n\n  c   d"
	got := normalizeWhitespace(in)
	if got != "a b\n\nc d" {
		t.Fatalf("normalizeWhitespace() = %q", got)
	}
}
