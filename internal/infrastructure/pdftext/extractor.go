package pdftext

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// Extractor reads the embedded text layer of a PDF, page by page in page
// order. Bytes that are not a PDF fail with domain.ErrUnparsablePDF; a valid
// PDF without any text layer yields an empty string.
type Extractor struct {
	normalizeWhitespace bool
	boilerplate         string
}

func NewExtractor(normalizeWhitespace bool, boilerplate string) *Extractor {
	return &Extractor{
		normalizeWhitespace: normalizeWhitespace,
		boilerplate:         strings.TrimSpace(boilerplate),
	}
}

func (e *Extractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.WrapError(domain.ErrUnparsablePDF, "open pdf", errors.New("empty document"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrUnparsablePDF, "open pdf", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// An unreadable page does not invalidate the document.
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	text := strings.Join(pages, "\n\n")
	if e.boilerplate != "" {
		text = strings.ReplaceAll(text, e.boilerplate, "")
	}
	if e.normalizeWhitespace {
		text = normalizeWhitespace(text)
	}
	return strings.TrimSpace(text), nil
}

var (
	horizontalRun = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// normalizeWhitespace collapses runs of horizontal whitespace to a single
// space and squeezes blank-line runs. Line breaks are kept so that
// line-oriented extraction (history sections) still sees document structure.
func normalizeWhitespace(text string) string {
	text = horizontalRun.ReplaceAllString(text, " ")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
