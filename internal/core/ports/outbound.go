package ports

import (
	"context"
	"io"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// TextRecognizer turns raster/scanned document bytes into plain text via a
// remote OCR service. An empty recognition result is returned as an empty
// string, not an error.
type TextRecognizer interface {
	Recognize(ctx context.Context, filename string, data []byte) (string, error)
}

// PDFTextExtractor reads the embedded text layer of a PDF. A valid PDF
// without a text layer yields an empty string; bytes that are not a PDF
// yield domain.ErrUnparsablePDF.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// FieldExtractor derives the structured record for a classified document
// from its plain text. Missing patterns produce absent fields, never errors.
type FieldExtractor interface {
	Extract(class domain.DocumentClass, text string) domain.StructuredRecord
}

// ReportWriter renders a finished batch as a downloadable report.
type ReportWriter interface {
	Write(w io.Writer, results []domain.FileResult) error
}
