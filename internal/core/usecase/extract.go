package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/linyucheng/docextract/internal/core/domain"
	"github.com/linyucheng/docextract/internal/core/ports"
)

// ExtractBatchUseCase runs the per-file pipeline classify -> text source ->
// field extraction over an uploaded batch. Files are independent: a failure
// is recorded in that file's result and never aborts the rest of the batch.
type ExtractBatchUseCase struct {
	recognizer ports.TextRecognizer
	pdf        ports.PDFTextExtractor
	fields     ports.FieldExtractor

	workers     int
	fileTimeout time.Duration
}

func NewExtractBatchUseCase(
	recognizer ports.TextRecognizer,
	pdf ports.PDFTextExtractor,
	fields ports.FieldExtractor,
	workers int,
	fileTimeout time.Duration,
) *ExtractBatchUseCase {
	if workers < 1 {
		workers = 1
	}
	if fileTimeout <= 0 {
		fileTimeout = 30 * time.Second
	}
	return &ExtractBatchUseCase{
		recognizer:  recognizer,
		pdf:         pdf,
		fields:      fields,
		workers:     workers,
		fileTimeout: fileTimeout,
	}
}

func (uc *ExtractBatchUseCase) ExtractBatch(ctx context.Context, files []domain.UploadedDocument) ([]domain.FileResult, error) {
	pending := make([]domain.UploadedDocument, 0, len(files))
	for _, f := range files {
		if f.Filename == "" {
			continue
		}
		pending = append(pending, f)
	}
	if len(pending) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract batch", errors.New("no files uploaded"))
	}

	// Results are addressed by input index so output order always matches
	// input order regardless of worker completion order.
	results := make([]domain.FileResult, len(pending))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup
	for i := range pending {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = uc.processOne(ctx, pending[idx])
		}(i)
	}
	wg.Wait()

	return results, nil
}

func (uc *ExtractBatchUseCase) processOne(ctx context.Context, doc domain.UploadedDocument) domain.FileResult {
	class := domain.ClassifyFilename(doc.Filename)

	text, err := uc.extractText(ctx, class, doc)
	if err != nil {
		return domain.FileResult{Filename: doc.Filename, Error: err.Error()}
	}

	record := uc.fields.Extract(class, text)
	return domain.FileResult{
		Filename: doc.Filename,
		Record:   &record,
		RawText:  text,
	}
}

func (uc *ExtractBatchUseCase) extractText(ctx context.Context, class domain.DocumentClass, doc domain.UploadedDocument) (string, error) {
	switch class {
	case domain.ClassSimpleCode:
		callCtx, cancel := context.WithTimeout(ctx, uc.fileTimeout)
		defer cancel()
		text, err := uc.recognizer.Recognize(callCtx, doc.Filename, doc.Bytes)
		if err != nil {
			return "", fmt.Errorf("recognize text: %w", err)
		}
		return text, nil
	case domain.ClassAdverseEvent:
		text, err := uc.pdf.ExtractText(doc.Bytes)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return text, nil
	default:
		// Unsupported documents get a placeholder record, not an error.
		return "", nil
	}
}
