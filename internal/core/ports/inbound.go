package ports

import (
	"context"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// BatchExtractor is the inbound contract for batch document extraction.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, files []domain.UploadedDocument) ([]domain.FileResult, error)
}
