package bootstrap

import (
	"time"

	"github.com/linyucheng/docextract/internal/config"
	"github.com/linyucheng/docextract/internal/core/ports"
	"github.com/linyucheng/docextract/internal/core/usecase"
	"github.com/linyucheng/docextract/internal/infrastructure/fields"
	"github.com/linyucheng/docextract/internal/infrastructure/ocr/ocrspace"
	"github.com/linyucheng/docextract/internal/infrastructure/pdftext"
	"github.com/linyucheng/docextract/internal/infrastructure/report"
	"github.com/linyucheng/docextract/internal/infrastructure/resilience"
	"github.com/linyucheng/docextract/internal/observability/metrics"
)

// App wires configuration into the extraction pipeline and its adapters.
type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	ExtractUC ports.BatchExtractor
	Reports   ports.ReportWriter
}

func New(cfg config.Config) *App {
	m := metrics.NewHTTPServerMetrics("api")

	exec := resilience.NewExecutor(resilience.DefaultConfig())
	recognizer := ocrspace.New(ocrspace.Config{
		URL:             cfg.OCRURL,
		APIKey:          cfg.OCRAPIKey,
		Language:        cfg.OCRLanguage,
		Engine:          cfg.OCREngine,
		OverlayRequired: cfg.OCROverlay,
		Timeout:         time.Duration(cfg.OCRTimeoutSecs) * time.Second,
		RateLimitRPS:    cfg.OCRRateLimitRPS,
		RateBurst:       cfg.OCRRateBurst,
	}, exec).WithObserver(func(outcome string) {
		m.RecordOCRRequest("api", outcome)
	})

	pdfExtractor := pdftext.NewExtractor(cfg.PDFNormalizeWhitespace, cfg.PDFBoilerplateHeader)
	fieldExtractor := fields.NewExtractor(fields.Vocabulary{
		Severity:    cfg.SeverityLabels,
		Outcome:     cfg.OutcomeLabels,
		Action:      cfg.ActionLabels,
		Rechallenge: cfg.RechallengeLabels,
	})

	extractUC := usecase.NewExtractBatchUseCase(
		recognizer,
		pdfExtractor,
		fieldExtractor,
		cfg.BatchWorkers,
		time.Duration(cfg.OCRTimeoutSecs)*time.Second,
	)

	return &App{
		Config:    cfg,
		Metrics:   m,
		ExtractUC: extractUC,
		Reports:   report.NewXLSXWriter(),
	}
}
