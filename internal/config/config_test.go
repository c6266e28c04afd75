package config

import "testing"

func TestLoadIncludesOCRDefaults(t *testing.T) {
	t.Setenv("OCR_URL", "")
	t.Setenv("OCR_LANGUAGE", "")
	t.Setenv("OCR_ENGINE", "")
	t.Setenv("OCR_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.OCRURL != "https://api.ocr.space/parse/image" {
		t.Fatalf("unexpected default OCR url %q", cfg.OCRURL)
	}
	if cfg.OCRLanguage != "cht" {
		t.Fatalf("expected default language cht, got %q", cfg.OCRLanguage)
	}
	if cfg.OCREngine != 2 {
		t.Fatalf("expected default engine 2, got %d", cfg.OCREngine)
	}
	if cfg.OCRTimeoutSecs != 30 {
		t.Fatalf("expected default timeout 30s, got %d", cfg.OCRTimeoutSecs)
	}
}

func TestLoadParsesVocabularyOverrides(t *testing.T) {
	t.Setenv("SEVERITY_LABELS", "死亡, 危及生命 ,")
	t.Setenv("OUTCOME_LABELS", "")

	cfg := Load()
	if len(cfg.SeverityLabels) != 2 || cfg.SeverityLabels[0] != "死亡" || cfg.SeverityLabels[1] != "危及生命" {
		t.Fatalf("unexpected severity labels %v", cfg.SeverityLabels)
	}
	if len(cfg.OutcomeLabels) != 6 {
		t.Fatalf("expected default outcome vocabulary, got %v", cfg.OutcomeLabels)
	}
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("OCR_ENGINE", "two")
	t.Setenv("OCR_RATE_LIMIT_RPS", "fast")

	cfg := Load()
	if cfg.OCREngine != 2 {
		t.Fatalf("expected fallback engine 2, got %d", cfg.OCREngine)
	}
	if cfg.OCRRateLimitRPS != 2 {
		t.Fatalf("expected fallback rps 2, got %v", cfg.OCRRateLimitRPS)
	}
}
