package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort  string
	LogLevel string

	OCRURL          string
	OCRAPIKey       string
	OCRLanguage     string
	OCREngine       int
	OCROverlay      bool
	OCRTimeoutSecs  int
	OCRRateLimitRPS float64
	OCRRateBurst    int

	PDFNormalizeWhitespace bool
	PDFBoilerplateHeader   string

	BatchWorkers   int
	MaxUploadBytes int64

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxConcurrent  int
	APIQueueTimeoutMs int

	SeverityLabels    []string
	OutcomeLabels     []string
	ActionLabels      []string
	RechallengeLabels []string
}

// Severity, outcome, action and rechallenge vocabularies follow the TFDA
// reporting form. They are closed sets but deliberately configurable: real
// documents occasionally carry variant wording.
var (
	defaultSeverityLabels    = []string{"死亡", "危及生命", "導致病人住院", "延長病人住院時間", "造成永久性殘疾", "先天性畸形", "非嚴重"}
	defaultOutcomeLabels     = []string{"痊癒", "恢復中", "尚未恢復", "恢復但有後遺症", "死亡", "不明"}
	defaultActionLabels      = []string{"停用", "減量", "增量", "劑量不變", "不明"}
	defaultRechallengeLabels = []string{"是", "否", "未再投與", "不明"}
)

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "10000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OCRURL:          mustEnv("OCR_URL", "https://api.ocr.space/parse/image"),
		OCRAPIKey:       mustEnv("OCR_API_KEY", ""),
		OCRLanguage:     mustEnv("OCR_LANGUAGE", "cht"),
		OCREngine:       mustEnvInt("OCR_ENGINE", 2),
		OCROverlay:      mustEnvBool("OCR_OVERLAY_REQUIRED", false),
		OCRTimeoutSecs:  mustEnvInt("OCR_TIMEOUT_SECONDS", 30),
		OCRRateLimitRPS: mustEnvFloat("OCR_RATE_LIMIT_RPS", 2),
		OCRRateBurst:    mustEnvInt("OCR_RATE_LIMIT_BURST", 2),

		PDFNormalizeWhitespace: mustEnvBool("PDF_NORMALIZE_WHITESPACE", true),
		PDFBoilerplateHeader:   mustEnv("PDF_BOILERPLATE_HEADER", "衛生福利部藥品不良反應通報表"),

		BatchWorkers:   mustEnvInt("BATCH_WORKERS", 4),
		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_MB", 32)) << 20,

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),
		APIMaxConcurrent:  mustEnvInt("API_MAX_CONCURRENT", 16),
		APIQueueTimeoutMs: mustEnvInt("API_QUEUE_TIMEOUT_MS", 200),

		SeverityLabels:    mustEnvList("SEVERITY_LABELS", defaultSeverityLabels),
		OutcomeLabels:     mustEnvList("OUTCOME_LABELS", defaultOutcomeLabels),
		ActionLabels:      mustEnvList("ACTION_LABELS", defaultActionLabels),
		RechallengeLabels: mustEnvList("RECHALLENGE_LABELS", defaultRechallengeLabels),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
