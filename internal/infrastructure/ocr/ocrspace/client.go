package ocrspace

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/linyucheng/docextract/internal/core/domain"
	"github.com/linyucheng/docextract/internal/infrastructure/resilience"
)

type Config struct {
	URL             string
	APIKey          string
	Language        string
	Engine          int
	OverlayRequired bool
	Timeout         time.Duration
	RateLimitRPS    float64
	RateBurst       int
}

// Client calls an OCR.space-compatible recognition endpoint. Calls are rate
// limited and run under the shared retry/breaker executor; a well-formed
// response with no parsed results is empty text, never a failure.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	exec       *resilience.Executor
	observe    func(outcome string)
}

func New(cfg Config, exec *resilience.Executor) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		exec:       exec,
	}
}

// WithObserver registers a per-call outcome callback (ok/empty/error).
func (c *Client) WithObserver(fn func(outcome string)) *Client {
	c.observe = fn
	return c
}

func (c *Client) Recognize(ctx context.Context, filename string, data []byte) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", domain.WrapError(domain.ErrExternalService, "ocr rate limit", err)
	}

	var text string
	err := c.exec.Execute(ctx, "ocr_parse", func(callCtx context.Context) error {
		parsed, callErr := c.parseImage(callCtx, data)
		if callErr != nil {
			return callErr
		}
		text = parsed
		return nil
	}, classifyOCRError)
	if err != nil {
		c.record("error")
		return "", domain.WrapError(domain.ErrExternalService, fmt.Sprintf("ocr recognize %s", filename), err)
	}

	if strings.TrimSpace(text) == "" {
		c.record("empty")
		return "", nil
	}
	c.record("ok")
	return text, nil
}

func (c *Client) record(outcome string) {
	if c.observe != nil {
		c.observe(outcome)
	}
}
