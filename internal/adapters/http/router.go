// Package httpadapter exposes batch document extraction over HTTP.
package httpadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/linyucheng/docextract/internal/config"
	"github.com/linyucheng/docextract/internal/core/domain"
	"github.com/linyucheng/docextract/internal/core/ports"
	"github.com/linyucheng/docextract/internal/observability/metrics"
)

const serviceName = "api"

// Upload field names accepted for document batches, checked in order; the
// first field carrying at least one file wins.
var uploadFieldNames = []string{"file", "files", "files[]"}

type Router struct {
	extractor ports.BatchExtractor
	reports   ports.ReportWriter
	metrics   *metrics.HTTPServerMetrics
	cfg       config.Config
}

func NewRouter(
	extractor ports.BatchExtractor,
	reports ports.ReportWriter,
	m *metrics.HTTPServerMetrics,
	cfg config.Config,
) *Router {
	return &Router{
		extractor: extractor,
		reports:   reports,
		metrics:   m,
		cfg:       cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/v1/extract", rt.extract)
	mux.HandleFunc("/v1/extract/export", rt.exportXLSX)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, time.Duration(rt.cfg.APIQueueTimeoutMs)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) extract(w http.ResponseWriter, r *http.Request) {
	results, ok := rt.runBatch(w, r, "extract")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (rt *Router) exportXLSX(w http.ResponseWriter, r *http.Request) {
	results, ok := rt.runBatch(w, r, "export")
	if !ok {
		return
	}

	// Render into memory first so a writer failure can still produce a
	// proper error response instead of a truncated download.
	var buf bytes.Buffer
	if err := rt.reports.Write(&buf, results); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extraction_report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// runBatch parses the multipart upload, runs the extraction pipeline and
// records batch metrics. It writes the error response itself and reports
// ok=false when the handler should not continue.
func (rt *Router) runBatch(w http.ResponseWriter, r *http.Request, endpoint string) ([]domain.FileResult, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(rt.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form upload is required"})
		return nil, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := formFiles(r)
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files uploaded"})
		return nil, false
	}

	docs := make([]domain.UploadedDocument, 0, len(headers))
	for _, header := range headers {
		data, err := readFormFile(header)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read uploaded file " + header.Filename + ": " + err.Error()})
			return nil, false
		}
		docs = append(docs, domain.UploadedDocument{Filename: header.Filename, Bytes: data})
	}

	start := time.Now()
	results, err := rt.extractor.ExtractBatch(r.Context(), docs)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return nil, false
	}

	rt.metrics.RecordBatch(serviceName, endpoint, len(results), time.Since(start))
	for _, result := range results {
		status := "ok"
		class := ""
		if result.Error != "" {
			status = "error"
			class = string(domain.ClassifyFilename(result.Filename))
		} else if result.Record != nil {
			class = string(result.Record.Class)
		}
		rt.metrics.RecordFileProcessed(serviceName, class, status)
	}
	return results, true
}

func formFiles(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	for _, name := range uploadFieldNames {
		if headers := r.MultipartForm.File[name]; len(headers) > 0 {
			return headers
		}
	}
	return nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// writeJSON emits the payload without HTML escaping so CJK field values
// survive byte-for-byte.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
