package ocrspace

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// parseImage submits one document as a base64 data URI and returns the text
// of the first parsed result. A response without parsed results yields an
// empty string and no error.
func (c *Client) parseImage(ctx context.Context, data []byte) (string, error) {
	mime := mimetype.Detect(data).String()
	form := url.Values{}
	form.Set("apikey", c.cfg.APIKey)
	form.Set("language", c.cfg.Language)
	form.Set("isOverlayRequired", strconv.FormatBool(c.cfg.OverlayRequired))
	form.Set("OCREngine", strconv.Itoa(c.cfg.Engine))
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr parse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", newHTTPStatusError("parse", resp)
	}

	var out parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if out.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr processing error: %s", formatErrorMessage(out.ErrorMessage))
	}
	if len(out.ParsedResults) == 0 {
		return "", nil
	}
	return out.ParsedResults[0].ParsedText, nil
}

func newHTTPStatusError(operation string, resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// formatErrorMessage flattens OCR.space's ErrorMessage field, which is a
// string in some responses and an array of strings in others.
func formatErrorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "unknown"
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return string(raw)
}
