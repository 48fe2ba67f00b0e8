package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// MLRequest is the payload sent to the external report classifier.
type MLRequest struct {
	ReportID    string   `json:"report_id"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	UserID      string   `json:"user_id"`
	ImageURL    *string  `json:"image_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// MLResult is the classifier's verdict on a submitted report.
type MLResult struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Reason   string `json:"reason,omitempty"`
}

// Accepted reports whether the classifier let the report through.
func (r MLResult) Accepted() bool {
	return r.Status != "rejected"
}

// MLValidator is an optional best-effort collaborator: when the
// classifier is unreachable, slow, or misconfigured, reports are accepted
// with a fallback medium priority. It is never a hard dependency.
type MLValidator struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewMLValidator(url string, logger *slog.Logger) *MLValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MLValidator{
		url:    url,
		client: &http.Client{Timeout: 3 * time.Second},
		logger: logger,
	}
}

var acceptedFallback = MLResult{Status: "accepted", Priority: "medium"}

// Validate classifies a report. Any transport or decoding failure falls
// back to acceptance.
func (v *MLValidator) Validate(ctx context.Context, req MLRequest) MLResult {
	if v == nil || v.url == "" {
		return acceptedFallback
	}

	body, err := json.Marshal(req)
	if err != nil {
		return acceptedFallback
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return acceptedFallback
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(httpReq)
	if err != nil {
		v.logger.Warn("ml validation unavailable, accepting report", "error", err)
		return acceptedFallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("ml validation returned non-200, accepting report", "status", resp.StatusCode)
		return acceptedFallback
	}

	var result MLResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return acceptedFallback
	}
	if result.Priority == "" {
		result.Priority = acceptedFallback.Priority
	}
	return result
}
