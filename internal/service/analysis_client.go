package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrMissingAnalysis the backend answered 2xx but the body carried no
// analysis field. Treated as a failure: no partial result is shown.
var ErrMissingAnalysis = errors.New("invalid response format: missing analysis data")

// UpstreamError non-2xx answer from the analysis backend. Message is the
// JSON detail field when present, otherwise the raw body text.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// analyzeEnvelope success body of POST /api/analyze
type analyzeEnvelope struct {
	Analysis json.RawMessage `json:"analysis"`
}

// errorEnvelope failure body of POST /api/analyze
type errorEnvelope struct {
	Detail string `json:"detail"`
}

// AnalysisClient 外部账单分析服务的 HTTP 客户端
type AnalysisClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewAnalysisClient 创建分析服务客户端.
// One attempt per submission: the pipeline does not retry, so neither
// does the client. The timeout bounds the whole call.
func NewAnalysisClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AnalysisClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &AnalysisClient{
		httpClient: client,
		logger:     logger,
	}
}

// Analyze posts the submission as multipart form data and decodes the
// result. Files go under the repeated "files" field in selection order;
// scalars use the field names the backend binds (firstName, lastName,
// dateOfBirth, email).
//
// Returns the decoded analysis plus its raw JSON (kept for archiving and
// for relaying the upstream body unmodified).
func (c *AnalysisClient) Analyze(ctx context.Context, sub *domain.PatientSubmission) (*domain.AnalysisResult, json.RawMessage, error) {
	req := c.httpClient.R().SetContext(ctx)

	for _, f := range sub.Files {
		req.SetMultipartField("files", f.Name, f.ContentType, bytes.NewReader(f.Content))
	}
	req.SetMultipartFormData(map[string]string{
		"firstName":   sub.FirstName,
		"lastName":    sub.LastName,
		"dateOfBirth": sub.DateOfBirth,
	})
	if sub.Email != "" {
		req.SetMultipartFormData(map[string]string{"email": sub.Email})
	}

	c.logger.Info("calling analysis service",
		zap.Int("file_count", len(sub.Files)),
		zap.Int64("total_bytes", sub.TotalSize()),
	)

	resp, err := req.Post("/api/analyze")
	if err != nil {
		c.logger.Error("analysis service call failed", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to call analysis service: %w", err)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		msg := upstreamMessage(body)
		c.logger.Error("analysis service returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", msg),
		)
		return nil, nil, &UpstreamError{StatusCode: resp.StatusCode(), Message: msg}
	}

	var envelope analyzeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error("failed to decode analysis response", zap.Error(err))
		return nil, nil, ErrMissingAnalysis
	}
	if len(envelope.Analysis) == 0 || string(envelope.Analysis) == "null" {
		c.logger.Error("analysis response missing analysis field")
		return nil, nil, ErrMissingAnalysis
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(envelope.Analysis, &result); err != nil {
		c.logger.Error("failed to decode analysis payload", zap.Error(err))
		return nil, nil, ErrMissingAnalysis
	}

	c.logger.Info("analysis service returned result",
		zap.Int("status_code", resp.StatusCode()),
	)
	return &result, envelope.Analysis, nil
}

// upstreamMessage extracts the failure reason: JSON detail field when
// available, else raw text.
func upstreamMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "failed to analyze bill"
	}
	return msg
}
