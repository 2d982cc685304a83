package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
	"github.com/dhruvywuvy/advocare-demo-day/internal/flow"
	"github.com/dhruvywuvy/advocare-demo-day/internal/service"

	"go.uber.org/zap"
)

// maxFormMemory multipart parse buffer; bigger uploads spill to disk and
// are rejected by the validator anyway.
const maxFormMemory = 32 << 20

// maxRequestBytes transport cap on one submission request: the 20MB
// combined upload limit plus headroom for the scalar fields and
// multipart framing. Bodies over the cap fail the form parse before any
// file content is buffered.
const maxRequestBytes = (20 << 20) + (1 << 20)

// AnalyzeHandler relays the browser's upload form to the submission
// pipeline and reflects the in-flight state for the loading screen.
type AnalyzeHandler struct {
	pipeline *service.SubmissionService
	rotator  *flow.Rotator
	logger   *zap.Logger
}

func NewAnalyzeHandler(pipeline *service.SubmissionService, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		pipeline: pipeline,
		rotator:  flow.NewRotator(nil, 0),
		logger:   logger,
	}
}

// Analyze POST /api/analyze
// Accepts the multipart form (files + firstName/lastName/dateOfBirth and
// optionally email) and relays the analysis backend's verdict.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmissionForm(w, r)
	if err != nil {
		h.logger.Info("rejecting malformed form data", zap.Error(err))
		writeFormError(w)
		return
	}

	// The rotator runs exactly while the pipeline is submitting, so the
	// loading screen's status endpoint always has a current message.
	// Start on an already-running rotator is a no-op; a duplicate POST
	// bounced by the in-flight guard must not stop the messages that the
	// owning submission is still showing.
	h.rotator.Start()

	_, raw, outcome, err := h.pipeline.Submit(r.Context(), sub)
	if !errors.Is(err, service.ErrSubmissionInFlight) {
		h.rotator.Stop()
	}

	w.Header().Set("X-Next-Screen", string(flow.Next(flow.ScreenForm, outcome)))

	switch outcome {
	case flow.OutcomeSucceeded:
		// The backend's analysis payload is relayed byte for byte, so
		// fields the domain model does not carry still reach the client.
		writeJSON(w, http.StatusOK, map[string]any{"analysis": raw})
	case flow.OutcomeRejected:
		if errors.Is(err, service.ErrSubmissionInFlight) {
			writeDetail(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		h.writeFailure(r.Context(), w, err)
	}
}

// writeFailure maps pipeline failures onto relayed status codes.
func (h *AnalyzeHandler) writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	var upstream *service.UpstreamError
	switch {
	case errors.As(err, &upstream):
		writeDetail(w, upstream.StatusCode, upstream.Message)
	case errors.Is(err, service.ErrMissingAnalysis):
		writeDetail(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeDetail(w, http.StatusGatewayTimeout, "analysis timed out, please try again")
	case ctx.Err() != nil:
		// Client went away; nobody reads this but the connection needs
		// closing with some status.
		writeDetail(w, http.StatusBadGateway, "request cancelled")
	default:
		writeDetail(w, http.StatusBadGateway, "something went wrong, please try again")
	}
}

// Status GET /api/analyze/status
// Loading-screen poll: whether a submission is in flight and which
// informational message to show right now.
func (h *AnalyzeHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"in_flight": h.pipeline.InFlight(),
		"message":   h.rotator.Current(),
	})
}

// parseSubmissionForm builds the typed submission from the multipart
// form, preserving file selection order. The body is capped before
// parsing so an oversized request cannot buffer gigabytes ahead of the
// upload validator.
func parseSubmissionForm(w http.ResponseWriter, r *http.Request) (*domain.PatientSubmission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, err
	}

	sub := &domain.PatientSubmission{
		FirstName:   r.FormValue("firstName"),
		LastName:    r.FormValue("lastName"),
		DateOfBirth: r.FormValue("dateOfBirth"),
		Email:       r.FormValue("email"),
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			sub.Files = append(sub.Files, domain.UploadFile{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Content:     content,
			})
		}
	}
	return sub, nil
}

// ResultsHandler serves the shared result slot to the results screen.
type ResultsHandler struct {
	results resultReader
	logger  *zap.Logger
}

type resultReader interface {
	Read() (*domain.AnalysisResult, bool)
}

func NewResultsHandler(results resultReader, logger *zap.Logger) *ResultsHandler {
	return &ResultsHandler{results: results, logger: logger}
}

// GetResults GET /api/results
// Absent state is not an error path worth guarding against: direct
// navigation just gets the fallback payload with a way back to the form.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, _ *http.Request) {
	result, ok := h.results.Read()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"detail":    "No analysis results available",
			"return_to": flow.ResultsFallback(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"analysis":   result,
		"follow_ups": flow.FollowUps(),
	})
}
