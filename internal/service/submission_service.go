package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
	"github.com/dhruvywuvy/advocare-demo-day/internal/flow"
	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/store"
	"github.com/dhruvywuvy/advocare-demo-day/internal/validate"

	"go.uber.org/zap"
)

// ErrSubmissionInFlight a second submission was started before the first
// settled. The guard makes re-entry explicit instead of letting two
// responses race for the result slot.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// sideWriteTimeout bound for the detached archive/waitlist writes.
const sideWriteTimeout = 10 * time.Second

// Analyzer is what the pipeline needs from the analysis backend client.
type Analyzer interface {
	Analyze(ctx context.Context, sub *domain.PatientSubmission) (*domain.AnalysisResult, json.RawMessage, error)
}

// SubmissionService 提交管线: 校验 → 调用分析服务 → 写结果 → 后台补记.
//
// One submission at a time; settled attempts always release the guard.
// Ordering within an attempt: the backend call completes before the
// result store is written, and the store is written before the outcome
// (and with it any navigation) is reported.
type SubmissionService struct {
	client       Analyzer
	results      *store.ResultStore
	waitlist     repository.WaitlistRepository
	archive      repository.AnalysisArchiveRepository
	policy       validate.UploadPolicy
	requireEmail bool
	timeout      time.Duration
	logger       *zap.Logger

	inFlight   atomic.Bool
	sideWrites sync.WaitGroup
}

// NewSubmissionService 创建提交管线.
// waitlist and archive may be nil; the corresponding side write is then
// skipped. requireEmail matches the form variant that collects an email.
func NewSubmissionService(
	client Analyzer,
	results *store.ResultStore,
	waitlist repository.WaitlistRepository,
	archive repository.AnalysisArchiveRepository,
	policy validate.UploadPolicy,
	requireEmail bool,
	timeout time.Duration,
	logger *zap.Logger,
) *SubmissionService {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &SubmissionService{
		client:       client,
		results:      results,
		waitlist:     waitlist,
		archive:      archive,
		policy:       policy,
		requireEmail: requireEmail,
		timeout:      timeout,
		logger:       logger,
	}
}

// InFlight reports whether an attempt is currently unsettled.
func (s *SubmissionService) InFlight() bool {
	return s.inFlight.Load()
}

// Submit runs one submission attempt end to end.
//
// On success it returns both the decoded result (for the shared slot)
// and the analysis payload exactly as the backend sent it, so the relay
// can pass the body through without losing fields the domain model does
// not carry.
//
// The returned outcome drives navigation: OutcomeRejected means
// validation failed before any network call, OutcomeFailed means the
// backend call failed or returned a malformed body, OutcomeSucceeded
// means the result store now holds this attempt's analysis.
//
// ctx is the caller's context: cancelling it (client navigated away)
// aborts the in-flight backend call. Each attempt additionally carries
// its own deadline.
func (s *SubmissionService) Submit(ctx context.Context, sub *domain.PatientSubmission) (*domain.AnalysisResult, json.RawMessage, flow.Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, nil, flow.OutcomeRejected, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	// Validating: rejections end the attempt before anything is sent.
	if err := s.policy.Submission(sub, s.requireEmail); err != nil {
		s.logger.Info("submission rejected", zap.Error(err))
		return nil, nil, flow.OutcomeRejected, err
	}

	// Submitting.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, raw, err := s.client.Analyze(ctx, sub)
	if err != nil {
		s.logger.Warn("submission failed",
			zap.String("patient", sub.FirstName+" "+sub.LastName),
			zap.Error(err),
		)
		return nil, nil, flow.OutcomeFailed, err
	}

	// Succeeded: the shared slot is written before the outcome is
	// reported, so navigation never races the result it displays.
	s.results.Write(result)

	s.queueSideWrites(sub.Email, raw)

	return result, raw, flow.OutcomeSucceeded, nil
}

// queueSideWrites archives the analysis and records the waitlist email
// on a detached context. At-most-once and fire-and-forget: failures are
// logged and never affect the already-delivered result.
func (s *SubmissionService) queueSideWrites(email string, analysis json.RawMessage) {
	if s.archive == nil && (s.waitlist == nil || email == "") {
		return
	}

	s.sideWrites.Add(1)
	go func() {
		defer s.sideWrites.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sideWriteTimeout)
		defer cancel()

		if s.archive != nil {
			if _, err := s.archive.SaveResult(ctx, email, analysis); err != nil {
				s.logger.Warn("failed to archive analysis result", zap.Error(err))
			}
		}
		if s.waitlist != nil && email != "" {
			if _, err := s.waitlist.AddEmail(ctx, email); err != nil {
				s.logger.Warn("failed to record waitlist email",
					zap.String("email", email),
					zap.Error(err),
				)
			}
		}
	}()
}

// Flush blocks until queued side writes settle. Used on shutdown and in
// tests; the submission path never waits on it.
func (s *SubmissionService) Flush() {
	s.sideWrites.Wait()
}
