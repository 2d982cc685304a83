package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
	"github.com/dhruvywuvy/advocare-demo-day/internal/flow"
	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/store"
	"github.com/dhruvywuvy/advocare-demo-day/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAnalyzer scripted analysis backend.
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	results []fakeCall
	block   chan struct{} // when set, Analyze waits on it
}

type fakeCall struct {
	result *domain.AnalysisResult
	raw    json.RawMessage
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, _ *domain.PatientSubmission) (*domain.AnalysisResult, json.RawMessage, error) {
	f.mu.Lock()
	call := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	return call.result, call.raw, call.err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func validSubmission() *domain.PatientSubmission {
	return &domain.PatientSubmission{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Email:       "jane@example.com",
		Files: []domain.UploadFile{
			{Name: "bill.pdf", ContentType: "application/pdf", Size: 1 << 20, Content: []byte("pdf")},
		},
	}
}

func successCall(summary string) fakeCall {
	result := &domain.AnalysisResult{Summary: summary}
	raw, _ := json.Marshal(result)
	return fakeCall{result: result, raw: raw}
}

func newPipeline(analyzer Analyzer, results *store.ResultStore) *SubmissionService {
	return NewSubmissionService(
		analyzer,
		results,
		repository.NewMemoryWaitlistRepo(),
		repository.NewMemoryAnalysisArchiveRepo(),
		validate.DefaultPolicy,
		false,
		time.Minute,
		zap.NewNop(),
	)
}

func TestSubmit_RejectedBeforeNetworkCall(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("x")}}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	sub := validSubmission()
	sub.Files = []domain.UploadFile{{Name: "huge.pdf", Size: 6 << 20}}

	_, _, outcome, err := svc.Submit(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, flow.OutcomeRejected, outcome)

	// Rejections settle before anything is sent.
	assert.Equal(t, 0, analyzer.callCount())
	_, ok := results.Read()
	assert.False(t, ok)
}

func TestSubmit_CountPolicyRejectsOverTenFiles(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("x")}}
	results := store.NewResultStore()
	svc := NewSubmissionService(
		analyzer, results, nil, nil,
		validate.UploadPolicy{MaxFiles: 10},
		false, time.Minute, zap.NewNop(),
	)

	sub := validSubmission()
	sub.Files = nil
	for i := 0; i < 11; i++ {
		sub.Files = append(sub.Files, domain.UploadFile{Name: "bill.png", Size: 1})
	}

	_, _, outcome, err := svc.Submit(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, flow.OutcomeRejected, outcome)
	assert.Equal(t, 0, analyzer.callCount())

	// Ten files pass the count policy and reach the backend.
	sub.Files = sub.Files[:10]
	_, _, outcome, err = svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeSucceeded, outcome)
	assert.Equal(t, 1, analyzer.callCount())
}

func TestSubmit_SuccessStoresResultAndNavigates(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("X")}}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	result, raw, outcome, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeSucceeded, outcome)
	assert.Equal(t, "X", result.Summary)
	assert.JSONEq(t, `{"summary":"X"}`, string(raw))

	stored, ok := results.Read()
	require.True(t, ok)
	assert.Equal(t, result, stored)

	assert.Equal(t, flow.ScreenResults, flow.Next(flow.ScreenForm, outcome))
}

func TestSubmit_ReturnsBackendPayloadVerbatim(t *testing.T) {
	// Fields outside the domain model survive the pipeline untouched.
	raw := json.RawMessage(`{"summary":"X","confidence_score":0.93,"next_steps":["call billing"]}`)
	analyzer := &fakeAnalyzer{results: []fakeCall{
		{result: &domain.AnalysisResult{Summary: "X"}, raw: raw},
	}}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	_, gotRaw, outcome, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.Equal(t, flow.OutcomeSucceeded, outcome)
	assert.Equal(t, raw, gotRaw)
}

func TestSubmit_MalformedResponseLeavesStoreUnchanged(t *testing.T) {
	results := store.NewResultStore()
	prior := &domain.AnalysisResult{Summary: "prior"}
	results.Write(prior)

	analyzer := &fakeAnalyzer{results: []fakeCall{{err: ErrMissingAnalysis}}}
	svc := newPipeline(analyzer, results)

	_, _, outcome, err := svc.Submit(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrMissingAnalysis)
	assert.Equal(t, flow.OutcomeFailed, outcome)

	stored, ok := results.Read()
	require.True(t, ok)
	assert.Equal(t, "prior", stored.Summary)
}

func TestSubmit_UpstreamDetailIsTheErrorText(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{
		{err: &UpstreamError{StatusCode: 422, Message: "bad file"}},
	}}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	_, _, outcome, err := svc.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	assert.Equal(t, "bad file", err.Error())
	assert.Equal(t, flow.OutcomeFailed, outcome)

	// The user stays on the form.
	assert.Equal(t, flow.ScreenForm, flow.Next(flow.ScreenForm, outcome))
}

func TestSubmit_SequentialSubmissionsLastWriteWins(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("first"), successCall("second")}}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	_, _, outcome, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.Equal(t, flow.OutcomeSucceeded, outcome)

	_, _, outcome, err = svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.Equal(t, flow.OutcomeSucceeded, outcome)

	stored, ok := results.Read()
	require.True(t, ok)
	assert.Equal(t, "second", stored.Summary)
	assert.Equal(t, 2, analyzer.callCount())
}

func TestSubmit_InFlightGuardRejectsReentry(t *testing.T) {
	block := make(chan struct{})
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("x")}, block: block}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	firstDone := make(chan error, 1)
	go func() {
		_, _, _, err := svc.Submit(context.Background(), validSubmission())
		firstDone <- err
	}()

	require.Eventually(t, svc.InFlight, time.Second, time.Millisecond)

	_, _, outcome, err := svc.Submit(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, flow.OutcomeRejected, outcome)

	close(block)
	require.NoError(t, <-firstDone)

	// Guard released after settling: a new attempt goes through.
	_, _, outcome, err = svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeSucceeded, outcome)
}

func TestSubmit_CancelledContextAbortsCall(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("x")}, block: block}
	results := store.NewResultStore()
	svc := newPipeline(analyzer, results)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, outcome, err := svc.Submit(ctx, validSubmission())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, flow.OutcomeFailed, outcome)

	// Nothing was written after the caller walked away.
	_, ok := results.Read()
	assert.False(t, ok)
}

func TestSubmit_SideWritesAreBestEffort(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []fakeCall{successCall("x")}}
	results := store.NewResultStore()
	waitlist := repository.NewMemoryWaitlistRepo()
	archive := repository.NewMemoryAnalysisArchiveRepo()
	svc := NewSubmissionService(
		analyzer, results, waitlist, archive,
		validate.DefaultPolicy, false, time.Minute, zap.NewNop(),
	)

	_, _, outcome, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.Equal(t, flow.OutcomeSucceeded, outcome)

	svc.Flush()

	count, err := archive.CountResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := waitlist.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "jane@example.com", entries[0].Email)
}
