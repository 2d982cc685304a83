package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWaitlistHandler() *WaitlistHandler {
	logger := zap.NewNop()
	svc := service.NewWaitlistService(repository.NewMemoryWaitlistRepo(), logger)
	return NewWaitlistHandler(svc, logger)
}

func TestWaitlistJoin_Success(t *testing.T) {
	handler := newWaitlistHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		bytes.NewBufferString(`{"email":"jane@example.com"}`))
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")
}

func TestWaitlistJoin_BadEmail(t *testing.T) {
	handler := newWaitlistHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		bytes.NewBufferString(`{"email":"nope"}`))
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestWaitlistJoin_MalformedBody(t *testing.T) {
	handler := newWaitlistHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		bytes.NewBufferString(`{`))
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid form data"}`, rec.Body.String())
}

func TestWaitlistExport_ReturnsWorkbook(t *testing.T) {
	handler := newWaitlistHandler()

	join := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		bytes.NewBufferString(`{"email":"jane@example.com"}`))
	handler.Join(httptest.NewRecorder(), join)

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/api/waitlist/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
