package httpapi

import (
	"net/http"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/service"

	"go.uber.org/zap"
)

// WaitlistHandler waitlist 表单 + 导出
type WaitlistHandler struct {
	waitlist *service.WaitlistService
	logger   *zap.Logger
}

func NewWaitlistHandler(waitlist *service.WaitlistService, logger *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist, logger: logger}
}

// Join POST /api/waitlist
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeFormError(w)
		return
	}

	entry, err := h.waitlist.Join(r.Context(), body.Email)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

// Export GET /api/waitlist/export
func (h *WaitlistHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.waitlist.Export(r.Context())
	if err != nil {
		h.logger.Error("waitlist export failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to export waitlist")
		return
	}

	filename := "waitlist-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
