package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dhruvywuvy/advocare-demo-day/internal/service"

	"go.uber.org/zap"
)

// AuthHandler 认证授权 Handler
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口，按 path 分发
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/api/v1/signup":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SignUp(w, r)
	case "/auth/api/v1/signin":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SignIn(w, r)
	case "/auth/api/v1/session":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Session(w, r)
	case "/auth/api/v1/signout":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SignOut(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// SignUp 注册（patient 或 advocate）
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		UserType    string `json:"user_type"`
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeFormError(w)
		return
	}
	if body.UserType == "" {
		body.UserType = "patient"
	}

	profile, err := h.auth.SignUp(r.Context(), body.Email, body.Password, body.UserType, body.FullName, body.PhoneNumber)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": profile})
}

// SignIn 登录，返回会话 token
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeFormError(w)
		return
	}

	token, profile, err := h.auth.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeDetail(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("sign-in failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to sign in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  profile,
	})
}

// Session 会话检查
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	profile, advocate, err := h.auth.Session(r.Context(), bearerToken(r))
	if err != nil {
		if errors.Is(err, service.ErrSessionExpired) {
			writeDetail(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("session check failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to check session")
		return
	}

	resp := map[string]any{"user": profile}
	if advocate != nil {
		resp["advocate"] = advocate
	}
	writeJSON(w, http.StatusOK, resp)
}

// SignOut 退出登录
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("sign-out failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
