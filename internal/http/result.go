package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
)

// writeJSON 序列化响应体 (编码失败只能记在 500 之后，头已发出)
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail 失败响应，与分析后端一致的 {"detail": ...} 形状
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeFormError 表单解析失败的通用 400
func writeFormError(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid form data"})
}

// readBodyJSON decodes a JSON request body with a size cap.
func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
