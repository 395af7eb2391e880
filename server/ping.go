package server

import "net/http"

// ping is a basic HTTP 200 health check.
func (h *AppServer) ping(w http.ResponseWriter, r *http.Request) *AppError {
	jsonResponse(w, map[string]string{"status": "ok"})
	return nil
}
