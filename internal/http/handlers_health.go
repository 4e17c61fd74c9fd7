package httpx

import (
	"net/http"

	"github.com/favoriteblog/blog-ui/internal/ports"
)

type healthResponse struct {
	Status  string `json:"status"`
	Session string `json:"session"`
}

// healthHandler reports liveness plus the session state, so callers can wait
// for the initial restore to finish.
func healthHandler(sessions ports.SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Session: sessions.Session().State.String()}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
