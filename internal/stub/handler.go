package stub

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// NewHandler serves the assistant service contract: POST /chat and
// GET /health. Error shapes match the real service, flat {"error": ...}
// objects rather than the gateway's envelope. A request with ?fail=1 returns
// 500 so degraded paths can be exercised by hand.
func NewHandler(responder *Responder, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Post("/chat", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("fail") == "1" {
			writeBody(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}

		// Message must be present; an empty string is a valid message.
		var body struct {
			Message *string  `json:"message"`
			History []string `json:"history"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Message == nil {
			writeBody(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
			return
		}

		resp := responder.Reply(*body.Message, body.History)
		log.WithFields(logrus.Fields{
			"history_lines": len(body.History),
			"recommended":   len(resp.RecommendedProducts),
		}).Info("stub chat reply")

		writeBody(w, http.StatusOK, resp)
	})

	return r
}

func writeBody(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
