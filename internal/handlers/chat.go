package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"shopassist/internal/chatbot"
	"shopassist/internal/middleware"
	"shopassist/internal/models"
	"shopassist/internal/session"
	"shopassist/internal/transcript"
)

// ChatHandler fronts the assistant service for the storefront: it resolves
// the shopper's session, supplies stored history, forwards the message and
// records the completed exchange. Sends within one session are serialized.
type ChatHandler struct {
	serviceURL string
	httpClient *http.Client
	store      session.Store
	locks      *session.Locker
	window     int
}

func NewChatHandler(serviceURL string, httpClient *http.Client, store session.Store, window int) *ChatHandler {
	return &ChatHandler{
		serviceURL: serviceURL,
		httpClient: httpClient,
		store:      store,
		locks:      session.NewLocker(),
		window:     window,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.GatewayChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	log := middleware.Log(r.Context())

	// Client-held history overrides the stored transcript for this exchange
	// and is not written back.
	if req.History != nil {
		resp, err := chatbot.Call(r.Context(), h.httpClient, h.serviceURL, req.Message, transcript.NewSeeded(req.History).Tail(h.window))
		if err != nil {
			log.WithField("error", err).Error("assistant exchange failed")
			writeJSON(w, http.StatusBadGateway, errorResp("UPSTREAM_ERROR", "Failed to get assistant response", r))
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.SessionID(r.Context())
	}

	unlock := h.locks.Lock(sessionID)
	defer unlock()

	stored, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		log.WithField("error", err).Error("failed to load session history")
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
		return
	}

	resp, err := chatbot.Call(r.Context(), h.httpClient, h.serviceURL, req.Message, transcript.NewSeeded(stored).Tail(h.window))
	if err != nil {
		log.WithField("error", err).Error("assistant exchange failed")
		writeJSON(w, http.StatusBadGateway, errorResp("UPSTREAM_ERROR", "Failed to get assistant response", r))
		return
	}

	// A failed exchange never reaches this point, so the stored transcript
	// only ever grows by completed pairs.
	if err := h.store.AppendExchange(r.Context(), sessionID, models.UserLine(req.Message), models.AssistantLine(resp.Response)); err != nil {
		log.WithField("error", err).Error("failed to record exchange")
	}

	writeJSON(w, http.StatusOK, resp)
}

// Bot keeps the page's original chat endpoint alive: same exchange, reply
// reshaped to {"message": ...} and failures surfaced the way that endpoint
// always surfaced them.
func (h *ChatHandler) Bot(w http.ResponseWriter, r *http.Request) {
	var req models.BotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	resp, err := chatbot.Call(r.Context(), h.httpClient, h.serviceURL, req.Message, transcript.NewSeeded(req.History).Tail(h.window))
	if err != nil {
		middleware.Log(r.Context()).WithField("error", err).Error("assistant exchange failed")
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get assistant response", r))
		return
	}

	writeJSON(w, http.StatusOK, models.BotResponse{Message: resp.Response})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := h.resolveSession(r)

	lines, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		middleware.Log(r.Context()).WithField("error", err).Error("failed to load session history")
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
		return
	}
	if lines == nil {
		lines = []string{}
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{SessionID: sessionID, History: lines})
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := h.resolveSession(r)

	if err := h.store.Clear(r.Context(), sessionID); err != nil {
		middleware.Log(r.Context()).WithField("error", err).Error("failed to clear session history")
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}

func (h *ChatHandler) resolveSession(r *http.Request) string {
	if id := r.URL.Query().Get("session_id"); id != "" {
		return id
	}
	return middleware.SessionID(r.Context())
}
