package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/yosoybienestar/chat-bienestar/backend/internal/service/chat"
	"github.com/yosoybienestar/chat-bienestar/backend/pkg/utils"
)

// Handler exposes the conversation endpoints over HTTP.
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/messages", h.handleMessage)
	r.Post("/chat/session", h.handleCreateSession)
	r.Delete("/chat/session/{sessionID}", h.handleCloseSession)
	r.Get("/chat/session/{sessionID}/transcript", h.handleTranscript)
	r.Get("/chat/ws", h.handleWebSocket)
}

type messageResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	State     string `json:"state"`
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, reply := h.chatSvc.ProcessMessage(r.Context(), payload.SessionID, payload.Message)
	utils.RespondJSON(w, http.StatusOK, messageResponse{
		SessionID: session.ID,
		Reply:     reply,
		State:     session.State,
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, welcome := h.chatSvc.CreateSession(r.Context())
	utils.RespondJSON(w, http.StatusCreated, messageResponse{
		SessionID: session.ID,
		Reply:     welcome,
		State:     session.State,
	})
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatSvc.Close(sessionID); err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}
