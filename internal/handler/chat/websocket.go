package chat

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type wsRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type wsReply struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	State     string `json:"state"`
}

// handleWebSocket serves the conversation over a websocket: one request
// frame in, one reply frame out, with the same semantics as POST
// /chat/messages.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "chat").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("component", "chat").Msg("websocket closed unexpectedly")
			}
			return
		}

		session, reply := h.chatSvc.ProcessMessage(r.Context(), req.SessionID, req.Message)
		if err := conn.WriteJSON(wsReply{
			SessionID: session.ID,
			Reply:     reply,
			State:     session.State,
		}); err != nil {
			log.Warn().Err(err).Str("component", "chat").Msg("websocket write failed")
			return
		}
	}
}
