package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsInbound struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type wsOutbound struct {
	Replies []string `json:"replies"`
	Error   string   `json:"error,omitempty"`
}

// handleChatSocket runs a chat loop over one websocket connection. Each
// inbound frame is one user message; each outbound frame carries the
// replies for it.
func (r *Router) handleChatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		r.logger.Warn(c.Request.Context(), "websocket upgrade failed", logx.KV("error", err.Error()))
		return
	}
	defer conn.Close()

	if r.metrics != nil {
		r.metrics.SessionOpened()
		defer r.metrics.SessionClosed()
	}

	ctx := c.Request.Context()
	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.logger.Warn(ctx, "websocket read failed", logx.KV("error", err.Error()))
			}
			return
		}
		if in.UserID == "" || in.Text == "" {
			if err := conn.WriteJSON(wsOutbound{Error: "user_id and text are required"}); err != nil {
				return
			}
			continue
		}

		replies, err := r.bot.HandleMessage(ctx, in.UserID, in.Text)
		if err != nil {
			if err := conn.WriteJSON(wsOutbound{Error: "internal error"}); err != nil {
				return
			}
			continue
		}

		out := wsOutbound{Replies: make([]string, 0, len(replies))}
		for _, reply := range replies {
			out.Replies = append(out.Replies, reply.Text)
		}
		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}
