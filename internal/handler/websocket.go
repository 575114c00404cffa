package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ShreyaKadian/InternetButFun/internal/chat"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type WebSocketHandler struct {
	session  *chat.SessionHandler
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewWebSocketHandler(session *chat.SessionHandler, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Браузерный origin-фильтр здесь не нужен: доступ решает токен
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Chat апгрейдит соединение и передает его сессии. Токен приходит
// query-параметром: браузерный WebSocket API не умеет заголовки.
// Апгрейд всегда до проверки токена, отказ уходит close-кадром
func (h *WebSocketHandler) Chat(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.session.Run(c.Request.Context(), conn, c.Query("token"))
}
