package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Коды закрытия, которые ждет фронтенд
const (
	CloseAuthFailure   = 4001
	CloseInternalError = 4000
)

// Лимит payload контрольного кадра у websocket - 125 байт, 2 уходят на код
const maxCloseReason = 123

// SessionHandler ведет жизненный цикл одной сессии чата: проверка токена,
// дозаведение пользователя, реплей истории, цикл чтения и рассылка
type SessionHandler struct {
	registry *Registry
	verifier identity.Verifier
	chatSvc  service.ChatService
	cfg      config.ChatConfig
	log      logger.Logger
}

func NewSessionHandler(registry *Registry, verifier identity.Verifier, chatSvc service.ChatService, cfg config.ChatConfig, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		verifier: verifier,
		chatSvc:  chatSvc,
		cfg:      cfg,
		log:      log,
	}
}

// Run обслуживает уже апгрейднутое соединение до его закрытия.
// Соединение принято до проверки токена: отказ уходит close-кадром 4001,
// а не HTTP-статусом
func (h *SessionHandler) Run(ctx context.Context, conn *websocket.Conn, credential string) {
	defer conn.Close()

	ident, err := h.verifier.Verify(ctx, credential)
	if err != nil {
		h.log.Warn("Chat auth failed", "error", err)
		h.closeWith(conn, CloseAuthFailure, err.Error())
		return
	}

	profile, err := h.chatSvc.EnsureUser(ctx, ident)
	if err != nil {
		h.log.Error("Failed to ensure chat user", "error", err, "uid", ident.UID)
		h.closeWith(conn, CloseInternalError, err.Error())
		return
	}

	client := newClient(ident.UID, conn, h.cfg.SendBuffer, h.cfg.WriteTimeout, h.log)
	go client.writePump()

	// Реестр до реплея: сообщения, пришедшие во время реплея, встанут в
	// канал после истории и порядок не нарушат
	h.registry.Register(client)
	defer func() {
		h.registry.Unregister(client)
		client.close()
	}()

	history, err := h.chatSvc.RecentHistory(ctx)
	if err != nil {
		h.log.Error("Failed to load chat history", "error", err, "uid", ident.UID)
		h.closeWith(conn, CloseInternalError, err.Error())
		return
	}
	for _, msg := range history {
		client.Send(domain.NewEnvelope(msg))
	}

	h.readLoop(ctx, conn, client, ident, profile)
}

func (h *SessionHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *Client, ident *identity.Identity, profile *service.ChatProfile) {
	for {
		var frame domain.InboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				h.log.Info("Chat client disconnected", "uid", ident.UID)
				return
			}
			h.log.Warn("Chat read failed", "error", err, "uid", ident.UID)
			h.closeWith(conn, CloseInternalError, err.Error())
			return
		}

		// Не-message кадры и пустой контент молча пропускаем
		content := strings.TrimSpace(frame.Content)
		if frame.Type != domain.EnvelopeTypeMessage || content == "" {
			continue
		}

		msg := &domain.ChatMessage{
			Content:   content,
			SenderID:  ident.UID,
			Username:  profile.Username,
			Timestamp: time.Now().UTC(),
			ImageURL:  profile.ImageURL,
		}

		// Сначала персист, потом рассылка: разосланное сообщение обязано
		// попасть в реплей для будущих подключений
		if err := h.chatSvc.SaveMessage(ctx, msg); err != nil {
			h.log.Error("Failed to save chat message", "error", err, "uid", ident.UID)
			h.closeWith(conn, CloseInternalError, err.Error())
			return
		}

		h.registry.Broadcast(domain.NewEnvelope(msg))
	}
}

// closeWith шлет close-кадр с кодом и причиной. WriteControl безопасен
// конкурентно с writePump
func (h *SessionHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	// Причина в close-кадре обязана быть валидным UTF-8, обрезаем по
	// границе руны
	if len(reason) > maxCloseReason {
		cut := maxCloseReason
		for cut > 0 && !utf8.RuneStart(reason[cut]) {
			cut--
		}
		reason = reason[:cut]
	}
	deadline := time.Now().Add(h.cfg.WriteTimeout)
	if err := conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline); err != nil {
		h.log.Debug("Failed to write close frame", "error", err)
	}
}
