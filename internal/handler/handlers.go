package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/chat"
	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Posts     *FeedHandler
	Updates   *FeedHandler
	News      *NewsHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, session *chat.SessionHandler, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(cfg),
		Auth:      NewAuthHandler(services.Auth, log),
		User:      NewUserHandler(services.User, services.Posts, log),
		Posts:     NewFeedHandler(services.Posts, "Post", log),
		Updates:   NewFeedHandler(services.Updates, "Update", log),
		News:      NewNewsHandler(services.News, log),
		WebSocket: NewWebSocketHandler(session, log),
	}
}

// respondError мапит ошибку на HTTP-статус, текст уходит клиенту как есть
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
}
