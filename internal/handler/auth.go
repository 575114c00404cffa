package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/internal/middleware"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	log         logger.Logger
}

func NewAuthHandler(authService service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register записывает проверенную личность. Идемпотентен: повторный
// вызов сообщает состояние профиля вместо ошибки
func (h *AuthHandler) Register(c *gin.Context) {
	ident := &identity.Identity{
		UID:   middleware.UserUID(c),
		Email: c.GetString(middleware.ContextUserEmail),
	}
	if ident.UID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User already exists"
	if result.Created {
		message = "User registered"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          message,
		"profile_complete": result.ProfileComplete,
	})
}
