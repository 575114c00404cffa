package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/config"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"service":     "internetbutfun",
		"environment": h.cfg.Environment,
	})
}
