package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type NewsHandler struct {
	newsService service.NewsService
	log         logger.Logger
}

func NewNewsHandler(newsService service.NewsService, log logger.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		log:         log,
	}
}

type CreateNewsRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	URL     string `json:"url"`
	Author  string `json:"author"`
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	news, err := h.newsService.Create(c.Request.Context(), req.Title, req.Content, req.URL, req.Author)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "News created",
		"id":      news.ID,
	})
}

func (h *NewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.newsService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.newsService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}
