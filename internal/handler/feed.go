package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/middleware"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// FeedHandler обслуживает и posts, и updates: один и тот же набор
// операций поверх разных сервисов, noun подставляется в сообщения
type FeedHandler struct {
	feedService service.FeedService
	noun        string
	log         logger.Logger
}

func NewFeedHandler(feedService service.FeedService, noun string, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		noun:        noun,
		log:         log,
	}
}

type CreateEntryRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *FeedHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.feedService.Create(c.Request.Context(), middleware.UserUID(c), req.Title, req.Content, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.noun + " created",
		"id":      entry.ID,
	})
}

func (h *FeedHandler) List(c *gin.Context) {
	entries, err := h.feedService.ListAll(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ListPage - пагинированная лента (?page=&limit=)
func (h *FeedHandler) ListPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.feedService.ListPage(c.Request.Context(), middleware.UserUID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *FeedHandler) ListMine(c *gin.Context) {
	entries, err := h.feedService.ListMine(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *FeedHandler) Get(c *gin.Context) {
	entry, err := h.feedService.Get(c.Request.Context(), middleware.UserUID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FeedHandler) Delete(c *gin.Context) {
	if err := h.feedService.Delete(c.Request.Context(), middleware.UserUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.noun + " deleted"})
}

func (h *FeedHandler) Like(c *gin.Context) {
	if err := h.feedService.Like(c.Request.Context(), middleware.UserUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.noun + " liked"})
}

func (h *FeedHandler) Unlike(c *gin.Context) {
	if err := h.feedService.Unlike(c.Request.Context(), middleware.UserUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.noun + " unliked"})
}

func (h *FeedHandler) Save(c *gin.Context) {
	if err := h.feedService.Save(c.Request.Context(), middleware.UserUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.noun + " saved"})
}

func (h *FeedHandler) Unsave(c *gin.Context) {
	if err := h.feedService.Unsave(c.Request.Context(), middleware.UserUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.noun + " unsaved"})
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *FeedHandler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.feedService.Comment(c.Request.Context(), middleware.UserUID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added",
		"comment": comment,
	})
}

func (h *FeedHandler) Comments(c *gin.Context) {
	comments, err := h.feedService.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *FeedHandler) ListLiked(c *gin.Context) {
	entries, err := h.feedService.ListLiked(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *FeedHandler) ListSaved(c *gin.Context) {
	entries, err := h.feedService.ListSaved(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
