package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/middleware"
	"github.com/ShreyaKadian/InternetButFun/internal/service"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type UserHandler struct {
	userService  service.UserService
	postsService service.FeedService
	log          logger.Logger
}

func NewUserHandler(userService service.UserService, postsService service.FeedService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		postsService: postsService,
		log:          log,
	}
}

// ProfileRequest - тело complete-profile и update-profile
type ProfileRequest struct {
	Username    string                     `json:"username"`
	AboutYou    string                     `json:"aboutyou"`
	Likes       []string                   `json:"likes"`
	ImageURL    *string                    `json:"imageUrl"`
	Mood        string                     `json:"mood"`
	Status      string                     `json:"status"`
	SocialLinks *domain.SocialLinks        `json:"socialLinks"`
	Age         string                     `json:"age"`
	Title       string                     `json:"title"`
	Location    string                     `json:"location"`
	YapTopics   map[string]domain.YapTopic `json:"yapTopics"`
}

func (r *ProfileRequest) toInput() *service.ProfileInput {
	return &service.ProfileInput{
		Username:    r.Username,
		AboutYou:    r.AboutYou,
		Likes:       r.Likes,
		ImageURL:    r.ImageURL,
		Mood:        r.Mood,
		Status:      r.Status,
		SocialLinks: r.SocialLinks,
		Age:         r.Age,
		Title:       r.Title,
		Location:    r.Location,
		YapTopics:   r.YapTopics,
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserUID(c), req.toInput()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *UserHandler) CompleteProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.CompleteProfile(c.Request.Context(), middleware.UserUID(c), req.toInput()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile completed"})
}

func (h *UserHandler) CheckUsername(c *gin.Context) {
	username := c.Param("username")

	available, err := h.userService.CheckUsername(c.Request.Context(), middleware.UserUID(c), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// ProfileView - публичный профиль плюс флаг редактируемости для зрителя
type ProfileView struct {
	*domain.User
	CanEdit bool `json:"canEdit"`
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	user, canEdit, err := h.userService.GetByUsername(c.Request.Context(), middleware.UserUID(c), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileView{User: user, CanEdit: canEdit})
}

func (h *UserHandler) UpdateByUsername(c *gin.Context) {
	username := c.Param("username")

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateByUsername(c.Request.Context(), middleware.UserUID(c), username, req.toInput()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UserPosts - посты автора по его username
func (h *UserHandler) UserPosts(c *gin.Context) {
	username := c.Param("username")

	authorUID, err := h.userService.ResolveUID(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	posts, err := h.postsService.ListByAuthor(c.Request.Context(), middleware.UserUID(c), authorUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// DebugList отдает всех пользователей без авторизации. Унаследовано от
// исходного API, наружу такое не выставляют
func (h *UserHandler) DebugList(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context(), 100)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}
