package service

import (
	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type Services struct {
	Auth      AuthService
	User      UserService
	Chat      ChatService
	Posts     FeedService
	Updates   FeedService
	News      NewsService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, log),
		User:      NewUserService(repos.User, log),
		Chat:      NewChatService(repos.Message, repos.User, cfg.Chat, log),
		Posts:     NewFeedService(repos.Posts, repos.User, KindPost, log),
		Updates:   NewFeedService(repos.Updates, repos.User, KindUpdate, log),
		News:      NewNewsService(repos.News, log),
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
