package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type Repositories struct {
	User      UserRepository
	Message   MessageRepository
	Posts     FeedRepository
	Updates   FeedRepository
	News      NewsRepository
	RateLimit RateLimitRepository
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db, log),
		Message:   NewMessageRepository(db, log),
		Posts:     NewFeedRepository(db, "posts", log),
		Updates:   NewFeedRepository(db, "updates", log),
		News:      NewNewsRepository(db, log),
		RateLimit: NewRateLimitRepository(redis, log),
	}
}
