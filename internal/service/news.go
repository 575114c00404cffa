package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type NewsService interface {
	Create(ctx context.Context, title, content, url, author string) (*domain.News, error)
	List(ctx context.Context, page, limit int) ([]*domain.News, error)
	Delete(ctx context.Context, id string) error
}

type newsService struct {
	newsRepo repository.NewsRepository
	log      logger.Logger
}

func NewNewsService(newsRepo repository.NewsRepository, log logger.Logger) NewsService {
	return &newsService{newsRepo: newsRepo, log: log}
}

func (s *newsService) Create(ctx context.Context, title, content, url, author string) (*domain.News, error) {
	news := &domain.News{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		URL:     url,
		Author:  author,
		Date:    time.Now().UTC(),
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, err
	}

	s.log.Info("News created", "id", news.ID, "title", news.Title)
	return news, nil
}

func (s *newsService) List(ctx context.Context, page, limit int) ([]*domain.News, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	items, err := s.newsRepo.ListPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.News{}
	}

	return items, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid news id %q: %w", id, apperrors.ErrInvalidID)
	}

	if _, err := s.newsRepo.GetByID(ctx, parsed); err != nil {
		return err
	}

	return s.newsRepo.Delete(ctx, parsed)
}
