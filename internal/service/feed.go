package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Kind различает posts и updates: ленты идентичны по форме, но живут в
// разных коллекциях и ссылаются из разных колонок профиля
type Kind string

const (
	KindPost   Kind = "post"
	KindUpdate Kind = "update"
)

const (
	defaultListLimit = 100
	defaultPageLimit = 10
)

type FeedService interface {
	Create(ctx context.Context, uid, title, content, imageURL string) (*domain.Post, error)
	ListAll(ctx context.Context, viewerUID string) ([]*domain.Post, error)
	ListPage(ctx context.Context, viewerUID string, page, limit int) ([]*domain.Post, error)
	ListMine(ctx context.Context, uid string) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, viewerUID, authorUID string) ([]*domain.Post, error)
	Get(ctx context.Context, viewerUID, id string) (*domain.Post, error)
	Delete(ctx context.Context, uid, id string) error
	Like(ctx context.Context, uid, id string) error
	Unlike(ctx context.Context, uid, id string) error
	Save(ctx context.Context, uid, id string) error
	Unsave(ctx context.Context, uid, id string) error
	Comment(ctx context.Context, uid, id, content string) (*domain.Comment, error)
	Comments(ctx context.Context, id string) ([]domain.Comment, error)
	ListLiked(ctx context.Context, uid string) ([]*domain.Post, error)
	ListSaved(ctx context.Context, uid string) ([]*domain.Post, error)
}

type feedService struct {
	feedRepo repository.FeedRepository
	userRepo repository.UserRepository
	kind     Kind
	likedRef string
	savedRef string
	log      logger.Logger
}

func NewFeedService(feedRepo repository.FeedRepository, userRepo repository.UserRepository, kind Kind, log logger.Logger) FeedService {
	likedRef, savedRef := domain.RefLikedPosts, domain.RefSavedPosts
	if kind == KindUpdate {
		likedRef, savedRef = domain.RefLikedUpdates, domain.RefSavedUpdates
	}

	return &feedService{
		feedRepo: feedRepo,
		userRepo: userRepo,
		kind:     kind,
		likedRef: likedRef,
		savedRef: savedRef,
		log:      log,
	}
}

func (s *feedService) parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", s.kind, id, apperrors.ErrInvalidID)
	}
	return parsed, nil
}

// authorName - имя для ленты; до заполнения профиля показываем email
func authorName(user *domain.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}

func (s *feedService) Create(ctx context.Context, uid, title, content, imageURL string) (*domain.Post, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	entry := &domain.Post{
		ID:        uuid.New(),
		UserID:    uid,
		Username:  authorName(user),
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
		Saves:     []string{},
		Comments:  []domain.Comment{},
	}

	if err := s.feedRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info("Feed entry created", "kind", s.kind, "id", entry.ID, "uid", uid)
	return entry, nil
}

func decorateAll(entries []*domain.Post, viewerUID string) []*domain.Post {
	if entries == nil {
		entries = []*domain.Post{}
	}
	for _, entry := range entries {
		entry.Decorate(viewerUID)
	}
	return entries
}

func (s *feedService) ListAll(ctx context.Context, viewerUID string) ([]*domain.Post, error) {
	entries, err := s.feedRepo.ListAll(ctx, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return decorateAll(entries, viewerUID), nil
}

func (s *feedService) ListPage(ctx context.Context, viewerUID string, page, limit int) ([]*domain.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	skip := (page - 1) * limit

	entries, err := s.feedRepo.ListPage(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return decorateAll(entries, viewerUID), nil
}

func (s *feedService) ListMine(ctx context.Context, uid string) ([]*domain.Post, error) {
	entries, err := s.feedRepo.ListByAuthor(ctx, uid, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return decorateAll(entries, uid), nil
}

func (s *feedService) ListByAuthor(ctx context.Context, viewerUID, authorUID string) ([]*domain.Post, error) {
	entries, err := s.feedRepo.ListByAuthor(ctx, authorUID, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return decorateAll(entries, viewerUID), nil
}

func (s *feedService) Get(ctx context.Context, viewerUID, id string) (*domain.Post, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	entry, err := s.feedRepo.GetByID(ctx, parsed)
	if err != nil {
		return nil, err
	}

	entry.Decorate(viewerUID)
	return entry, nil
}

func (s *feedService) Delete(ctx context.Context, uid, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	entry, err := s.feedRepo.GetByID(ctx, parsed)
	if err != nil {
		return err
	}

	if entry.UserID != uid {
		return fmt.Errorf("you can only delete your own %ss: %w", s.kind, apperrors.ErrForbidden)
	}

	if err := s.feedRepo.Delete(ctx, parsed); err != nil {
		return err
	}

	// Вычищаем висячие ссылки из профилей всех пользователей
	if err := s.userRepo.RemoveFeedRefAll(ctx, []string{s.likedRef, s.savedRef}, parsed); err != nil {
		s.log.Error("Failed to clean feed refs after delete", "error", err, "kind", s.kind, "id", parsed)
	}

	s.log.Info("Feed entry deleted", "kind", s.kind, "id", parsed, "uid", uid)
	return nil
}

// react - общий путь like/save: отметка в документе записи плюс
// обратная ссылка в профиле. Две записи не атомарны между собой
func (s *feedService) react(ctx context.Context, uid, id, setField, refColumn string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	if _, err := s.feedRepo.GetByID(ctx, parsed); err != nil {
		return err
	}

	if err := s.feedRepo.AddToSet(ctx, parsed, setField, uid); err != nil {
		return err
	}
	return s.userRepo.AddFeedRef(ctx, uid, refColumn, parsed)
}

func (s *feedService) unreact(ctx context.Context, uid, id, setField, refColumn string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.feedRepo.RemoveFromSet(ctx, parsed, setField, uid); err != nil {
		return err
	}
	return s.userRepo.RemoveFeedRef(ctx, uid, refColumn, parsed)
}

func (s *feedService) Like(ctx context.Context, uid, id string) error {
	return s.react(ctx, uid, id, domain.SetLikes, s.likedRef)
}

func (s *feedService) Unlike(ctx context.Context, uid, id string) error {
	return s.unreact(ctx, uid, id, domain.SetLikes, s.likedRef)
}

func (s *feedService) Save(ctx context.Context, uid, id string) error {
	return s.react(ctx, uid, id, domain.SetSaves, s.savedRef)
}

func (s *feedService) Unsave(ctx context.Context, uid, id string) error {
	return s.unreact(ctx, uid, id, domain.SetSaves, s.savedRef)
}

func (s *feedService) Comment(ctx context.Context, uid, id, content string) (*domain.Comment, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		CommentID: uuid.NewString(),
		UserID:    uid,
		Username:  authorName(user),
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	if err := s.feedRepo.AppendComment(ctx, parsed, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *feedService) Comments(ctx context.Context, id string) ([]domain.Comment, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.feedRepo.GetComments(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	// Свежие комментарии первыми
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Timestamp.After(comments[j].Timestamp)
	})

	return comments, nil
}

func (s *feedService) listRefs(ctx context.Context, uid, refColumn string) ([]*domain.Post, error) {
	ids, err := s.userRepo.GetFeedRefs(ctx, uid, refColumn)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Post{}, nil
	}

	entries, err := s.feedRepo.ListByIDs(ctx, ids, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return decorateAll(entries, uid), nil
}

func (s *feedService) ListLiked(ctx context.Context, uid string) ([]*domain.Post, error) {
	entries, err := s.listRefs(ctx, uid, s.likedRef)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		entry.Liked = true
	}
	return entries, nil
}

func (s *feedService) ListSaved(ctx context.Context, uid string) ([]*domain.Post, error) {
	entries, err := s.listRefs(ctx, uid, s.savedRef)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		entry.Saved = true
	}
	return entries, nil
}
