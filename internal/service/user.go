package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// ProfileInput - данные профиля от клиента
type ProfileInput struct {
	Username    string
	AboutYou    string
	Likes       []string
	ImageURL    *string
	Mood        string
	Status      string
	SocialLinks *domain.SocialLinks
	Age         string
	Title       string
	Location    string
	YapTopics   map[string]domain.YapTopic
}

type UserService interface {
	GetMe(ctx context.Context, uid string) (*domain.User, error)
	// CompleteProfile - первичное заполнение профиля, выставляет profile_complete
	CompleteProfile(ctx context.Context, uid string, input *ProfileInput) error
	UpdateProfile(ctx context.Context, uid string, input *ProfileInput) error
	CheckUsername(ctx context.Context, uid, username string) (bool, error)
	GetByUsername(ctx context.Context, viewerUID, username string) (*domain.User, bool, error)
	// ResolveUID - внутренний lookup username -> uid, наружу UID не отдаем
	ResolveUID(ctx context.Context, username string) (string, error)
	UpdateByUsername(ctx context.Context, viewerUID, username string, input *ProfileInput) error
	ListAll(ctx context.Context, limit int) ([]*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

func (s *userService) GetMe(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	// UID не раскрываем в ответах профиля
	user.UID = ""
	return user, nil
}

// ensureUsernameFree - advisory-проверка уникальности. Два конкурентных
// писателя могут оба пройти проверку до записи; это документированная
// брешь консистентности, не чиним молча транзакциями
func (s *userService) ensureUsernameFree(ctx context.Context, uid, username string) error {
	taken, err := s.userRepo.UsernameTaken(ctx, username, uid)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrUsernameTaken
	}
	return nil
}

func (s *userService) applyInput(user *domain.User, input *ProfileInput) {
	user.Username = strings.TrimSpace(input.Username)
	user.AboutYou = input.AboutYou
	user.Likes = input.Likes
	user.Mood = input.Mood
	user.Status = input.Status
	user.SocialLinks = input.SocialLinks
	user.Age = input.Age
	user.Title = input.Title
	user.Location = input.Location
	user.YapTopics = input.YapTopics

	// Заглушку фронтенда не сохраняем как аватар
	if input.ImageURL != nil && *input.ImageURL != "" && *input.ImageURL != domain.PlaceholderImageURL {
		user.ImageURL = input.ImageURL
	}
}

func (s *userService) CompleteProfile(ctx context.Context, uid string, input *ProfileInput) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("please register first: %w", err)
	}

	if err := s.ensureUsernameFree(ctx, uid, input.Username); err != nil {
		return err
	}

	s.applyInput(user, input)
	now := time.Now().UTC()
	user.ProfileComplete = true
	user.ProfileCompletedAt = &now

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		s.log.Error("Failed to complete profile", "error", err, "uid", uid)
		return err
	}

	s.log.Info("Profile completed", "uid", uid, "username", user.Username)
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, input *ProfileInput) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return err
	}

	if input.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, uid, input.Username); err != nil {
			return err
		}
	}

	s.applyInput(user, input)
	now := time.Now().UTC()
	user.UpdatedAt = &now

	return s.userRepo.UpdateProfile(ctx, user)
}

func (s *userService) CheckUsername(ctx context.Context, uid, username string) (bool, error) {
	taken, err := s.userRepo.UsernameTaken(ctx, username, uid)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *userService) GetByUsername(ctx context.Context, viewerUID, username string) (*domain.User, bool, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}

	canEdit := user.UID == viewerUID
	user.UID = ""
	return user, canEdit, nil
}

func (s *userService) ResolveUID(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, viewerUID, username string, input *ProfileInput) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if user.UID != viewerUID {
		return fmt.Errorf("you can only edit your own profile: %w", apperrors.ErrForbidden)
	}

	if input.Username != username {
		if err := s.ensureUsernameFree(ctx, viewerUID, input.Username); err != nil {
			return err
		}
	}

	s.applyInput(user, input)
	now := time.Now().UTC()
	user.UpdatedAt = &now

	return s.userRepo.UpdateProfile(ctx, user)
}

func (s *userService) ListAll(ctx context.Context, limit int) ([]*domain.User, error) {
	return s.userRepo.List(ctx, limit)
}
