package service

import (
	"context"
	"errors"
	"time"

	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// ChatProfile - срез профиля, который сессия кэширует на все время
// соединения. Последующие правки профиля не видны до переподключения
type ChatProfile struct {
	Username string
	ImageURL *string
}

type ChatService interface {
	// EnsureUser возвращает профиль для сессии чата, создавая документ
	// пользователя если его нет. Единственный путь неявного создания
	// пользователя вне явной регистрации
	EnsureUser(ctx context.Context, ident *identity.Identity) (*ChatProfile, error)
	SaveMessage(ctx context.Context, message *domain.ChatMessage) error
	// RecentHistory возвращает последние сообщения в хронологическом
	// порядке (старые первыми) для реплея новому соединению
	RecentHistory(ctx context.Context) ([]*domain.ChatMessage, error)
}

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	cfg         config.ChatConfig
	log         logger.Logger
}

func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, cfg config.ChatConfig, log logger.Logger) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		log:         log,
	}
}

func (s *chatService) EnsureUser(ctx context.Context, ident *identity.Identity) (*ChatProfile, error) {
	user, err := s.userRepo.GetByUID(ctx, ident.UID)
	if err == nil {
		return &ChatProfile{Username: user.DisplayName(), ImageURL: user.ImageURL}, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	s.log.Info("User not found, auto-registering", "uid", ident.UID, "email", ident.Email)

	newUser := &domain.User{
		UID:             ident.UID,
		Email:           ident.Email,
		ProfileComplete: false,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		// Конкурентное соединение могло создать документ первым
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			if user, getErr := s.userRepo.GetByUID(ctx, ident.UID); getErr == nil {
				return &ChatProfile{Username: user.DisplayName(), ImageURL: user.ImageURL}, nil
			}
		}
		return nil, err
	}

	return &ChatProfile{Username: domain.DefaultUsername, ImageURL: nil}, nil
}

func (s *chatService) SaveMessage(ctx context.Context, message *domain.ChatMessage) error {
	return s.messageRepo.Create(ctx, message)
}

func (s *chatService) RecentHistory(ctx context.Context) ([]*domain.ChatMessage, error) {
	messages, err := s.messageRepo.Recent(ctx, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	// Repo отдает новые первыми; реплей должен идти хронологически
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
