package service

import (
	"context"
	"errors"
	"time"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/internal/repository"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// AuthService - явная регистрация проверенной личности. Сама проверка
// учетных данных делегирована внешнему провайдеру, здесь только запись
// документа пользователя
type AuthService interface {
	Register(ctx context.Context, ident *identity.Identity) (*RegisterResult, error)
}

type RegisterResult struct {
	Created         bool
	ProfileComplete bool
}

type authService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, log logger.Logger) AuthService {
	return &authService{userRepo: userRepo, log: log}
}

// Register идемпотентна: повторный вызов для существующего UID просто
// сообщает состояние профиля
func (s *authService) Register(ctx context.Context, ident *identity.Identity) (*RegisterResult, error) {
	existing, err := s.userRepo.GetByUID(ctx, ident.UID)
	if err == nil {
		s.log.Info("User already exists", "uid", ident.UID, "email", ident.Email)
		return &RegisterResult{Created: false, ProfileComplete: existing.ProfileComplete}, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		UID:             ident.UID,
		Email:           ident.Email,
		ProfileComplete: false,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Гонка с конкурентной регистрацией того же UID
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			if existing, getErr := s.userRepo.GetByUID(ctx, ident.UID); getErr == nil {
				return &RegisterResult{Created: false, ProfileComplete: existing.ProfileComplete}, nil
			}
		}
		s.log.Error("Failed to register user", "error", err, "uid", ident.UID)
		return nil, err
	}

	s.log.Info("User registered", "uid", ident.UID, "email", ident.Email)
	return &RegisterResult{Created: true, ProfileComplete: false}, nil
}
