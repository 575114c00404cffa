package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShreyaKadian/InternetButFun/internal/identity"
)

func TestAuthService_Register(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testLogger())

	result, err := svc.Register(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	req.True(result.Created)
	req.False(result.ProfileComplete)

	user, err := repo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	req.Equal("a@b.c", user.Email)
	req.False(user.ProfileComplete)
}

func TestAuthService_Register_Idempotent(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testLogger())

	_, err := svc.Register(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)

	// Повторная регистрация не ошибка и не создает дубликат
	result, err := svc.Register(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	req.False(result.Created)

	users, err := repo.List(context.Background(), 100)
	req.NoError(err)
	req.Len(users, 1)
}

func TestAuthService_Register_ReportsProfileState(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testLogger())

	_, err := svc.Register(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)

	user, err := repo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	user.Username = "vasya"
	user.ProfileComplete = true
	req.NoError(repo.UpdateProfile(context.Background(), user))

	result, err := svc.Register(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	req.False(result.Created)
	req.True(result.ProfileComplete)
}
