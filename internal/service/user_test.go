package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
)

func seedUser(t *testing.T, repo *fakeUserRepo, uid, email, username string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.User{UID: uid, Email: email}))
	if username != "" {
		user, err := repo.GetByUID(context.Background(), uid)
		require.NoError(t, err)
		user.Username = username
		require.NoError(t, repo.UpdateProfile(context.Background(), user))
	}
}

func TestUserService_CompleteProfile(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "")
	svc := NewUserService(repo, testLogger())

	err := svc.CompleteProfile(context.Background(), "uid-1", &ProfileInput{
		Username: "vasya",
		AboutYou: "привет",
	})
	req.NoError(err)

	user, err := repo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	req.True(user.ProfileComplete)
	req.NotNil(user.ProfileCompletedAt)
	req.Equal("vasya", user.Username)
}

func TestUserService_CompleteProfile_RequiresRegistration(t *testing.T) {
	req := require.New(t)
	svc := NewUserService(newFakeUserRepo(), testLogger())

	err := svc.CompleteProfile(context.Background(), "ghost", &ProfileInput{Username: "vasya"})
	req.ErrorIs(err, apperrors.ErrUserNotFound)
}

func TestUserService_CompleteProfile_UsernameConflict(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "vasya")
	seedUser(t, repo, "uid-2", "d@e.f", "")
	svc := NewUserService(repo, testLogger())

	err := svc.CompleteProfile(context.Background(), "uid-2", &ProfileInput{Username: "vasya"})
	req.ErrorIs(err, apperrors.ErrUsernameTaken)
}

func TestUserService_UpdateProfile_KeepOwnUsername(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "vasya")
	svc := NewUserService(repo, testLogger())

	// Сохранение профиля со своим же именем конфликтом не считается
	err := svc.UpdateProfile(context.Background(), "uid-1", &ProfileInput{
		Username: "vasya",
		Mood:     "happy",
	})
	req.NoError(err)

	user, err := repo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	req.Equal("happy", user.Mood)
	req.NotNil(user.UpdatedAt)
}

func TestUserService_PlaceholderImageIgnored(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "")
	svc := NewUserService(repo, testLogger())

	placeholder := domain.PlaceholderImageURL
	err := svc.CompleteProfile(context.Background(), "uid-1", &ProfileInput{
		Username: "vasya",
		ImageURL: &placeholder,
	})
	req.NoError(err)

	user, err := repo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	req.Nil(user.ImageURL)
}

func TestUserService_CheckUsername(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "vasya")
	svc := NewUserService(repo, testLogger())

	available, err := svc.CheckUsername(context.Background(), "uid-2", "vasya")
	req.NoError(err)
	req.False(available)

	available, err = svc.CheckUsername(context.Background(), "uid-2", "petya")
	req.NoError(err)
	req.True(available)

	// Свое собственное имя всегда доступно
	available, err = svc.CheckUsername(context.Background(), "uid-1", "vasya")
	req.NoError(err)
	req.True(available)
}

func TestUserService_GetByUsername_CanEdit(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "vasya")
	svc := NewUserService(repo, testLogger())

	user, canEdit, err := svc.GetByUsername(context.Background(), "uid-1", "vasya")
	req.NoError(err)
	req.True(canEdit)
	// UID наружу не отдаем
	req.Empty(user.UID)

	_, canEdit, err = svc.GetByUsername(context.Background(), "uid-2", "vasya")
	req.NoError(err)
	req.False(canEdit)
}

func TestUserService_UpdateByUsername_OwnerOnly(t *testing.T) {
	req := require.New(t)
	repo := newFakeUserRepo()
	seedUser(t, repo, "uid-1", "a@b.c", "vasya")
	svc := NewUserService(repo, testLogger())

	err := svc.UpdateByUsername(context.Background(), "uid-2", "vasya", &ProfileInput{Username: "vasya"})
	req.ErrorIs(err, apperrors.ErrForbidden)

	err = svc.UpdateByUsername(context.Background(), "uid-1", "vasya", &ProfileInput{
		Username: "vasya",
		Status:   "online",
	})
	req.NoError(err)
}
