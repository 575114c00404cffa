package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ShreyaKadian/InternetButFun/internal/config"
	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/internal/identity"
)

func newChatServiceForTest(msgRepo *fakeMessageRepo, userRepo *fakeUserRepo, historyLimit int) ChatService {
	cfg := config.ChatConfig{
		HistoryLimit: historyLimit,
		SendBuffer:   16,
		WriteTimeout: time.Second,
	}
	return NewChatService(msgRepo, userRepo, cfg, testLogger())
}

func TestChatService_EnsureUser_AutoProvision(t *testing.T) {
	req := require.New(t)
	userRepo := newFakeUserRepo()
	svc := newChatServiceForTest(newFakeMessageRepo(), userRepo, 50)

	profile, err := svc.EnsureUser(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	req.Equal(domain.DefaultUsername, profile.Username)
	req.Nil(profile.ImageURL)

	// Пользователь создан с незавершенным профилем
	user, err := userRepo.GetByUID(context.Background(), "uid-1")
	req.NoError(err)
	req.False(user.ProfileComplete)
	req.Equal("a@b.c", user.Email)
}

func TestChatService_EnsureUser_ExistingProfile(t *testing.T) {
	req := require.New(t)
	userRepo := newFakeUserRepo()
	image := "https://cdn.example.com/avatar.png"
	req.NoError(userRepo.Create(context.Background(), &domain.User{
		UID:      "uid-1",
		Email:    "a@b.c",
		Username: "vasya",
		ImageURL: &image,
	}))

	svc := newChatServiceForTest(newFakeMessageRepo(), userRepo, 50)

	profile, err := svc.EnsureUser(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	req.Equal("vasya", profile.Username)
	req.NotNil(profile.ImageURL)
	req.Equal(image, *profile.ImageURL)
}

func TestChatService_EnsureUser_SecondCallDoesNotRecreate(t *testing.T) {
	req := require.New(t)
	userRepo := newFakeUserRepo()
	svc := newChatServiceForTest(newFakeMessageRepo(), userRepo, 50)

	_, err := svc.EnsureUser(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)
	_, err = svc.EnsureUser(context.Background(), &identity.Identity{UID: "uid-1", Email: "a@b.c"})
	req.NoError(err)

	users, err := userRepo.List(context.Background(), 100)
	req.NoError(err)
	req.Len(users, 1)
}

func TestChatService_RecentHistory_Chronological(t *testing.T) {
	req := require.New(t)
	msgRepo := newFakeMessageRepo()
	svc := newChatServiceForTest(msgRepo, newFakeUserRepo(), 50)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		req.NoError(msgRepo.Create(context.Background(), &domain.ChatMessage{
			Content:   fmt.Sprintf("msg-%d", i),
			SenderID:  "uid-1",
			Username:  "vasya",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	history, err := svc.RecentHistory(context.Background())
	req.NoError(err)
	req.Len(history, 3)
	// Старые первыми
	req.Equal("msg-0", history[0].Content)
	req.Equal("msg-1", history[1].Content)
	req.Equal("msg-2", history[2].Content)
}

func TestChatService_RecentHistory_CapsAtLimit(t *testing.T) {
	req := require.New(t)
	msgRepo := newFakeMessageRepo()
	svc := newChatServiceForTest(msgRepo, newFakeUserRepo(), 50)

	base := time.Now().UTC()
	for i := 0; i < 60; i++ {
		req.NoError(msgRepo.Create(context.Background(), &domain.ChatMessage{
			Content:   fmt.Sprintf("msg-%d", i),
			SenderID:  "uid-1",
			Username:  "vasya",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	history, err := svc.RecentHistory(context.Background())
	req.NoError(err)
	req.Len(history, 50)
	// Остаются только последние 50, в хронологическом порядке
	req.Equal("msg-10", history[0].Content)
	req.Equal("msg-59", history[49].Content)
}

func TestChatService_RecentHistory_Empty(t *testing.T) {
	req := require.New(t)
	svc := newChatServiceForTest(newFakeMessageRepo(), newFakeUserRepo(), 50)

	history, err := svc.RecentHistory(context.Background())
	req.NoError(err)
	req.Empty(history)
}
