package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New("error")
}

// In-memory реализация UserRepository для тестов сервисного слоя
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	refs  map[string]map[string][]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*domain.User),
		refs:  make(map[string]map[string][]uuid.UUID),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.UID]; ok {
		return fmt.Errorf("user %s: %w", user.UID, apperrors.ErrUserAlreadyExists)
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[uid]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameTaken(ctx context.Context, username, excludeUID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username && user.UID != excludeUID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.UID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, limit int) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var users []*domain.User
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) userRefs(uid string) map[string][]uuid.UUID {
	if f.refs[uid] == nil {
		f.refs[uid] = make(map[string][]uuid.UUID)
	}
	return f.refs[uid]
}

func (f *fakeUserRepo) AddFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	refs := f.userRefs(uid)
	for _, existing := range refs[column] {
		if existing == id {
			return nil
		}
	}
	refs[column] = append(refs[column], id)
	return nil
}

func (f *fakeUserRepo) RemoveFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	refs := f.userRefs(uid)
	var kept []uuid.UUID
	for _, existing := range refs[column] {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	refs[column] = kept
	return nil
}

func (f *fakeUserRepo) RemoveFeedRefAll(ctx context.Context, columns []string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for uid := range f.refs {
		for _, column := range columns {
			var kept []uuid.UUID
			for _, existing := range f.refs[uid][column] {
				if existing != id {
					kept = append(kept, existing)
				}
			}
			f.refs[uid][column] = kept
		}
	}
	return nil
}

func (f *fakeUserRepo) GetFeedRefs(ctx context.Context, uid, column string) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[uid]; !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return append([]uuid.UUID(nil), f.userRefs(uid)[column]...), nil
}

// In-memory реализация MessageRepository
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*domain.ChatMessage
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	message.ID = f.nextID
	f.nextID++
	copied := *message
	f.messages = append(f.messages, &copied)
	return nil
}

// Recent отдает новые первыми, как SQL-реализация
func (f *fakeMessageRepo) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.ChatMessage
	for i := len(f.messages) - 1; i >= 0 && len(result) < limit; i-- {
		copied := *f.messages[i]
		result = append(result, &copied)
	}
	return result, nil
}

// In-memory реализация FeedRepository
type fakeFeedRepo struct {
	mu       sync.Mutex
	entries  map[uuid.UUID]*domain.Post
	notFound error
}

func newFakeFeedRepo(notFound error) *fakeFeedRepo {
	return &fakeFeedRepo{
		entries:  make(map[uuid.UUID]*domain.Post),
		notFound: notFound,
	}
}

func (f *fakeFeedRepo) Create(ctx context.Context, entry *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeFeedRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, f.notFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeFeedRepo) ListAll(ctx context.Context, limit int) ([]*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []*domain.Post
	for _, entry := range f.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}

func (f *fakeFeedRepo) ListPage(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	entries, _ := f.ListAll(ctx, limit)
	if skip >= len(entries) {
		return nil, nil
	}
	end := skip + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[skip:end], nil
}

func (f *fakeFeedRepo) ListByAuthor(ctx context.Context, uid string, limit int) ([]*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []*domain.Post
	for _, entry := range f.entries {
		if entry.UserID == uid {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (f *fakeFeedRepo) ListByIDs(ctx context.Context, ids []uuid.UUID, limit int) ([]*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []*domain.Post
	for _, id := range ids {
		if entry, ok := f.entries[id]; ok {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (f *fakeFeedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[id]; !ok {
		return f.notFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeFeedRepo) AddToSet(ctx context.Context, id uuid.UUID, field, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil
	}
	set := entry.Likes
	if field == domain.SetSaves {
		set = entry.Saves
	}
	for _, existing := range set {
		if existing == uid {
			return nil
		}
	}
	if field == domain.SetSaves {
		entry.Saves = append(entry.Saves, uid)
	} else {
		entry.Likes = append(entry.Likes, uid)
	}
	return nil
}

func (f *fakeFeedRepo) RemoveFromSet(ctx context.Context, id uuid.UUID, field, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil
	}
	filter := func(set []string) []string {
		var kept []string
		for _, existing := range set {
			if existing != uid {
				kept = append(kept, existing)
			}
		}
		return kept
	}
	if field == domain.SetSaves {
		entry.Saves = filter(entry.Saves)
	} else {
		entry.Likes = filter(entry.Likes)
	}
	return nil
}

func (f *fakeFeedRepo) AppendComment(ctx context.Context, id uuid.UUID, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return f.notFound
	}
	entry.Comments = append(entry.Comments, *comment)
	return nil
}

func (f *fakeFeedRepo) GetComments(ctx context.Context, id uuid.UUID) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, f.notFound
	}
	return append([]domain.Comment(nil), entry.Comments...), nil
}
