package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// UsernameTaken проверяет занятость имени другим пользователем.
	// Только advisory-проверка, без блокировок (см. заметку о гонке в UserService)
	UsernameTaken(ctx context.Context, username, excludeUID string) (bool, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit int) ([]*domain.User, error)
	AddFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error
	RemoveFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error
	// RemoveFeedRefAll вычищает id записи из указанных колонок у всех
	// пользователей (аналог update_many + $pull при удалении записи)
	RemoveFeedRefAll(ctx context.Context, columns []string, id uuid.UUID) error
	GetFeedRefs(ctx context.Context, uid, column string) ([]uuid.UUID, error)
}

// Допустимые колонки ссылок; защита от подстановки произвольного имени в SQL
var feedRefColumns = map[string]bool{
	domain.RefLikedPosts:   true,
	domain.RefSavedPosts:   true,
	domain.RefLikedUpdates: true,
	domain.RefSavedUpdates: true,
}

type userRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewUserRepository(db *pgxpool.Pool, log logger.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const userColumns = `uid, email, username, aboutyou, likes, image_url, mood, status,
	       social_links, age, title, location, yap_topics, profile_complete,
	       liked_posts, saved_posts, liked_updates, saved_updates,
	       created_at, updated_at, profile_completed_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (uid, email, profile_complete, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, user.UID, user.Email, user.ProfileComplete, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.log.Warn("User already exists (unique violation)", "uid", user.UID)
			return fmt.Errorf("user %s: %w", user.UID, apperrors.ErrUserAlreadyExists)
		}
		r.log.Error("Failed to create user", "error", err, "uid", user.UID)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, uid))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	var username *string

	err := row.Scan(
		&user.UID, &user.Email, &username, &user.AboutYou, &user.Likes, &user.ImageURL,
		&user.Mood, &user.Status, &user.SocialLinks, &user.Age, &user.Title, &user.Location,
		&user.YapTopics, &user.ProfileComplete,
		&user.LikedPosts, &user.SavedPosts, &user.LikedUpdates, &user.SavedUpdates,
		&user.CreatedAt, &user.UpdatedAt, &user.ProfileCompletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("Failed to get user", "error", err)
		return nil, err
	}

	if username != nil {
		user.Username = *username
	}
	return user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username, excludeUID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND uid <> $2)`

	var taken bool
	if err := r.db.QueryRow(ctx, query, username, excludeUID).Scan(&taken); err != nil {
		r.log.Error("Failed to check username", "error", err, "username", username)
		return false, err
	}

	return taken, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, aboutyou = $3, likes = $4, image_url = $5, mood = $6,
		    status = $7, social_links = $8, age = $9, title = $10, location = $11,
		    yap_topics = $12, profile_complete = $13, updated_at = $14,
		    profile_completed_at = $15
		WHERE uid = $1
	`

	var username *string
	if user.Username != "" {
		username = &user.Username
	}

	tag, err := r.db.Exec(ctx, query,
		user.UID, username, user.AboutYou, user.Likes, user.ImageURL, user.Mood,
		user.Status, user.SocialLinks, user.Age, user.Title, user.Location,
		user.YapTopics, user.ProfileComplete, user.UpdatedAt, user.ProfileCompletedAt,
	)
	if err != nil {
		r.log.Error("Failed to update profile", "error", err, "uid", user.UID)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, limit int) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list users", "error", err)
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) AddFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error {
	if !feedRefColumns[column] {
		return fmt.Errorf("unknown feed ref column %q", column)
	}

	// Аналог $addToSet: добавляем только если id еще нет в массиве
	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = array_append(%[1]s, $2)
		WHERE uid = $1 AND NOT ($2 = ANY(%[1]s))
	`, column)

	if _, err := r.db.Exec(ctx, query, uid, id); err != nil {
		r.log.Error("Failed to add feed ref", "error", err, "column", column)
		return err
	}
	return nil
}

func (r *userRepository) RemoveFeedRef(ctx context.Context, uid, column string, id uuid.UUID) error {
	if !feedRefColumns[column] {
		return fmt.Errorf("unknown feed ref column %q", column)
	}

	query := fmt.Sprintf(`UPDATE users SET %[1]s = array_remove(%[1]s, $2) WHERE uid = $1`, column)

	if _, err := r.db.Exec(ctx, query, uid, id); err != nil {
		r.log.Error("Failed to remove feed ref", "error", err, "column", column)
		return err
	}
	return nil
}

func (r *userRepository) RemoveFeedRefAll(ctx context.Context, columns []string, id uuid.UUID) error {
	for _, column := range columns {
		if !feedRefColumns[column] {
			return fmt.Errorf("unknown feed ref column %q", column)
		}

		query := fmt.Sprintf(`UPDATE users SET %[1]s = array_remove(%[1]s, $1) WHERE $1 = ANY(%[1]s)`, column)
		if _, err := r.db.Exec(ctx, query, id); err != nil {
			r.log.Error("Failed to remove feed ref everywhere", "error", err, "column", column)
			return err
		}
	}
	return nil
}

func (r *userRepository) GetFeedRefs(ctx context.Context, uid, column string) ([]uuid.UUID, error) {
	if !feedRefColumns[column] {
		return nil, fmt.Errorf("unknown feed ref column %q", column)
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE uid = $1`, column)

	var ids []uuid.UUID
	err := r.db.QueryRow(ctx, query, uid).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("Failed to get feed refs", "error", err, "column", column)
		return nil, err
	}

	return ids, nil
}
