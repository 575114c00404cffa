package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// FeedRepository обслуживает одну коллекцию ленты. Posts и updates имеют
// одинаковую форму, поэтому одна реализация параметризуется именем таблицы
type FeedRepository interface {
	Create(ctx context.Context, entry *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListAll(ctx context.Context, limit int) ([]*domain.Post, error)
	ListPage(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, uid string, limit int) ([]*domain.Post, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, limit int) ([]*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddToSet / RemoveFromSet - аналоги $addToSet / $pull для встроенных
	// множеств likes и saves, атомарны в пределах одного документа
	AddToSet(ctx context.Context, id uuid.UUID, field, uid string) error
	RemoveFromSet(ctx context.Context, id uuid.UUID, field, uid string) error
	AppendComment(ctx context.Context, id uuid.UUID, comment *domain.Comment) error
	GetComments(ctx context.Context, id uuid.UUID) ([]domain.Comment, error)
}

var feedTables = map[string]bool{
	"posts":   true,
	"updates": true,
}

var feedSetFields = map[string]bool{
	domain.SetLikes: true,
	domain.SetSaves: true,
}

type feedRepository struct {
	db       *pgxpool.Pool
	table    string
	notFound error
	log      logger.Logger
}

func NewFeedRepository(db *pgxpool.Pool, table string, log logger.Logger) FeedRepository {
	if !feedTables[table] {
		panic(fmt.Sprintf("unknown feed table %q", table))
	}

	notFound := apperrors.ErrPostNotFound
	if table == "updates" {
		notFound = apperrors.ErrUpdateNotFound
	}

	return &feedRepository{db: db, table: table, notFound: notFound, log: log}
}

const feedColumns = `id, user_id, username, title, content, image_url, created_at, likes, saves, comments`

func (r *feedRepository) Create(ctx context.Context, entry *domain.Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, username, title, content, image_url, created_at, likes, saves, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '{}', '{}', '[]')
	`, r.table)

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Username, entry.Title, entry.Content,
		entry.ImageURL, entry.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create feed entry", "error", err, "table", r.table)
		return err
	}

	return nil
}

func (r *feedRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, feedColumns, r.table)
	return r.scanEntry(r.db.QueryRow(ctx, query, id))
}

func (r *feedRepository) scanEntry(row pgx.Row) (*domain.Post, error) {
	entry := &domain.Post{}
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Username, &entry.Title, &entry.Content,
		&entry.ImageURL, &entry.CreatedAt, &entry.Likes, &entry.Saves, &entry.Comments,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.notFound
		}
		r.log.Error("Failed to scan feed entry", "error", err, "table", r.table)
		return nil, err
	}
	return entry, nil
}

func (r *feedRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list feed entries", "error", err, "table", r.table)
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Post
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *feedRepository) ListAll(ctx context.Context, limit int) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC LIMIT $1`, feedColumns, r.table)
	return r.list(ctx, query, limit)
}

func (r *feedRepository) ListPage(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC OFFSET $1 LIMIT $2`, feedColumns, r.table)
	return r.list(ctx, query, skip, limit)
}

func (r *feedRepository) ListByAuthor(ctx context.Context, uid string, limit int) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, feedColumns, r.table)
	return r.list(ctx, query, uid, limit)
}

func (r *feedRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, limit int) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1) ORDER BY created_at DESC LIMIT $2`, feedColumns, r.table)
	return r.list(ctx, query, ids, limit)
}

func (r *feedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete feed entry", "error", err, "table", r.table)
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.notFound
	}

	return nil
}

func (r *feedRepository) AddToSet(ctx context.Context, id uuid.UUID, field, uid string) error {
	if !feedSetFields[field] {
		return fmt.Errorf("unknown set field %q", field)
	}

	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = array_append(%[2]s, $2)
		WHERE id = $1 AND NOT ($2 = ANY(%[2]s))
	`, r.table, field)

	if _, err := r.db.Exec(ctx, query, id, uid); err != nil {
		r.log.Error("Failed to add to set", "error", err, "table", r.table, "field", field)
		return err
	}
	return nil
}

func (r *feedRepository) RemoveFromSet(ctx context.Context, id uuid.UUID, field, uid string) error {
	if !feedSetFields[field] {
		return fmt.Errorf("unknown set field %q", field)
	}

	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = array_remove(%[2]s, $2) WHERE id = $1`, r.table, field)

	if _, err := r.db.Exec(ctx, query, id, uid); err != nil {
		r.log.Error("Failed to remove from set", "error", err, "table", r.table, "field", field)
		return err
	}
	return nil
}

func (r *feedRepository) AppendComment(ctx context.Context, id uuid.UUID, comment *domain.Comment) error {
	payload, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	// jsonb || добавляет объект в конец массива комментариев
	query := fmt.Sprintf(`UPDATE %s SET comments = comments || $2::jsonb WHERE id = $1`, r.table)

	tag, err := r.db.Exec(ctx, query, id, string(payload))
	if err != nil {
		r.log.Error("Failed to append comment", "error", err, "table", r.table)
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.notFound
	}

	return nil
}

func (r *feedRepository) GetComments(ctx context.Context, id uuid.UUID) ([]domain.Comment, error) {
	query := fmt.Sprintf(`SELECT comments FROM %s WHERE id = $1`, r.table)

	var comments []domain.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(&comments)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.notFound
		}
		r.log.Error("Failed to get comments", "error", err, "table", r.table)
		return nil, err
	}

	return comments, nil
}
