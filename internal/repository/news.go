package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.News, error)
	ListPage(ctx context.Context, skip, limit int) ([]*domain.News, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type newsRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewNewsRepository(db *pgxpool.Pool, log logger.Logger) NewsRepository {
	return &newsRepository{db: db, log: log}
}

func (r *newsRepository) Create(ctx context.Context, news *domain.News) error {
	query := `
		INSERT INTO news (id, title, content, url, author, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		news.ID, news.Title, news.Content, news.URL, news.Author, news.Date,
	)
	if err != nil {
		r.log.Error("Failed to create news", "error", err)
		return err
	}

	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	query := `SELECT id, title, content, url, author, date FROM news WHERE id = $1`

	news := &domain.News{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&news.ID, &news.Title, &news.Content, &news.URL, &news.Author, &news.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNewsNotFound
		}
		r.log.Error("Failed to get news", "error", err)
		return nil, err
	}

	return news, nil
}

func (r *newsRepository) ListPage(ctx context.Context, skip, limit int) ([]*domain.News, error) {
	query := `SELECT id, title, content, url, author, date FROM news ORDER BY date DESC OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		r.log.Error("Failed to list news", "error", err)
		return nil, err
	}
	defer rows.Close()

	var items []*domain.News
	for rows.Next() {
		news := &domain.News{}
		err := rows.Scan(&news.ID, &news.Title, &news.Content, &news.URL, &news.Author, &news.Date)
		if err != nil {
			r.log.Error("Failed to scan news", "error", err)
			return nil, err
		}
		items = append(items, news)
	}

	return items, rows.Err()
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete news", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNewsNotFound
	}

	return nil
}
