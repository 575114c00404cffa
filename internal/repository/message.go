package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// MessageRepository - append-only лог сообщений чата
type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	// Recent возвращает последние limit сообщений, новые первыми
	Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	query := `
		INSERT INTO messages (content, sender_id, username, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		message.Content, message.SenderID, message.Username, message.ImageURL, message.Timestamp,
	).Scan(&message.ID)

	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, content, sender_id, username, image_url, created_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to get recent messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		message := &domain.ChatMessage{}
		err := rows.Scan(
			&message.ID, &message.Content, &message.SenderID,
			&message.Username, &message.ImageURL, &message.Timestamp,
		)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}
