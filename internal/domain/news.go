package domain

import (
	"time"

	"github.com/google/uuid"
)

// News - новость, вносится вручную
type News struct {
	ID      uuid.UUID `json:"_id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	URL     string    `json:"url"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}
