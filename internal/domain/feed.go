package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment - встроенный под-документ записи, append-only
type Comment struct {
	CommentID string    `json:"comment_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Post - запись ленты (posts и updates имеют одинаковую форму).
// Likes/Saves - встроенные множества UID, Comments - встроенный список
type Post struct {
	ID        uuid.UUID `json:"_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	Likes     []string  `json:"likes"`
	Saves     []string  `json:"saves"`
	Comments  []Comment `json:"comments"`

	// Поля выдачи, заполняются под конкретного зрителя
	Liked        bool `json:"liked"`
	Saved        bool `json:"saved"`
	LikeCount    int  `json:"like_count"`
	SaveCount    int  `json:"save_count"`
	CommentCount int  `json:"comment_count"`
}

// Decorate заполняет счетчики и флаги liked/saved для зрителя
func (p *Post) Decorate(viewerUID string) {
	p.Liked = containsUID(p.Likes, viewerUID)
	p.Saved = containsUID(p.Saves, viewerUID)
	p.LikeCount = len(p.Likes)
	p.SaveCount = len(p.Saves)
	p.CommentCount = len(p.Comments)
}

func containsUID(set []string, uid string) bool {
	for _, s := range set {
		if s == uid {
			return true
		}
	}
	return false
}

// Поля встроенных множеств записи
const (
	SetLikes = "likes"
	SetSaves = "saves"
)
