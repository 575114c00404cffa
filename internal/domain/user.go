package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUsername - плейсхолдер до завершения профиля
const DefaultUsername = "Anonymous"

// PlaceholderImageURL - заглушка фронтенда, не сохраняем её как аватар
const PlaceholderImageURL = "https://via.placeholder.com/300x200?text=Click+to+Upload+Image"

type SocialLinks struct {
	Spotify    string `json:"spotify"`
	Letterboxd string `json:"letterboxd"`
	Discord    string `json:"discord"`
	Instagram  string `json:"instagram"`
	Twitter    string `json:"twitter"`
	Website    string `json:"website"`
}

type YapTopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// User - документ пользователя. UID выдается внешним Auth-провайдером
// и неизменен после создания. Уникальность username проверяется на записи
// (check-then-act, см. UserService)
type User struct {
	UID                string              `json:"uid,omitempty"`
	Email              string              `json:"email"`
	Username           string              `json:"username,omitempty"`
	AboutYou           string              `json:"aboutyou,omitempty"`
	Likes              []string            `json:"likes,omitempty"`
	ImageURL           *string             `json:"imageUrl,omitempty"`
	Mood               string              `json:"mood,omitempty"`
	Status             string              `json:"status,omitempty"`
	SocialLinks        *SocialLinks        `json:"socialLinks,omitempty"`
	Age                string              `json:"age,omitempty"`
	Title              string              `json:"title,omitempty"`
	Location           string              `json:"location,omitempty"`
	YapTopics          map[string]YapTopic `json:"yapTopics,omitempty"`
	ProfileComplete    bool                `json:"profile_complete"`
	LikedPosts         []uuid.UUID         `json:"-"`
	SavedPosts         []uuid.UUID         `json:"-"`
	LikedUpdates       []uuid.UUID         `json:"-"`
	SavedUpdates       []uuid.UUID         `json:"-"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
	ProfileCompletedAt *time.Time          `json:"profileCompletedAt,omitempty"`
}

// DisplayName возвращает имя для ленты и чата
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return DefaultUsername
}

// Колонки ссылок на лайкнутые/сохраненные записи в документе пользователя
const (
	RefLikedPosts   = "liked_posts"
	RefSavedPosts   = "saved_posts"
	RefLikedUpdates = "liked_updates"
	RefSavedUpdates = "saved_updates"
)
