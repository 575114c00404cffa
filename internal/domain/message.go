package domain

import "time"

// ChatMessage - сообщение общего чата. Append-only: после записи не
// редактируется и не удаляется. Username снимается в момент отправки и
// не отслеживает последующие переименования
type ChatMessage struct {
	ID        int64     `json:"-"`
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	ImageURL  *string   `json:"imageUrl"`
}

const EnvelopeTypeMessage = "message"

// InboundFrame - входящий кадр от клиента. Кадры с другим type молча
// игнорируются
type InboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Envelope - исходящий кадр. Отправляется и при реплее истории, и при
// рассылке живых сообщений, формат одинаковый
type Envelope struct {
	Type      string  `json:"type"`
	Content   string  `json:"content"`
	SenderID  string  `json:"sender_id"`
	Username  string  `json:"username"`
	Timestamp string  `json:"timestamp"`
	ImageURL  *string `json:"imageUrl"`
}

// NewEnvelope собирает wire-формат из сообщения, timestamp в RFC 3339 (UTC)
func NewEnvelope(m *ChatMessage) *Envelope {
	return &Envelope{
		Type:      EnvelopeTypeMessage,
		Content:   m.Content,
		SenderID:  m.SenderID,
		Username:  m.Username,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		ImageURL:  m.ImageURL,
	}
}
