package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Client - одно websocket-соединение. Вся запись в соединение идет через
// канал send и единственную горутину writePump, у gorilla один writer
type Client struct {
	uid          string
	conn         *websocket.Conn
	send         chan *domain.Envelope
	mu           sync.Mutex
	closed       bool
	writeTimeout time.Duration
	log          logger.Logger
}

func newClient(uid string, conn *websocket.Conn, sendBuffer int, writeTimeout time.Duration, log logger.Logger) *Client {
	return &Client{
		uid:          uid,
		conn:         conn,
		send:         make(chan *domain.Envelope, sendBuffer),
		writeTimeout: writeTimeout,
		log:          log,
	}
}

// writePump сериализует все исходящие кадры соединения. Завершается при
// закрытии канала send или ошибке записи
func (c *Client) writePump() {
	for env := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
		if err := c.conn.WriteJSON(env); err != nil {
			c.log.Debug("Chat write failed", "uid", c.uid, "error", err)
			return
		}
	}
}

// Send не блокируется: при переполненном буфере конверт отбрасывается,
// чтобы один зависший получатель не останавливал рассылку. Мьютекс
// делится с close(): рассылка может гоняться с teardown соединения,
// и запись в закрытый канал недопустима
func (c *Client) Send(env *domain.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- env:
	default:
		c.log.Warn("Chat send buffer full, dropping envelope", "uid", c.uid)
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
