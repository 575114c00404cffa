package chat

import (
	"sync"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Registry - реестр активных соединений чата, не больше одного на UID.
// Повторное подключение того же пользователя молча вытесняет предыдущее
// соединение, старой сессии никакого сигнала не шлем
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		log:     log,
	}
}

func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	if old, ok := r.clients[c.uid]; ok && old != c {
		r.log.Info("Replacing existing chat connection", "uid", c.uid)
	}
	r.clients[c.uid] = c
	total := len(r.clients)
	r.mu.Unlock()

	r.log.Info("Chat client registered", "uid", c.uid, "total", total)
}

// Unregister удаляет запись только если она все еще указывает на это
// соединение: teardown вытесненной сессии не должен снять ее преемника
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	if current, ok := r.clients[c.uid]; ok && current == c {
		delete(r.clients, c.uid)
	}
	total := len(r.clients)
	r.mu.Unlock()

	r.log.Info("Chat client unregistered", "uid", c.uid, "total", total)
}

// Broadcast шлет конверт всем зарегистрированным, включая отправителя.
// Снимок получателей берется на входе; подключившиеся после снимка
// конверт не получат. Медленный получатель не тормозит остальных
func (r *Registry) Broadcast(env *domain.Envelope) {
	r.mu.RLock()
	recipients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		recipients = append(recipients, c)
	}
	r.mu.RUnlock()

	for _, c := range recipients {
		c.Send(env)
	}
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
