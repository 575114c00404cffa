package chat

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ShreyaKadian/InternetButFun/internal/domain"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

func testClient(uid string, buffer int) *Client {
	return newClient(uid, nil, buffer, time.Second, logger.New("error"))
}

func drain(c *Client) []*domain.Envelope {
	var got []*domain.Envelope
	for {
		select {
		case env := <-c.send:
			got = append(got, env)
		default:
			return got
		}
	}
}

func TestRegistry_RegisterAndCount(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	registry.Register(testClient("uid-1", 16))
	registry.Register(testClient("uid-2", 16))
	req.Equal(2, registry.Count())
}

func TestRegistry_BroadcastReachesAllIncludingSender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	sender := testClient("uid-1", 16)
	other := testClient("uid-2", 16)
	registry.Register(sender)
	registry.Register(other)

	registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi", SenderID: "uid-1"})

	req.Len(drain(sender), 1)
	req.Len(drain(other), 1)
}

func TestRegistry_ReconnectReplacesSilently(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	first := testClient("uid-1", 16)
	second := testClient("uid-1", 16)
	registry.Register(first)
	registry.Register(second)

	req.Equal(1, registry.Count())

	registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi"})

	// Конверт получает только новое соединение
	req.Empty(drain(first))
	req.Len(drain(second), 1)
}

func TestRegistry_UnregisterOnlyRemovesOwnEntry(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	first := testClient("uid-1", 16)
	second := testClient("uid-1", 16)
	registry.Register(first)
	registry.Register(second)

	// Teardown вытесненной сессии не должен снять её преемника
	registry.Unregister(first)
	req.Equal(1, registry.Count())

	registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi"})
	req.Len(drain(second), 1)

	registry.Unregister(second)
	req.Equal(0, registry.Count())
}

func TestRegistry_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	slow := testClient("uid-1", 1)
	healthy := testClient("uid-2", 16)
	registry.Register(slow)
	registry.Register(healthy)

	// Переполняем буфер медленного клиента; рассылка не должна зависнуть
	for i := 0; i < 5; i++ {
		registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: fmt.Sprintf("msg-%d", i)})
	}

	req.Len(drain(slow), 1)
	req.Len(drain(healthy), 5)
}

func TestClient_SendAfterCloseIsSafe(t *testing.T) {
	req := require.New(t)
	c := testClient("uid-1", 16)
	c.close()

	// Рассылка могла снять снимок получателей до teardown этого клиента
	req.NotPanics(func() {
		c.Send(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi"})
	})

	// Повторный close тоже no-op
	req.NotPanics(c.close)
}

func TestRegistry_BroadcastToleratesConcurrentClientClose(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi"})
		}
	}()

	// Клиенты непрерывно уходят во время рассылки; падение одного
	// соединения не должно ронять чужую рассылку
	req.NotPanics(func() {
		for i := 0; i < 500; i++ {
			c := testClient(fmt.Sprintf("uid-%d", i%4), 1)
			registry.Register(c)
			registry.Unregister(c)
			c.close()
		}
	})
	<-done

	req.Equal(0, registry.Count())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logger.New("error"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := testClient(fmt.Sprintf("uid-%d", n), 64)
			registry.Register(c)
			registry.Broadcast(&domain.Envelope{Type: domain.EnvelopeTypeMessage, Content: "hi"})
			registry.Unregister(c)
		}(i)
	}
	wg.Wait()

	req.Equal(0, registry.Count())
}
