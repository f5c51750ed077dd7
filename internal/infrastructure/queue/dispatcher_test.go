package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
)

type collectingService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func (s *collectingService) Process(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	svc := &collectingService{done: make(chan struct{}), want: 10}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	users := []string{"alice", "bob", "carol"}
	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{
			Username: users[i%len(users)],
			Action:   domain.AuditLoginSuccess,
		})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d", len(svc.events))
	}
}

func TestDispatcher_ShardIsStablePerUser(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for _, user := range []string{"alice", "bob", "carol"} {
		first := d.shardIndex(user)
		for i := 0; i < 5; i++ {
			if got := d.shardIndex(user); got != first {
				t.Fatalf("shard for %q changed: %d vs %d", user, first, got)
			}
		}
	}
}
