package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/academicms/portal-api/internal/core/domain"
)

type recordingService struct {
	events chan domain.ActivityEvent
}

func (s *recordingService) Process(_ context.Context, event domain.ActivityEvent) error {
	s.events <- event
	return nil
}

func (s *recordingService) Recent(_ context.Context, _ int) ([]domain.ActivityEvent, error) {
	return nil, nil
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	svc := &recordingService{events: make(chan domain.ActivityEvent, 8)}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.ActivityEvent{Username: "alice", Action: domain.ActionLogin})
	d.Enqueue(domain.ActivityEvent{Username: "alice", Action: domain.ActionLogout})

	want := []string{domain.ActionLogin, domain.ActionLogout}
	for i, action := range want {
		select {
		case got := <-svc.events:
			if got.Action != action {
				t.Fatalf("event %d: expected %s, got %s", i, action, got.Action)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingService{events: make(chan domain.ActivityEvent, 1)}, zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingService{events: make(chan domain.ActivityEvent, 1)}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
