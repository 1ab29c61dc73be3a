package ports

import (
	"context"

	"github.com/academicms/portal-api/internal/core/domain"
)

// ActivityRepository persists the auth activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

// ActivityService processes activity events handed off by the dispatcher.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

// ActivitySink accepts events for asynchronous recording. Implemented by the
// queue dispatcher; handlers only ever enqueue.
type ActivitySink interface {
	Enqueue(event domain.ActivityEvent)
}
