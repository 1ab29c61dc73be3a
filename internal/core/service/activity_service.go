package service

import (
	"context"
	"fmt"

	"github.com/academicms/portal-api/internal/api/metrics"
	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
)

const defaultActivityLimit = 50

// ActivityService persists auth activity events handed off by the queue
// dispatcher and serves the admin activity listing.
type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Process stores one event. Called from dispatcher workers only.
func (s *ActivityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if event.Action == "" {
		metrics.ActivityErrorsTotal.WithLabelValues("missing_action").Inc()
		return fmt.Errorf("activity event without action for user %q", event.Username)
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("insert activity event: %w", err)
	}

	metrics.ActivityEventsTotal.WithLabelValues(event.Action).Inc()
	return nil
}

// Recent returns the newest events, newest first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.repo.Recent(ctx, limit)
}
