package service

import (
	"context"
	"errors"

	"social_dashboard/internal/models"
	"social_dashboard/internal/repository"

	"github.com/google/uuid"
)

// ErrMetricNotFound covers both a genuinely missing record and an ownership
// mismatch; the two are deliberately indistinguishable so one user cannot
// probe for another user's record ids.
var ErrMetricNotFound = errors.New("metric not found")

// MetricsService implements owner-scoped metric CRUD. Every successful
// mutation triggers a broadcast to all connected clients, regardless of
// ownership — the fanout layer does no per-user routing.
type MetricsService struct {
	metricRepo repository.Metrics
	broadcast  Broadcaster
}

func NewMetricsService(metricRepo repository.Metrics, broadcast Broadcaster) *MetricsService {
	return &MetricsService{metricRepo: metricRepo, broadcast: broadcast}
}

// List returns only the metrics owned by userID.
func (s *MetricsService) List(ctx context.Context, userID int) ([]models.Metric, error) {
	return s.metricRepo.ListByOwner(ctx, userID)
}

// Create persists a new metric tagged with the authenticated owner and
// broadcasts the full created record.
func (s *MetricsService) Create(ctx context.Context, userID int, input MetricInput) (models.Metric, error) {
	m := models.Metric{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    input.Title,
		Value:    input.Value,
		Category: input.Category,
	}
	if err := s.metricRepo.Create(ctx, m); err != nil {
		return models.Metric{}, err
	}
	s.broadcast.MetricChanged(m)
	return m, nil
}

// UpdateValue mutates only the value, filtered by id and owner, then
// broadcasts the updated record.
func (s *MetricsService) UpdateValue(ctx context.Context, id string, userID int, value string) (models.Metric, error) {
	m, err := s.metricRepo.UpdateValue(ctx, id, userID, value)
	if err != nil {
		return models.Metric{}, err
	}
	if m == nil {
		return models.Metric{}, ErrMetricNotFound
	}
	s.broadcast.MetricChanged(*m)
	return *m, nil
}

// Delete removes the metric, filtered by id and owner, then broadcasts a
// tombstone event.
func (s *MetricsService) Delete(ctx context.Context, id string, userID int) error {
	ok, err := s.metricRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMetricNotFound
	}
	s.broadcast.MetricDeleted(id)
	return nil
}
