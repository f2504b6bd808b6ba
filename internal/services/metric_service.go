package services

import (
	"errors"
	"fmt"

	"github.com/emrekzl/trackly-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMetricNotFound is returned both when a metric does not exist and when
// it belongs to another user, so callers cannot probe for foreign ids.
var ErrMetricNotFound = errors.New("metric not found")

type MetricService struct {
	db *gorm.DB
}

func NewMetricService(db *gorm.DB) *MetricService {
	return &MetricService{db: db}
}

func (s *MetricService) CreateMetric(user *models.User, name string) (*models.Metric, error) {
	metric := models.Metric{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   name,
	}
	if err := s.db.Create(&metric).Error; err != nil {
		return nil, fmt.Errorf("failed to create metric: %w", err)
	}
	return &metric, nil
}

func (s *MetricService) ListMetrics(user *models.User) ([]models.Metric, error) {
	var metrics []models.Metric
	if err := s.db.Where("user_id = ?", user.ID).Order("created_at").Find(&metrics).Error; err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	return metrics, nil
}

// GetMetric looks up a metric by id scoped to its owner. Existence and
// ownership are one combined check.
func (s *MetricService) GetMetric(user *models.User, metricID uuid.UUID) (*models.Metric, error) {
	var metric models.Metric
	err := s.db.Where("id = ? AND user_id = ?", metricID, user.ID).First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricNotFound
		}
		return nil, fmt.Errorf("failed to load metric: %w", err)
	}
	return &metric, nil
}

// DeleteMetric removes a metric and all of its values.
func (s *MetricService) DeleteMetric(user *models.User, metricID uuid.UUID) error {
	metric, err := s.GetMetric(user, metricID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("metric_id = ?", metric.ID).Delete(&models.Value{}).Error; err != nil {
			return err
		}
		return tx.Delete(metric).Error
	})
}

// AddValues persists a batch of already-normalized values under the metric
// as a single unit: either every entry lands or none do.
func (s *MetricService) AddValues(metric *models.Metric, entries []models.Value) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].MetricID = metric.ID
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
}

// ListValues returns the metric's values in insertion order.
func (s *MetricService) ListValues(metric *models.Metric) ([]models.Value, error) {
	var values []models.Value
	if err := s.db.Where("metric_id = ?", metric.ID).Order("id").Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	return values, nil
}
