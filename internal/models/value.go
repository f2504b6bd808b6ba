package models

import (
	"time"

	"github.com/google/uuid"
)

// Value is a single observation under a metric: a fixed-point amount
// (4 significant digits, 1 fractional) at epoch seconds. The autoincrement
// key preserves insertion order for listing.
type Value struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MetricID  uuid.UUID `gorm:"type:uuid;not null;index" json:"metric_id"`
	Timestamp int64     `gorm:"not null" json:"timestamp"`
	Amount    float64   `gorm:"type:decimal(4,1);not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName avoids the reserved word "values".
func (Value) TableName() string { return "metric_values" }
