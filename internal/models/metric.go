package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric is a named series of values owned by exactly one user. Names are
// free text and not unique, even within one account.
type Metric struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Values    []Value   `gorm:"foreignKey:MetricID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
