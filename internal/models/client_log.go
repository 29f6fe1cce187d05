package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientErrorLog is a browser-reported error, ingested in batches via the
// telemetry endpoint.
type ClientErrorLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	Stack          string    `gorm:"type:text" json:"stack,omitempty"`
	ComponentStack string    `gorm:"type:text" json:"component_stack,omitempty"`
	Timestamp      time.Time `gorm:"not null;index" json:"timestamp"`
	UserAgent      string    `gorm:"size:512" json:"user_agent"`
	URL            string    `gorm:"size:512" json:"url"`
	UserID         *string   `gorm:"size:36" json:"user_id"`
	ErrorType      string    `gorm:"size:20;index" json:"error_type"`
	Severity       string    `gorm:"size:20;index" json:"severity"`
	CreatedAt      time.Time `json:"created_at"`
}

// PerformanceLog is a browser-reported performance metric sample.
type PerformanceLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Metric    string    `gorm:"size:100;not null;index" json:"metric"`
	Value     float64   `gorm:"not null" json:"value"`
	URL       string    `gorm:"size:512" json:"url"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
