package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan tiers. The plan caps how many senior profiles the client UI offers;
// the store does not enforce the cap.
const (
	PlanFree = "free"
	PlanPlus = "plus"
	PlanPro  = "pro"
)

// User is a caregiver account. Resolved by email on login and immutable
// afterwards except for plan changes.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Plan      string    `gorm:"size:20;not null;default:'free'" json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}
