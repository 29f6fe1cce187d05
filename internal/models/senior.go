package models

import (
	"time"

	"github.com/google/uuid"
)

// Senior is one tracked profile owned by a caregiver. Its four dependent
// collections live and die with it: saving a collection replaces it
// wholesale, deleting the senior removes every dependent row.
type Senior struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Relationship string    `gorm:"size:100;not null" json:"relationship"`
	AvatarURL    string    `gorm:"size:512" json:"avatar_url"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Ailment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeniorID uuid.UUID `gorm:"type:uuid;not null;index" json:"senior_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`
}

type Medication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeniorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"senior_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Dosage    string    `gorm:"size:100" json:"dosage"`
	Frequency string    `gorm:"size:100" json:"frequency"`
}

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeniorID uuid.UUID `gorm:"type:uuid;not null;index" json:"senior_id"`
	Date     string    `gorm:"size:20" json:"date"`
	Time     string    `gorm:"size:20" json:"time"`
	Doctor   string    `gorm:"size:255" json:"doctor"`
	Purpose  string    `gorm:"size:255" json:"purpose"`
	Location string    `gorm:"size:255" json:"location"`
}

// Contact types recognized by the client. Free-form values are stored as-is.
const (
	ContactDoctor     = "Doctor"
	ContactSpecialist = "Specialist"
	ContactEmergency  = "Emergency"
	ContactPharmacist = "Pharmacist"
	ContactOther      = "Other"
)

type Contact struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeniorID uuid.UUID `gorm:"type:uuid;not null;index" json:"senior_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Type     string    `gorm:"size:50;not null;default:'Other'" json:"type"`
	Phone    string    `gorm:"size:50" json:"phone"`
	Email    string    `gorm:"size:255" json:"email,omitempty"`
}
