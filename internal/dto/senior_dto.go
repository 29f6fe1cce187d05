package dto

import "github.com/mycarebay/carebay-backend/internal/models"

// SaveSeniorRequest carries one senior profile plus whichever dependent
// collections the client chose to submit.
type SaveSeniorRequest struct {
	UserID string         `json:"userId"`
	Senior *SeniorPayload `json:"senior"`
}

// SeniorPayload is the client's view of a senior aggregate. Dependent
// collections are pointers so an omitted key can be told apart from an
// empty list: omitted leaves the stored collection untouched, empty
// clears it.
type SeniorPayload struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Relationship string                `json:"relationship"`
	AvatarURL    string                `json:"avatar_url"`
	Ailments     *[]AilmentPayload     `json:"ailments,omitempty"`
	Medications  *[]MedicationPayload  `json:"medications,omitempty"`
	Appointments *[]AppointmentPayload `json:"appointments,omitempty"`
	Contacts     *[]ContactPayload     `json:"contacts,omitempty"`
}

type AilmentPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

type MedicationPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

type AppointmentPayload struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Doctor   string `json:"doctor"`
	Purpose  string `json:"purpose"`
	Location string `json:"location"`
}

type ContactPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// SeniorAggregate is a senior row with all dependent collections attached.
// Collections are always non-nil in responses.
type SeniorAggregate struct {
	models.Senior
	Ailments     []models.Ailment     `json:"ailments"`
	Medications  []models.Medication  `json:"medications"`
	Appointments []models.Appointment `json:"appointments"`
	Contacts     []models.Contact     `json:"contacts"`
}

type SaveSeniorResponse struct {
	Success  bool   `json:"success"`
	SeniorID string `json:"seniorId"`
	Message  string `json:"message"`
}

type DeleteSeniorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
