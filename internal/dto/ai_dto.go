package dto

// SeniorProfileContext is the condensed profile the client sends alongside
// AI requests. Collections are flattened to display strings.
type SeniorProfileContext struct {
	Name        string   `json:"name"`
	Ailments    []string `json:"ailments,omitempty"`
	Medications []string `json:"medications,omitempty"`
}

type CareAdviceRequest struct {
	SeniorProfile *SeniorProfileContext `json:"seniorProfile"`
	Question      string                `json:"question"`
}

type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type CareAdviceResponse struct {
	Advice  string            `json:"advice"`
	Sources []GroundingSource `json:"sources"`
}

type FacilityChecklistRequest struct {
	Topic         string                `json:"topic,omitempty"`
	SeniorProfile *SeniorProfileContext `json:"seniorProfile,omitempty"`
}

type ChecklistCategory struct {
	Category  string   `json:"category"`
	Questions []string `json:"questions"`
}

type FacilityChecklistResponse struct {
	Checklist []ChecklistCategory `json:"checklist"`
}

type AilmentEducationRequest struct {
	Ailment string `json:"ailment"`
}

type AilmentEducationResponse struct {
	Education string `json:"education"`
}
