package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/dto"
)

// DemoProvisioner writes the sample aggregate a fresh demo account starts
// with. It goes through the regular save path so the sample data obeys the
// same rules as user-entered data.
type DemoProvisioner struct {
	seniors *SeniorService
}

func NewDemoProvisioner(seniors *SeniorService) *DemoProvisioner {
	return &DemoProvisioner{seniors: seniors}
}

func (p *DemoProvisioner) Provision(userID uuid.UUID) error {
	payload := demoSeniorPayload()
	if _, err := p.seniors.Save(userID, payload); err != nil {
		return fmt.Errorf("failed to seed demo senior: %w", err)
	}
	return nil
}

func demoSeniorPayload() *dto.SeniorPayload {
	ailments := []dto.AilmentPayload{
		{Name: "Arthritis", Notes: "Affects hands and knees primarily."},
		{Name: "Hypertension", Notes: "Monitored daily."},
		{Name: "Type 2 Diabetes", Notes: "Managed with diet and medication."},
	}
	medications := []dto.MedicationPayload{
		{Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily"},
		{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily"},
		{Name: "Ibuprofen", Dosage: "200mg", Frequency: "As needed for pain"},
	}
	appointments := []dto.AppointmentPayload{
		{Date: "2024-08-15", Time: "10:00 AM", Doctor: "Dr. Chen", Purpose: "Cardiology Follow-up", Location: "City Heart Clinic"},
		{Date: "2024-09-02", Time: "02:30 PM", Doctor: "Dr. Patel", Purpose: "Endocrinology Check-up", Location: "General Hospital"},
	}
	contacts := []dto.ContactPayload{
		{Name: "Dr. Chen (Cardiologist)", Type: "Doctor", Phone: "555-0101"},
		{Name: "Dr. Patel (Endocrinologist)", Type: "Doctor", Phone: "555-0102"},
		{Name: "Main Street Pharmacy", Type: "Pharmacist", Phone: "555-0103"},
		{Name: "Sarah (Neighbor)", Type: "Emergency", Phone: "555-0104"},
	}

	return &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &ailments,
		Medications:  &medications,
		Appointments: &appointments,
		Contacts:     &contacts,
	}
}
