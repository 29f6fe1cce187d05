package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrSeniorNotFound covers both a missing senior and an ownership
	// mismatch. Callers are deliberately unable to tell them apart.
	ErrSeniorNotFound = errors.New("senior not found or access denied")
	ErrMissingFields  = errors.New("senior name and relationship are required")
)

// SeniorService is the single save/fetch/delete path for senior aggregates.
type SeniorService struct {
	db *gorm.DB
}

func NewSeniorService(db *gorm.DB) *SeniorService {
	return &SeniorService{db: db}
}

// recordID keeps a client-submitted id when it is a well-formed UUID and
// generates a fresh one otherwise. Client-side sentinels like "senior-1"
// therefore never reach the store.
func recordID(raw string) uuid.UUID {
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return uuid.New()
}

type SaveResult struct {
	SeniorID uuid.UUID
	Created  bool
}

// Save upserts a senior and replaces whichever dependent collections the
// payload submits. A submitted collection is replaced wholesale, even when
// empty; an omitted collection is left untouched. The whole write runs in
// one transaction so a failed dependent insert cannot strand a half-saved
// aggregate.
func (s *SeniorService) Save(ownerID uuid.UUID, payload *dto.SeniorPayload) (*SaveResult, error) {
	if payload == nil || payload.Name == "" || payload.Relationship == "" {
		return nil, ErrMissingFields
	}

	seniorID, parseErr := uuid.Parse(payload.ID)
	isUpdate := payload.ID != "" && parseErr == nil
	if !isUpdate {
		seniorID = uuid.New()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if isUpdate {
			// Updates are scoped to the owner. An id that exists under a
			// different owner reads the same as a missing one.
			result := tx.Model(&models.Senior{}).
				Where("id = ? AND user_id = ?", seniorID, ownerID).
				Updates(map[string]interface{}{
					"name":         payload.Name,
					"relationship": payload.Relationship,
					"avatar_url":   payload.AvatarURL,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update senior: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrSeniorNotFound
			}
		} else {
			senior := models.Senior{
				ID:           seniorID,
				UserID:       ownerID,
				Name:         payload.Name,
				Relationship: payload.Relationship,
				AvatarURL:    payload.AvatarURL,
			}
			if err := tx.Create(&senior).Error; err != nil {
				return fmt.Errorf("failed to create senior: %w", err)
			}
		}

		if payload.Ailments != nil {
			if err := replaceCollection(tx, seniorID, &models.Ailment{}, buildAilments(seniorID, *payload.Ailments)); err != nil {
				return err
			}
		}
		if payload.Medications != nil {
			if err := replaceCollection(tx, seniorID, &models.Medication{}, buildMedications(seniorID, *payload.Medications)); err != nil {
				return err
			}
		}
		if payload.Appointments != nil {
			if err := replaceCollection(tx, seniorID, &models.Appointment{}, buildAppointments(seniorID, *payload.Appointments)); err != nil {
				return err
			}
		}
		if payload.Contacts != nil {
			if err := replaceCollection(tx, seniorID, &models.Contact{}, buildContacts(seniorID, *payload.Contacts)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SaveResult{SeniorID: seniorID, Created: !isUpdate}, nil
}

// replaceCollection implements full-replace semantics for one dependent
// type: old rows gone before new rows appear.
func replaceCollection(tx *gorm.DB, seniorID uuid.UUID, model interface{}, rows interface{}) error {
	if err := tx.Where("senior_id = ?", seniorID).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to clear related data: %w", err)
	}
	if rows != nil {
		if err := tx.Create(rows).Error; err != nil {
			return fmt.Errorf("failed to save related data: %w", err)
		}
	}
	return nil
}

func buildAilments(seniorID uuid.UUID, in []dto.AilmentPayload) interface{} {
	if len(in) == 0 {
		return nil
	}
	rows := make([]models.Ailment, len(in))
	for i, a := range in {
		rows[i] = models.Ailment{ID: recordID(a.ID), SeniorID: seniorID, Name: a.Name, Notes: a.Notes}
	}
	return rows
}

func buildMedications(seniorID uuid.UUID, in []dto.MedicationPayload) interface{} {
	if len(in) == 0 {
		return nil
	}
	rows := make([]models.Medication, len(in))
	for i, m := range in {
		rows[i] = models.Medication{ID: recordID(m.ID), SeniorID: seniorID, Name: m.Name, Dosage: m.Dosage, Frequency: m.Frequency}
	}
	return rows
}

func buildAppointments(seniorID uuid.UUID, in []dto.AppointmentPayload) interface{} {
	if len(in) == 0 {
		return nil
	}
	rows := make([]models.Appointment, len(in))
	for i, a := range in {
		rows[i] = models.Appointment{ID: recordID(a.ID), SeniorID: seniorID, Date: a.Date, Time: a.Time, Doctor: a.Doctor, Purpose: a.Purpose, Location: a.Location}
	}
	return rows
}

func buildContacts(seniorID uuid.UUID, in []dto.ContactPayload) interface{} {
	if len(in) == 0 {
		return nil
	}
	rows := make([]models.Contact, len(in))
	for i, c := range in {
		contactType := c.Type
		if contactType == "" {
			contactType = models.ContactOther
		}
		rows[i] = models.Contact{ID: recordID(c.ID), SeniorID: seniorID, Name: c.Name, Type: contactType, Phone: c.Phone, Email: c.Email}
	}
	return rows
}

// ListByUser fetches every senior owned by a user with dependents attached.
// Dependents are loaded with one batched query per type and regrouped by
// senior id, never one round-trip per senior.
func (s *SeniorService) ListByUser(ownerID uuid.UUID) ([]dto.SeniorAggregate, error) {
	var seniors []models.Senior
	if err := s.db.Where("user_id = ?", ownerID).Find(&seniors).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch seniors: %w", err)
	}
	if len(seniors) == 0 {
		return []dto.SeniorAggregate{}, nil
	}

	ids := make([]uuid.UUID, len(seniors))
	for i, sen := range seniors {
		ids[i] = sen.ID
	}
	return s.attachDependents(seniors, ids)
}

// Get fetches a single senior aggregate by id.
func (s *SeniorService) Get(seniorID uuid.UUID) (*dto.SeniorAggregate, error) {
	var senior models.Senior
	if err := s.db.First(&senior, "id = ?", seniorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeniorNotFound
		}
		return nil, fmt.Errorf("failed to fetch senior: %w", err)
	}

	aggregates, err := s.attachDependents([]models.Senior{senior}, []uuid.UUID{senior.ID})
	if err != nil {
		return nil, err
	}
	return &aggregates[0], nil
}

func (s *SeniorService) attachDependents(seniors []models.Senior, ids []uuid.UUID) ([]dto.SeniorAggregate, error) {
	var ailments []models.Ailment
	if err := s.db.Where("senior_id IN ?", ids).Find(&ailments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ailments: %w", err)
	}
	var medications []models.Medication
	if err := s.db.Where("senior_id IN ?", ids).Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch medications: %w", err)
	}
	var appointments []models.Appointment
	if err := s.db.Where("senior_id IN ?", ids).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	var contacts []models.Contact
	if err := s.db.Where("senior_id IN ?", ids).Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	ailmentsBySenior := make(map[uuid.UUID][]models.Ailment)
	for _, a := range ailments {
		ailmentsBySenior[a.SeniorID] = append(ailmentsBySenior[a.SeniorID], a)
	}
	medicationsBySenior := make(map[uuid.UUID][]models.Medication)
	for _, m := range medications {
		medicationsBySenior[m.SeniorID] = append(medicationsBySenior[m.SeniorID], m)
	}
	appointmentsBySenior := make(map[uuid.UUID][]models.Appointment)
	for _, a := range appointments {
		appointmentsBySenior[a.SeniorID] = append(appointmentsBySenior[a.SeniorID], a)
	}
	contactsBySenior := make(map[uuid.UUID][]models.Contact)
	for _, c := range contacts {
		contactsBySenior[c.SeniorID] = append(contactsBySenior[c.SeniorID], c)
	}

	aggregates := make([]dto.SeniorAggregate, len(seniors))
	for i, sen := range seniors {
		agg := dto.SeniorAggregate{
			Senior:       sen,
			Ailments:     ailmentsBySenior[sen.ID],
			Medications:  medicationsBySenior[sen.ID],
			Appointments: appointmentsBySenior[sen.ID],
			Contacts:     contactsBySenior[sen.ID],
		}
		if agg.Ailments == nil {
			agg.Ailments = []models.Ailment{}
		}
		if agg.Medications == nil {
			agg.Medications = []models.Medication{}
		}
		if agg.Appointments == nil {
			agg.Appointments = []models.Appointment{}
		}
		if agg.Contacts == nil {
			agg.Contacts = []models.Contact{}
		}
		aggregates[i] = agg
	}
	return aggregates, nil
}

// Delete removes a senior and every dependent row. The ownership check runs
// first; the five deletes share one transaction.
func (s *SeniorService) Delete(seniorID, ownerID uuid.UUID) error {
	var senior models.Senior
	err := s.db.Where("id = ? AND user_id = ?", seniorID, ownerID).First(&senior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeniorNotFound
		}
		return fmt.Errorf("failed to fetch senior: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Ailment{},
			&models.Medication{},
			&models.Appointment{},
			&models.Contact{},
		} {
			if err := tx.Where("senior_id = ?", seniorID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete related data: %w", err)
			}
		}
		if err := tx.Delete(&models.Senior{}, "id = ?", seniorID).Error; err != nil {
			return fmt.Errorf("failed to delete senior: %w", err)
		}
		return nil
	})
}
