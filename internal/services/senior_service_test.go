package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Senior{},
		&models.Ailment{},
		&models.Medication{},
		&models.Appointment{},
		&models.Contact{},
		&models.SystemLog{},
		&models.ClientErrorLog{},
		&models.PerformanceLog{},
	))
	return db
}

func collections(ailments []dto.AilmentPayload, medications []dto.MedicationPayload, appointments []dto.AppointmentPayload, contacts []dto.ContactPayload) *dto.SeniorPayload {
	return &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &ailments,
		Medications:  &medications,
		Appointments: &appointments,
		Contacts:     &contacts,
	}
}

func TestSaveCreatesAggregateAndRoundTrips(t *testing.T) {
	db := newTestDB(t)
	service := NewSeniorService(db)
	ownerID := uuid.New()

	payload := collections(
		[]dto.AilmentPayload{
			{Name: "Arthritis", Notes: "Affects hands and knees primarily."},
			{Name: "Hypertension"},
		},
		[]dto.MedicationPayload{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily"},
		},
		[]dto.AppointmentPayload{
			{Date: "2024-08-15", Time: "10:00 AM", Doctor: "Dr. Chen", Purpose: "Cardiology Follow-up", Location: "City Heart Clinic"},
		},
		[]dto.ContactPayload{
			{Name: "Dr. Chen (Cardiologist)", Type: "Doctor", Phone: "555-0101"},
			{Name: "Main Street Pharmacy", Type: "Pharmacist", Phone: "555-0103"},
			{Name: "Sarah (Neighbor)", Type: "Emergency", Phone: "555-0104"},
		},
	)

	result, err := service.Save(ownerID, payload)
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotEqual(t, uuid.Nil, result.SeniorID)

	aggregates, err := service.ListByUser(ownerID)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)

	agg := aggregates[0]
	require.Equal(t, "Eleanor Vance", agg.Name)
	require.Equal(t, "Mother", agg.Relationship)
	require.Equal(t, ownerID, agg.UserID)
	require.Len(t, agg.Ailments, 2)
	require.Len(t, agg.Medications, 1)
	require.Len(t, agg.Appointments, 1)
	require.Len(t, agg.Contacts, 3)

	require.Equal(t, "Lisinopril", agg.Medications[0].Name)
	require.Equal(t, "10mg", agg.Medications[0].Dosage)
	require.Equal(t, "Once daily", agg.Medications[0].Frequency)
	require.Equal(t, "Dr. Chen", agg.Appointments[0].Doctor)

	names := []string{agg.Ailments[0].Name, agg.Ailments[1].Name}
	require.Contains(t, names, "Arthritis")
	require.Contains(t, names, "Hypertension")
	for _, a := range agg.Ailments {
		require.NotEqual(t, uuid.Nil, a.ID)
		require.Equal(t, result.SeniorID, a.SeniorID)
	}
}

func TestSaveValidatesRequiredFields(t *testing.T) {
	service := NewSeniorService(newTestDB(t))

	_, err := service.Save(uuid.New(), &dto.SeniorPayload{Name: "No Relationship"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = service.Save(uuid.New(), &dto.SeniorPayload{Relationship: "Mother"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = service.Save(uuid.New(), nil)
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestSaveTreatsSentinelIDAsCreate(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	payload := &dto.SeniorPayload{
		ID:           "senior-1",
		Name:         "Eleanor Vance",
		Relationship: "Mother",
	}
	result, err := service.Save(ownerID, payload)
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotEqual(t, "senior-1", result.SeniorID.String())
}

func TestSaveDependentIDPolicy(t *testing.T) {
	db := newTestDB(t)
	service := NewSeniorService(db)
	ownerID := uuid.New()

	keptID := uuid.New()
	ailments := []dto.AilmentPayload{
		{ID: keptID.String(), Name: "Arthritis"},
		{ID: "ail-1", Name: "Hypertension"},
		{Name: "Type 2 Diabetes"},
	}
	result, err := service.Save(ownerID, &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &ailments,
	})
	require.NoError(t, err)

	var stored []models.Ailment
	require.NoError(t, db.Where("senior_id = ?", result.SeniorID).Find(&stored).Error)
	require.Len(t, stored, 3)

	byName := make(map[string]models.Ailment)
	for _, a := range stored {
		byName[a.Name] = a
	}
	require.Equal(t, keptID, byName["Arthritis"].ID)
	require.NotEqual(t, uuid.Nil, byName["Hypertension"].ID)
	require.NotEqual(t, uuid.Nil, byName["Type 2 Diabetes"].ID)
}

func TestSaveEmptyCollectionClearsOnlyThatType(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	payload := collections(
		[]dto.AilmentPayload{{Name: "Arthritis"}, {Name: "Hypertension"}},
		[]dto.MedicationPayload{{Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily"}},
		[]dto.AppointmentPayload{{Date: "2024-08-15", Doctor: "Dr. Chen"}},
		[]dto.ContactPayload{{Name: "Sarah (Neighbor)", Type: "Emergency", Phone: "555-0104"}},
	)
	result, err := service.Save(ownerID, payload)
	require.NoError(t, err)

	// Resave with an empty ailment list; medications, appointments and
	// contacts are omitted entirely.
	empty := []dto.AilmentPayload{}
	update := &dto.SeniorPayload{
		ID:           result.SeniorID.String(),
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &empty,
	}
	updateResult, err := service.Save(ownerID, update)
	require.NoError(t, err)
	require.False(t, updateResult.Created)
	require.Equal(t, result.SeniorID, updateResult.SeniorID)

	agg, err := service.Get(result.SeniorID)
	require.NoError(t, err)
	require.Empty(t, agg.Ailments)
	require.Len(t, agg.Medications, 1)
	require.Len(t, agg.Appointments, 1)
	require.Len(t, agg.Contacts, 1)
}

func TestSaveSubmittedCollectionReplacesNotMerges(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	first := []dto.AilmentPayload{{Name: "Arthritis"}, {Name: "Hypertension"}}
	result, err := service.Save(ownerID, &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &first,
	})
	require.NoError(t, err)

	second := []dto.AilmentPayload{{Name: "Type 2 Diabetes"}}
	_, err = service.Save(ownerID, &dto.SeniorPayload{
		ID:           result.SeniorID.String(),
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &second,
	})
	require.NoError(t, err)

	agg, err := service.Get(result.SeniorID)
	require.NoError(t, err)
	require.Len(t, agg.Ailments, 1)
	require.Equal(t, "Type 2 Diabetes", agg.Ailments[0].Name)
}

func TestSaveUpdateScopedToOwner(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	result, err := service.Save(ownerID, &dto.SeniorPayload{Name: "Eleanor Vance", Relationship: "Mother"})
	require.NoError(t, err)

	_, err = service.Save(uuid.New(), &dto.SeniorPayload{
		ID:           result.SeniorID.String(),
		Name:         "Hijacked",
		Relationship: "Stranger",
	})
	require.ErrorIs(t, err, ErrSeniorNotFound)

	agg, err := service.Get(result.SeniorID)
	require.NoError(t, err)
	require.Equal(t, "Eleanor Vance", agg.Name)
}

func TestSaveUpdateChangesParentFields(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	result, err := service.Save(ownerID, &dto.SeniorPayload{Name: "Eleanor Vance", Relationship: "Mother"})
	require.NoError(t, err)

	_, err = service.Save(ownerID, &dto.SeniorPayload{
		ID:           result.SeniorID.String(),
		Name:         "Eleanor V. Vance",
		Relationship: "Grandmother",
		AvatarURL:    "https://example.com/a.png",
	})
	require.NoError(t, err)

	agg, err := service.Get(result.SeniorID)
	require.NoError(t, err)
	require.Equal(t, "Eleanor V. Vance", agg.Name)
	require.Equal(t, "Grandmother", agg.Relationship)
	require.Equal(t, "https://example.com/a.png", agg.AvatarURL)
}

func TestListByUserPartitionsDependents(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	seniorNames := []string{"Eleanor Vance", "Arthur Pendelton", "Margaret Wu"}
	idsByName := make(map[string]uuid.UUID)
	for i, name := range seniorNames {
		ailments := []dto.AilmentPayload{{Name: name + " condition"}}
		contacts := make([]dto.ContactPayload, i+1)
		for j := range contacts {
			contacts[j] = dto.ContactPayload{Name: name + " contact", Phone: "555-0100"}
		}
		result, err := service.Save(ownerID, &dto.SeniorPayload{
			Name:         name,
			Relationship: "Parent",
			Ailments:     &ailments,
			Contacts:     &contacts,
		})
		require.NoError(t, err)
		idsByName[name] = result.SeniorID
	}

	aggregates, err := service.ListByUser(ownerID)
	require.NoError(t, err)
	require.Len(t, aggregates, 3)

	for _, agg := range aggregates {
		require.Len(t, agg.Ailments, 1)
		require.Equal(t, agg.Name+" condition", agg.Ailments[0].Name)
		for _, c := range agg.Contacts {
			require.Equal(t, agg.Name+" contact", c.Name)
			require.Equal(t, agg.ID, c.SeniorID)
		}
	}
}

func TestListByUserEmptyReturnsEmptySlice(t *testing.T) {
	service := NewSeniorService(newTestDB(t))

	aggregates, err := service.ListByUser(uuid.New())
	require.NoError(t, err)
	require.NotNil(t, aggregates)
	require.Empty(t, aggregates)
}

func TestGetMissingSenior(t *testing.T) {
	service := NewSeniorService(newTestDB(t))

	_, err := service.Get(uuid.New())
	require.ErrorIs(t, err, ErrSeniorNotFound)
}

func TestDeleteRemovesAggregate(t *testing.T) {
	db := newTestDB(t)
	service := NewSeniorService(db)
	ownerID := uuid.New()

	ailments := []dto.AilmentPayload{{Name: "Arthritis"}}
	contacts := []dto.ContactPayload{{Name: "Sarah", Phone: "555-0104"}}
	result, err := service.Save(ownerID, &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &ailments,
		Contacts:     &contacts,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(result.SeniorID, ownerID))

	_, err = service.Get(result.SeniorID)
	require.ErrorIs(t, err, ErrSeniorNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Ailment{}).Where("senior_id = ?", result.SeniorID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Contact{}).Where("senior_id = ?", result.SeniorID).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	service := NewSeniorService(newTestDB(t))
	ownerID := uuid.New()

	ailments := []dto.AilmentPayload{{Name: "Arthritis"}}
	result, err := service.Save(ownerID, &dto.SeniorPayload{
		Name:         "Eleanor Vance",
		Relationship: "Mother",
		Ailments:     &ailments,
	})
	require.NoError(t, err)

	err = service.Delete(result.SeniorID, uuid.New())
	require.ErrorIs(t, err, ErrSeniorNotFound)

	agg, err := service.Get(result.SeniorID)
	require.NoError(t, err)
	require.Equal(t, "Eleanor Vance", agg.Name)
	require.Len(t, agg.Ailments, 1)
}

func TestDeleteMissingSenior(t *testing.T) {
	service := NewSeniorService(newTestDB(t))

	err := service.Delete(uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrSeniorNotFound)
}
