package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type countingProvisioner struct {
	calls int
	err   error
}

func (p *countingProvisioner) Provision(uuid.UUID) error {
	p.calls++
	return p.err
}

func TestResolveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, "demo@mycarebay.com", nil)

	first, err := service.Resolve("jane@example.com", "Jane", "")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", first.Email)
	require.Equal(t, models.PlanFree, first.Plan)

	second, err := service.Resolve("jane@example.com", "Somebody Else", models.PlanPro)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Jane", second.Name)
	require.Equal(t, models.PlanFree, second.Plan)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestResolveNormalizesEmail(t *testing.T) {
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", nil)

	first, err := service.Resolve("  Jane@Example.COM ", "Jane", "")
	require.NoError(t, err)

	second, err := service.Resolve("jane@example.com", "Jane", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestResolveRequiresEmailAndName(t *testing.T) {
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", nil)

	_, err := service.Resolve("", "Jane", "")
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = service.Resolve("jane@example.com", "", "")
	require.ErrorIs(t, err, ErrEmailRequired)
}

// openSharedTestDB opens a connection to a named shared-cache in-memory
// database so two independent connections can see each other's commits.
func openSharedTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestResolveRecoversFromDuplicateEmailRace(t *testing.T) {
	dsn := "file:userrace?mode=memory&cache=shared"
	db := openSharedTestDB(t, dsn)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	rival := openSharedTestDB(t, dsn)

	// Two logins racing on one email: just before Resolve's insert runs,
	// the rival connection commits the same email, so the insert hits the
	// unique index and Resolve falls back to the re-lookup.
	winner := models.User{ID: uuid.New(), Email: "race@example.com", Name: "Winner", Plan: models.PlanFree}
	injected := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:rival_insert", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.User); !ok {
			return
		}
		injected = true
		if err := rival.Create(&winner).Error; err != nil {
			tx.AddError(err)
		}
	}))

	service := NewUserService(db, "demo@mycarebay.com", nil)
	resolved, err := service.Resolve("race@example.com", "Loser", models.PlanPro)
	require.NoError(t, err)
	require.True(t, injected)
	require.Equal(t, winner.ID, resolved.ID)
	require.Equal(t, "Winner", resolved.Name)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestResolveKeepsSubmittedPlanOnCreate(t *testing.T) {
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", nil)

	user, err := service.Resolve("pro@example.com", "Pat", models.PlanPro)
	require.NoError(t, err)
	require.Equal(t, models.PlanPro, user.Plan)
}

func TestResolveProvisionsDemoAccountOnce(t *testing.T) {
	provisioner := &countingProvisioner{}
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", provisioner)

	_, err := service.Resolve("demo@mycarebay.com", "Demo User", models.PlanPro)
	require.NoError(t, err)
	require.Equal(t, 1, provisioner.calls)

	_, err = service.Resolve("demo@mycarebay.com", "Demo User", models.PlanPro)
	require.NoError(t, err)
	require.Equal(t, 1, provisioner.calls)
}

func TestResolveSkipsProvisioningForOtherEmails(t *testing.T) {
	provisioner := &countingProvisioner{}
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", provisioner)

	_, err := service.Resolve("jane@example.com", "Jane", "")
	require.NoError(t, err)
	require.Zero(t, provisioner.calls)
}

func TestResolveSwallowsProvisionerFailure(t *testing.T) {
	provisioner := &countingProvisioner{err: errors.New("seed failed")}
	service := NewUserService(newTestDB(t), "demo@mycarebay.com", provisioner)

	user, err := service.Resolve("demo@mycarebay.com", "Demo User", "")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, 1, provisioner.calls)
}

func TestDemoProvisionerSeedsSampleAggregate(t *testing.T) {
	db := newTestDB(t)
	seniors := NewSeniorService(db)
	provisioner := NewDemoProvisioner(seniors)
	userID := uuid.New()

	require.NoError(t, provisioner.Provision(userID))

	aggregates, err := seniors.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)

	agg := aggregates[0]
	require.Equal(t, "Eleanor Vance", agg.Name)
	require.Equal(t, "Mother", agg.Relationship)
	require.Len(t, agg.Ailments, 3)
	require.Len(t, agg.Medications, 3)
	require.Len(t, agg.Appointments, 2)
	require.Len(t, agg.Contacts, 4)
}
