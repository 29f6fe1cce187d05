package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/models"
	"gorm.io/gorm"
)

var ErrEmailRequired = errors.New("email and name are required")

// Provisioner runs once after a user is created, before the login response
// is returned. Seeding sample data lives behind this instead of inside the
// login flow itself.
type Provisioner interface {
	Provision(userID uuid.UUID) error
}

// UserService resolves accounts by email. Login performs no credential
// check: the same email always resolves to the same account.
type UserService struct {
	db          *gorm.DB
	demoEmail   string
	provisioner Provisioner
}

func NewUserService(db *gorm.DB, demoEmail string, provisioner Provisioner) *UserService {
	return &UserService{db: db, demoEmail: demoEmail, provisioner: provisioner}
}

// Resolve finds the user for an email or creates one. An existing user is
// returned unchanged; submitted name and plan only apply on first creation.
func (s *UserService) Resolve(email, name, plan string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return nil, ErrEmailRequired
	}
	if plan == "" {
		plan = models.PlanFree
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
		Plan:  plan,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Two logins racing on the same email can both miss the lookup.
		// The losing insert resolves to whatever the winner created.
		var winner models.User
		if lookupErr := s.db.Where("email = ?", email).First(&winner).Error; lookupErr == nil {
			return &winner, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.provisioner != nil && email == s.demoEmail {
		if err := s.provisioner.Provision(user.ID); err != nil {
			// Best effort: the account is already created and usable.
			slog.Error("demo provisioning failed", "user_id", user.ID.String(), "error", err.Error())
		}
	}

	return &user, nil
}
