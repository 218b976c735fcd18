package entity

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits enforced before a create request is sent.
const (
	MinDisplayNameLength = 2
	MinPasswordLength    = 8
	MinRoleNameLength    = 2
)

// Validation errors.
var (
	ErrDisplayNameTooShort = errors.New("display name must be at least 2 characters long")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrRoleNameTooShort    = errors.New("role name must be at least 2 characters long")
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidFlowerDays   = errors.New("flower days must be greater than zero")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidStage        = errors.New("invalid plant stage")
)

// NewUser is the create payload of a user.
type NewUser struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Validate checks the payload and returns all violations joined.
func (u NewUser) Validate() error {
	var errs []error
	if utf8.RuneCountInString(strings.TrimSpace(u.DisplayName)) < MinDisplayNameLength {
		errs = append(errs, fmt.Errorf("displayName: %w", ErrDisplayNameTooShort))
	}
	if err := ValidateEmail(u.Email); err != nil {
		errs = append(errs, fmt.Errorf("email: %w", err))
	}
	if utf8.RuneCountInString(u.Password) < MinPasswordLength {
		errs = append(errs, fmt.Errorf("password: %w", ErrPasswordTooShort))
	}
	return errors.Join(errs...)
}

// NewRole is the create payload of a role.
type NewRole struct {
	Name string `json:"name"`
}

// Validate checks the payload.
func (r NewRole) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < MinRoleNameLength {
		return fmt.Errorf("name: %w", ErrRoleNameTooShort)
	}
	return nil
}

// NewGenetic is the create payload of a genetic.
type NewGenetic struct {
	Name       string `json:"name"`
	FlowerDays int    `json:"flowerDays"`
}

// Validate checks the payload and returns all violations joined.
func (g NewGenetic) Validate() error {
	var errs []error
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, fmt.Errorf("name: %w", ErrNameRequired))
	}
	if g.FlowerDays <= 0 {
		errs = append(errs, fmt.Errorf("flowerDays: %w", ErrInvalidFlowerDays))
	}
	return errors.Join(errs...)
}

// NewPlant is the create payload of a plant.
type NewPlant struct {
	Name      string `json:"name"`
	GeneticID string `json:"geneticId"`
}

// Validate checks the payload and returns all violations joined.
func (p NewPlant) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("name: %w", ErrNameRequired))
	}
	if err := ValidateUUID(p.GeneticID); err != nil {
		errs = append(errs, fmt.Errorf("geneticId: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateEmail checks that s is a bare address such as "a@b.example".
func ValidateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, s)
	}
	return nil
}

// ValidateUUID checks that s parses as a UUID.
func ValidateUUID(s string) error {
	if err := uuid.Validate(s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return nil
}
