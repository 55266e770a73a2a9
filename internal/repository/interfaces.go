package repository

import (
	"context"
	"errors"

	"devimpact/internal/domain"
)

// ErrDuplicateEmail is returned by Create when the email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNotFound is returned by writes that matched no row
var ErrNotFound = errors.New("registration not found")

// RegistrationRepository defines the interface for registration data operations.
// Getters return (nil, nil) when the row does not exist.
type RegistrationRepository interface {
	// List returns every registration, newest first
	List(ctx context.Context) ([]*domain.Registration, error)

	// GetByID retrieves a registration by ID
	GetByID(ctx context.Context, id string) (*domain.Registration, error)

	// EmailExists reports whether an email is already registered
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create inserts a registration and fills in ID and RegisteredAt
	Create(ctx context.Context, reg *domain.Registration) error

	// UpdateStatus sets the status of one registration
	UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error)

	// BulkUpdateStatus sets the status of many registrations in one statement
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error)

	// ListByTeam returns the current members of a team
	ListByTeam(ctx context.Context, teamName string) ([]*domain.Registration, error)

	// UpdateTeamStatus sets the status of every member of a team in one statement
	UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error)

	// AssignTeam places a registration in a team and resets its status to pending
	AssignTeam(ctx context.Context, id, teamName string) error

	// ClearTeam removes a registration from its team and resets its status to pending
	ClearTeam(ctx context.Context, id string) error

	// Recent returns the latest registrations
	Recent(ctx context.Context, limit int) ([]*domain.Registration, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Registration RegistrationRepository
}
