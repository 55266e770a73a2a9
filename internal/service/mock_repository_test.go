package service

import (
	"context"
	"testing"
	"time"

	"devimpact/internal/domain"
	apperrors "devimpact/pkg/errors"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) List(ctx context.Context) ([]*domain.Registration, error) {
	args := m.Called(ctx)
	regs, _ := args.Get(0).([]*domain.Registration)
	return regs, args.Error(1)
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	reg, _ := args.Get(0).(*domain.Registration)
	return reg, args.Error(1)
}

func (m *mockRegistrationRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *mockRegistrationRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRegistrationRepo) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRegistrationRepo) ListByTeam(ctx context.Context, teamName string) ([]*domain.Registration, error) {
	args := m.Called(ctx, teamName)
	regs, _ := args.Get(0).([]*domain.Registration)
	return regs, args.Error(1)
}

func (m *mockRegistrationRepo) UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error) {
	args := m.Called(ctx, teamName, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRegistrationRepo) AssignTeam(ctx context.Context, id, teamName string) error {
	args := m.Called(ctx, id, teamName)
	return args.Error(0)
}

func (m *mockRegistrationRepo) ClearTeam(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRegistrationRepo) Recent(ctx context.Context, limit int) ([]*domain.Registration, error) {
	args := m.Called(ctx, limit)
	regs, _ := args.Get(0).([]*domain.Registration)
	return regs, args.Error(1)
}

var baseTime = time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)

// newReg builds a stored registration. An empty team makes it a solo entry.
func newReg(id, name, team string, status domain.Status, year, experience string, skills ...string) *domain.Registration {
	reg := &domain.Registration{
		ID:              id,
		FullName:        name,
		Email:           id + "@example.com",
		YearOfStudy:     domain.StringPtr(year),
		HasTeam:         domain.StringPtr(domain.HasTeamNo),
		ExperienceLevel: domain.StringPtr(experience),
		Skills:          skills,
		Status:          string(status),
		RegisteredAt:    baseTime,
	}
	if team != "" {
		reg.HasTeam = domain.StringPtr(domain.HasTeamYes)
		reg.TeamName = domain.StringPtr(team)
	}
	return reg
}

func requireAppErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, want, appErr.Type)
}
