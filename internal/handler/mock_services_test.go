package handler

import (
	"context"
	"io"

	"devimpact/internal/domain"
	"devimpact/internal/service"
	"devimpact/internal/teamform"
	"github.com/stretchr/testify/mock"
)

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.Registration, error) {
	args := m.Called(ctx, req)
	if reg := args.Get(0); reg != nil {
		return reg.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationService) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistrationService) List(ctx context.Context, filter domain.RegistrationFilter) (*domain.RegistrationList, error) {
	args := m.Called(ctx, filter)
	if list := args.Get(0); list != nil {
		return list.(*domain.RegistrationList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Registration, error) {
	args := m.Called(ctx, id, status)
	if reg := args.Get(0); reg != nil {
		return reg.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationService) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRegistrationService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityItem, error) {
	args := m.Called(ctx, limit)
	if items := args.Get(0); items != nil {
		return items.([]domain.ActivityItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationService) Analytics(ctx context.Context) (*domain.RegistrationAnalytics, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.(*domain.RegistrationAnalytics), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTeamService struct {
	mock.Mock
}

func (m *mockTeamService) Overview(ctx context.Context) (*service.TeamOverview, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.(*service.TeamOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamService) Filter(teams []teamform.ScoredTeam, query string, filter service.TeamFilter) []teamform.ScoredTeam {
	args := m.Called(teams, query, filter)
	return args.Get(0).([]teamform.ScoredTeam)
}

func (m *mockTeamService) UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error) {
	args := m.Called(ctx, teamName, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTeamService) RemoveMember(ctx context.Context, id string) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if reg := args.Get(0); reg != nil {
		return reg.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamService) AddMember(ctx context.Context, teamName, id string) error {
	return m.Called(ctx, teamName, id).Error(0)
}

func (m *mockTeamService) Suggestions(ctx context.Context, teamName string) ([]teamform.Suggestion, error) {
	args := m.Called(ctx, teamName)
	if s := args.Get(0); s != nil {
		return s.([]teamform.Suggestion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamService) Score(members []domain.Participant) service.ScoreResult {
	return m.Called(members).Get(0).(service.ScoreResult)
}

func (m *mockTeamService) ExportCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if body := args.String(1); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}
