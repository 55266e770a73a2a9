package service

import (
	"context"
	"io"

	"devimpact/internal/domain"
	"devimpact/internal/teamform"
)

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	// Register validates, sanitizes and stores a new registration
	Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.Registration, error)

	// EmailExists reports whether an email is already registered
	EmailExists(ctx context.Context, email string) (bool, error)

	// List returns the filtered registrations with stats over all of them
	List(ctx context.Context, filter domain.RegistrationFilter) (*domain.RegistrationList, error)

	// UpdateStatus changes one registration's status and emails the registrant
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Registration, error)

	// BulkUpdateStatus changes the status of many registrations at once
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error)

	// RecentActivity returns the latest registrations as activity items
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityItem, error)

	// Analytics returns registration trend, skill distribution and team progress
	Analytics(ctx context.Context) (*domain.RegistrationAnalytics, error)
}

// TeamService defines the interface for team management operations
type TeamService interface {
	// Overview groups registrations into scored teams with stats and skill analysis
	Overview(ctx context.Context) (*TeamOverview, error)

	// Filter narrows teams by a search query and a team filter
	Filter(teams []teamform.ScoredTeam, query string, filter TeamFilter) []teamform.ScoredTeam

	// UpdateTeamStatus sets the status of every member of a team
	UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error)

	// RemoveMember takes a participant out of their team
	RemoveMember(ctx context.Context, id string) (*domain.Registration, error)

	// AddMember places a solo participant in a team
	AddMember(ctx context.Context, teamName, id string) error

	// Suggestions ranks solo participants that could join a team
	Suggestions(ctx context.Context, teamName string) ([]teamform.Suggestion, error)

	// Score computes the compatibility of an ad-hoc roster
	Score(members []domain.Participant) ScoreResult

	// ExportCSV writes every team as CSV
	ExportCSV(ctx context.Context, w io.Writer) error
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	// ValidateAdminToken verifies a Supabase JWT and checks the admin allowlist
	ValidateAdminToken(ctx context.Context, token string) (*domain.AdminClaims, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth         AuthService
	Registration RegistrationService
	Team         TeamService
	Notifier     *NotificationService
	Cache        *CacheService
}
