package service

import (
	"context"
	"errors"
	"strings"

	"devimpact/internal/domain"
	"devimpact/internal/repository"
	"devimpact/internal/teamform"
	apperrors "devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"devimpact/pkg/metrics"
	"devimpact/pkg/redis"
)

// TeamFilter selects teams by completeness or status
type TeamFilter string

const (
	TeamFilterAll        TeamFilter = "all"
	TeamFilterComplete   TeamFilter = "complete"
	TeamFilterIncomplete TeamFilter = "incomplete"
	TeamFilterApproved   TeamFilter = "approved"
	TeamFilterPending    TeamFilter = "pending"
	TeamFilterRejected   TeamFilter = "rejected"
)

// ParseTeamFilter validates a filter value; empty means all
func ParseTeamFilter(raw string) (TeamFilter, bool) {
	f := TeamFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case "":
		return TeamFilterAll, true
	case TeamFilterAll, TeamFilterComplete, TeamFilterIncomplete,
		TeamFilterApproved, TeamFilterPending, TeamFilterRejected:
		return f, true
	}
	return f, false
}

// TeamOverview is the team management view of the dashboard
type TeamOverview struct {
	Teams    []teamform.ScoredTeam  `json:"teams"`
	Stats    domain.TeamStats       `json:"stats"`
	Analysis teamform.SkillAnalysis `json:"skillStats"`
	Solo     []domain.Participant   `json:"solo"`
}

// ScoreResult is the outcome of scoring an ad-hoc roster
type ScoreResult struct {
	Score     int                `json:"score"`
	Breakdown teamform.Breakdown `json:"breakdown"`
}

type teamService struct {
	repo     repository.RegistrationRepository
	scorer   *teamform.Scorer
	notifier *NotificationService
	cache    *CacheService
	logger   *logger.Logger
}

// NewTeamService creates a team service
func NewTeamService(repo repository.RegistrationRepository, scorer *teamform.Scorer, notifier *NotificationService, cache *CacheService, logger *logger.Logger) TeamService {
	return &teamService{
		repo:     repo,
		scorer:   scorer,
		notifier: notifier,
		cache:    cache,
		logger:   logger.Named("teams"),
	}
}

func (s *teamService) Overview(ctx context.Context) (*TeamOverview, error) {
	var overview TeamOverview
	err := s.cache.GetOrLoad(ctx, redis.KeyTeamOverview, redis.TTLTeamOverview, &overview,
		func(ctx context.Context) (interface{}, error) {
			return s.buildOverview(ctx)
		})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load teams", err)
	}
	return &overview, nil
}

func (s *teamService) buildOverview(ctx context.Context) (*TeamOverview, error) {
	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	teams, solo := groupTeams(regs, s.logger)
	analysis := s.scorer.Analyze(teams)
	metrics.RecordTeamsScored(len(teams))

	return &TeamOverview{
		Teams:    analysis.Teams,
		Stats:    s.stats(teams),
		Analysis: analysis,
		Solo:     solo,
	}, nil
}

func (s *teamService) stats(teams []domain.Team) domain.TeamStats {
	progress := teamProgress(teams, s.scorer.MaxTeamSize())
	stats := domain.TeamStats{
		Total:      progress.Total,
		Complete:   progress.Complete,
		Incomplete: progress.Incomplete,
	}
	for _, t := range teams {
		stats.TotalMembers += t.MemberCount()
		switch t.Status {
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusRejected:
			stats.Rejected++
		}
	}
	if stats.Total > 0 {
		stats.AvgTeamSize = float64(stats.TotalMembers) / float64(stats.Total)
	}
	return stats
}

func (s *teamService) Filter(teams []teamform.ScoredTeam, query string, filter TeamFilter) []teamform.ScoredTeam {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]teamform.ScoredTeam, 0, len(teams))
	for _, t := range teams {
		if teamMatchesQuery(t.Team, query) && s.teamMatchesFilter(t.Team, filter) {
			out = append(out, t)
		}
	}
	return out
}

func teamMatchesQuery(t domain.Team, query string) bool {
	if query == "" || strings.Contains(strings.ToLower(t.Name), query) {
		return true
	}
	for _, m := range t.Members {
		if strings.Contains(strings.ToLower(m.FullName), query) || strings.Contains(strings.ToLower(m.Email), query) {
			return true
		}
		for _, skill := range m.Skills {
			if strings.Contains(strings.ToLower(skill), query) {
				return true
			}
		}
	}
	return false
}

func (s *teamService) teamMatchesFilter(t domain.Team, filter TeamFilter) bool {
	switch filter {
	case TeamFilterComplete:
		return t.MemberCount() >= s.scorer.MaxTeamSize()
	case TeamFilterIncomplete:
		return t.MemberCount() < s.scorer.MaxTeamSize()
	case TeamFilterApproved, TeamFilterPending, TeamFilterRejected:
		return string(t.Status) == string(filter)
	}
	return true
}

func (s *teamService) UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error) {
	teamName = strings.TrimSpace(teamName)
	if !status.Valid() {
		return 0, apperrors.NewValidationError("Invalid status", map[string]interface{}{"status": status})
	}

	members, err := s.repo.ListByTeam(ctx, teamName)
	if err != nil {
		return 0, apperrors.NewInternalError("Failed to load team", err)
	}
	if len(members) == 0 {
		return 0, apperrors.NewNotFoundError("Team not found")
	}

	updated, err := s.repo.UpdateTeamStatus(ctx, teamName, status)
	if err != nil {
		return 0, apperrors.NewInternalError("Failed to update team status", err)
	}
	s.cache.InvalidateAdmin(ctx)

	if template, ok := TemplateForStatus(status); ok {
		emails := make([]StatusEmail, 0, len(members))
		for _, m := range members {
			emails = append(emails, StatusEmail{To: m.Email, Name: m.FullName, Template: template, TeamName: teamName})
		}
		s.notifier.Notify(emails...)
	}

	s.logger.WithFields(map[string]interface{}{
		"team":    teamName,
		"status":  status,
		"updated": updated,
	}).Info("Team status updated")
	return updated, nil
}

func (s *teamService) RemoveMember(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load registration", err)
	}
	if reg == nil {
		return nil, apperrors.NewNotFoundError("Registration not found")
	}
	if !reg.InTeam() {
		return nil, apperrors.NewValidationError("Participant is not in a team", nil)
	}
	teamName := *reg.TeamName

	if err := s.repo.ClearTeam(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Registration not found")
		}
		return nil, apperrors.NewInternalError("Failed to remove member", err)
	}
	s.cache.InvalidateAdmin(ctx)

	s.notifier.Notify(StatusEmail{To: reg.Email, Name: reg.FullName, Template: TemplateRemoved, TeamName: teamName})

	reg.HasTeam = domain.StringPtr(domain.HasTeamNo)
	reg.TeamName = nil
	reg.Status = string(domain.StatusPending)

	s.logger.WithFields(map[string]interface{}{
		"registration_id": id,
		"team":            teamName,
	}).Info("Member removed from team")
	return reg, nil
}

func (s *teamService) AddMember(ctx context.Context, teamName, id string) error {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return apperrors.NewValidationError("Team name is required", nil)
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperrors.NewInternalError("Failed to load registration", err)
	}
	if reg == nil {
		return apperrors.NewNotFoundError("Registration not found")
	}
	if reg.InTeam() {
		return apperrors.NewConflictError("Participant is already in team " + *reg.TeamName)
	}

	members, err := s.repo.ListByTeam(ctx, teamName)
	if err != nil {
		return apperrors.NewInternalError("Failed to load team", err)
	}
	if len(members) == 0 {
		return apperrors.NewNotFoundError("Team not found")
	}
	if len(members) >= s.scorer.MaxTeamSize() {
		return apperrors.NewConflictError("Team is already complete")
	}

	if err := s.repo.AssignTeam(ctx, id, teamName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("Registration not found")
		}
		return apperrors.NewInternalError("Failed to add member", err)
	}
	s.cache.InvalidateAdmin(ctx)

	s.logger.WithFields(map[string]interface{}{
		"registration_id": id,
		"team":            teamName,
	}).Info("Member added to team")
	return nil
}

func (s *teamService) Suggestions(ctx context.Context, teamName string) ([]teamform.Suggestion, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	teamName = strings.TrimSpace(teamName)
	for _, t := range overview.Teams {
		if t.Name == teamName {
			suggestions := s.scorer.Suggest(t.Team, overview.Solo)
			metrics.RecordSuggestions(len(suggestions))
			return suggestions, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Team not found")
}

func (s *teamService) Score(members []domain.Participant) ScoreResult {
	metrics.RecordTeamsScored(1)
	return ScoreResult{
		Score:     s.scorer.Score(members),
		Breakdown: s.scorer.Breakdown(members),
	}
}
