package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"devimpact/internal/domain"
	"devimpact/internal/repository"
	apperrors "devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"devimpact/pkg/metrics"
	"devimpact/pkg/redis"
	"devimpact/pkg/sanitize"
)

const (
	defaultActivityLimit = 5
	maxActivityLimit     = 50
)

type registrationService struct {
	repo        repository.RegistrationRepository
	notifier    *NotificationService
	cache       *CacheService
	maxTeamSize int
	logger      *logger.Logger
}

// NewRegistrationService creates a registration service
func NewRegistrationService(repo repository.RegistrationRepository, notifier *NotificationService, cache *CacheService, maxTeamSize int, logger *logger.Logger) RegistrationService {
	return &registrationService{
		repo:        repo,
		notifier:    notifier,
		cache:       cache,
		maxTeamSize: maxTeamSize,
		logger:      logger.Named("registrations"),
	}
}

func (s *registrationService) Register(ctx context.Context, req *domain.RegistrationRequest) (reg *domain.Registration, err error) {
	defer func() { metrics.RecordRegistration(err) }()

	clean := domain.RegistrationRequest{
		FullName:        sanitize.Text(req.FullName),
		Email:           domain.NormalizeEmail(req.Email),
		YearOfStudy:     strings.TrimSpace(req.YearOfStudy),
		HasTeam:         strings.ToLower(strings.TrimSpace(req.HasTeam)),
		TeamName:        sanitize.Text(req.TeamName),
		TeamMembers:     sanitize.Texts(req.TeamMembers),
		Experience:      strings.TrimSpace(req.Experience),
		Skills:          sanitize.Texts(req.Skills),
		OtherSkills:     sanitize.Text(req.OtherSkills),
		AdditionalNotes: sanitize.Text(req.AdditionalNotes),
	}

	if fieldErrs := clean.Validate(); len(fieldErrs) > 0 {
		details := make(map[string]interface{}, len(fieldErrs))
		for field, msg := range fieldErrs {
			details[field] = msg
		}
		return nil, apperrors.NewValidationError("Invalid registration", details)
	}

	exists, err := s.repo.EmailExists(ctx, clean.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check email", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("This email is already registered")
	}

	reg = &domain.Registration{
		FullName:        clean.FullName,
		Email:           clean.Email,
		YearOfStudy:     domain.StringPtr(clean.YearOfStudy),
		HasTeam:         domain.StringPtr(clean.HasTeam),
		TeamMembers:     []string{},
		ExperienceLevel: domain.StringPtr(clean.Experience),
		Skills:          clean.Skills,
		Status:          string(domain.StatusPending),
	}
	if clean.HasTeam == domain.HasTeamYes {
		reg.TeamName = domain.StringPtr(clean.TeamName)
		reg.TeamMembers = clean.TeamMembers
	}
	if clean.OtherSkills != "" {
		reg.OtherSkills = domain.StringPtr(clean.OtherSkills)
	}
	if clean.AdditionalNotes != "" {
		reg.AdditionalNotes = domain.StringPtr(clean.AdditionalNotes)
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflictError("This email is already registered")
		}
		return nil, apperrors.NewInternalError("Failed to save registration", err)
	}

	s.cache.InvalidateAdmin(ctx)
	s.logger.WithFields(map[string]interface{}{
		"registration_id": reg.ID,
		"has_team":        clean.HasTeam,
	}).Info("Registration created")

	return reg, nil
}

func (s *registrationService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, apperrors.NewValidationError("Email is required", nil)
	}
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return false, apperrors.NewInternalError("Failed to check email", err)
	}
	return exists, nil
}

func (s *registrationService) List(ctx context.Context, filter domain.RegistrationFilter) (*domain.RegistrationList, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load registrations", err)
	}

	list := &domain.RegistrationList{
		Registrations: []*domain.Registration{},
		Solo:          []*domain.Registration{},
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	for _, reg := range all {
		list.Stats.Total++
		switch domain.Status(reg.Status) {
		case domain.StatusPending:
			list.Stats.Pending++
		case domain.StatusApproved:
			list.Stats.Approved++
		case domain.StatusRejected:
			list.Stats.Rejected++
		}

		if reg.Available() {
			list.Solo = append(list.Solo, reg)
		}
		if matchesFilter(reg, filter, query) {
			list.Registrations = append(list.Registrations, reg)
		}
	}
	return list, nil
}

func matchesFilter(reg *domain.Registration, filter domain.RegistrationFilter, query string) bool {
	if filter.Status != "" && filter.Status != "all" && reg.Status != filter.Status {
		return false
	}
	if filter.Year != "" && filter.Year != "all" {
		if reg.YearOfStudy == nil || *reg.YearOfStudy != filter.Year {
			return false
		}
	}
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(reg.FullName), query) || strings.Contains(strings.ToLower(reg.Email), query) {
		return true
	}
	for _, skill := range reg.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}

func (s *registrationService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Registration, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("Invalid status", map[string]interface{}{"status": status})
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load registration", err)
	}
	if reg == nil {
		return nil, apperrors.NewNotFoundError("Registration not found")
	}

	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.NewInternalError("Failed to update status", err)
	}
	reg.Status = string(status)
	s.cache.InvalidateAdmin(ctx)

	if template, ok := TemplateForStatus(status); ok {
		email := StatusEmail{To: reg.Email, Name: reg.FullName, Template: template}
		if reg.InTeam() {
			email.TeamName = *reg.TeamName
		}
		s.notifier.Notify(email)
	}

	s.logger.WithFields(map[string]interface{}{
		"registration_id": id,
		"status":          status,
	}).Info("Registration status updated")
	return reg, nil
}

func (s *registrationService) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	if !status.Valid() {
		return 0, apperrors.NewValidationError("Invalid status", map[string]interface{}{"status": status})
	}
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("No registrations selected", nil)
	}

	updated, err := s.repo.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return 0, apperrors.NewInternalError("Failed to update registrations", err)
	}
	s.cache.InvalidateAdmin(ctx)

	s.logger.WithFields(map[string]interface{}{
		"requested": len(ids),
		"updated":   updated,
		"status":    status,
	}).Info("Bulk status update")
	return updated, nil
}

func (s *registrationService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityItem, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	regs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load activity", err)
	}

	items := make([]domain.ActivityItem, 0, len(regs))
	for _, reg := range regs {
		items = append(items, domain.ActivityItem{
			ID:        reg.ID,
			Type:      "registration",
			User:      reg.FullName,
			Action:    "registered",
			Timestamp: reg.RegisteredAt,
		})
	}
	return items, nil
}

func (s *registrationService) Analytics(ctx context.Context) (*domain.RegistrationAnalytics, error) {
	var analytics domain.RegistrationAnalytics
	err := s.cache.GetOrLoad(ctx, redis.KeyRegistrationAnalytics, redis.TTLRegistrationAnalytics, &analytics,
		func(ctx context.Context) (interface{}, error) {
			return s.computeAnalytics(ctx)
		})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to compute analytics", err)
	}
	return &analytics, nil
}

func (s *registrationService) computeAnalytics(ctx context.Context) (*domain.RegistrationAnalytics, error) {
	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int)
	skills := make(map[string]int)
	for _, reg := range regs {
		perDay[reg.RegisteredAt.UTC().Format("2006-01-02")]++
		for _, skill := range reg.Skills {
			skills[skill]++
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]domain.TrendPoint, 0, len(days))
	for _, day := range days {
		trend = append(trend, domain.TrendPoint{Date: day, Count: perDay[day]})
	}

	teams, _ := groupTeams(regs, s.logger)
	return &domain.RegistrationAnalytics{
		RegistrationTrend: trend,
		SkillDistribution: skills,
		TeamProgress:      teamProgress(teams, s.maxTeamSize),
	}, nil
}
