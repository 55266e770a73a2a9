package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SkillOther is the skill tag that requires OtherSkills to be filled in
const SkillOther = "Other"

// HasTeam values stored in registrations.has_team
const (
	HasTeamYes  = "yes"
	HasTeamNo   = "no"
	HasTeamForm = "form" // wants to be placed in a team by the organizers
)

// Registration mirrors a row of the registrations table. Nullable columns are
// pointers; use ToParticipant to get a validated record.
type Registration struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	YearOfStudy     *string   `json:"year_of_study"`
	HasTeam         *string   `json:"has_team"`
	TeamName        *string   `json:"team_name"`
	TeamMembers     []string  `json:"team_members"`
	ExperienceLevel *string   `json:"experience_level"`
	Skills          []string  `json:"skills"`
	OtherSkills     *string   `json:"other_skills"`
	AdditionalNotes *string   `json:"additional_notes"`
	Status          string    `json:"status"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// InTeam reports whether the registration is assigned to a named team
func (r *Registration) InTeam() bool {
	return deref(r.HasTeam) == HasTeamYes && strings.TrimSpace(deref(r.TeamName)) != ""
}

// Available reports whether the registration belongs to the solo pool
func (r *Registration) Available() bool {
	switch deref(r.HasTeam) {
	case "", HasTeamNo, HasTeamForm:
		return true
	}
	return false
}

// ToParticipant validates the row and converts it into a Participant.
// Rows without id, email or a known status are rejected. Unknown year or
// experience values are kept verbatim so they still count as distinct values
// but score no experience points.
func (r *Registration) ToParticipant() (Participant, error) {
	if strings.TrimSpace(r.ID) == "" {
		return Participant{}, fmt.Errorf("registration has no id")
	}
	if strings.TrimSpace(r.Email) == "" {
		return Participant{}, fmt.Errorf("registration %s has no email", r.ID)
	}
	status := Status(r.Status)
	if !status.Valid() {
		return Participant{}, fmt.Errorf("registration %s has unknown status %q", r.ID, r.Status)
	}

	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	p := Participant{
		ID:         r.ID,
		FullName:   r.FullName,
		Email:      r.Email,
		Year:       Year(deref(r.YearOfStudy)),
		Experience: Experience(deref(r.ExperienceLevel)),
		Skills:     skills,
		Status:     status,
	}
	if r.InTeam() {
		name := strings.TrimSpace(deref(r.TeamName))
		p.TeamName = &name
	}
	return p, nil
}

// RegistrationRequest is the body of the public registration form
type RegistrationRequest struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	YearOfStudy     string   `json:"yearOfStudy"`
	HasTeam         string   `json:"hasTeam"`
	TeamName        string   `json:"teamName"`
	TeamMembers     []string `json:"teamMembers"`
	Experience      string   `json:"experience"`
	Skills          []string `json:"skills"`
	OtherSkills     string   `json:"otherSkills"`
	AdditionalNotes string   `json:"additionalNotes"`
}

// Validate checks the form the way the registration wizard does and returns
// one message per invalid field. An empty map means the request is valid.
func (r *RegistrationRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.FullName) == "" {
		errs["fullName"] = "Name is required"
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email"
	}
	if !Year(r.YearOfStudy).Valid() {
		errs["yearOfStudy"] = "Please select your year of study"
	}

	switch r.HasTeam {
	case HasTeamYes:
		if strings.TrimSpace(r.TeamName) == "" {
			errs["teamName"] = "Team name is required"
		}
		hasMember := false
		for _, m := range r.TeamMembers {
			if strings.TrimSpace(m) != "" {
				hasMember = true
				break
			}
		}
		if !hasMember {
			errs["teamMembers"] = "Please add at least one team member"
		}
	case HasTeamNo, HasTeamForm:
	default:
		errs["hasTeam"] = "Please select an option"
	}

	if !Experience(r.Experience).Valid() {
		errs["experience"] = "Please select your experience level"
	}
	if len(r.Skills) == 0 {
		errs["skills"] = "Please select at least one skill"
	}
	for _, s := range r.Skills {
		if s == SkillOther && strings.TrimSpace(r.OtherSkills) == "" {
			errs["otherSkills"] = "Please specify your other skills"
			break
		}
	}
	return errs
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegistrationFilter narrows the admin registration list
type RegistrationFilter struct {
	Status string // all, pending, approved, rejected
	Year   string // all, L1, L2, L3
	Query  string // case-insensitive match on name, email or a skill
}

// RegistrationStats counts registrations by status over the unfiltered set
type RegistrationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// RegistrationList is the admin registrations view
type RegistrationList struct {
	Registrations []*Registration   `json:"registrations"`
	Stats         RegistrationStats `json:"stats"`
	Solo          []*Registration   `json:"solo"`
}

// ActivityItem is one entry of the recent activity feed
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// TrendPoint is the number of registrations on one day
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TeamProgress summarizes how many teams reached full size
type TeamProgress struct {
	Total      int `json:"total"`
	Complete   int `json:"complete"`
	Incomplete int `json:"incomplete"`
}

// RegistrationAnalytics feeds the analytics panel
type RegistrationAnalytics struct {
	RegistrationTrend []TrendPoint   `json:"registrationTrend"`
	SkillDistribution map[string]int `json:"skillDistribution"`
	TeamProgress      TeamProgress   `json:"teamProgress"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
