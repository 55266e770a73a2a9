package domain

import "strings"

// Year is the study year of a participant
type Year string

const (
	YearL1 Year = "L1"
	YearL2 Year = "L2"
	YearL3 Year = "L3"
)

// Valid reports whether y is one of the known study years
func (y Year) Valid() bool {
	switch y {
	case YearL1, YearL2, YearL3:
		return true
	}
	return false
}

// Experience is the self-reported experience level
type Experience string

const (
	ExperienceBeginner     Experience = "Beginner"
	ExperienceIntermediate Experience = "Intermediate"
	ExperienceAdvanced     Experience = "Advanced"
)

// Level maps the experience to 1..3; unknown values map to 0
func (e Experience) Level() int {
	switch e {
	case ExperienceBeginner:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	}
	return 0
}

// Valid reports whether e is one of the known experience levels
func (e Experience) Valid() bool {
	return e.Level() > 0
}

// Status is the approval status of a registration
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known approval status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus normalizes and validates a status coming from a request
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Participant is the typed view of a registration the team scorer works on
type Participant struct {
	ID         string     `json:"id"`
	FullName   string     `json:"fullName"`
	Email      string     `json:"email"`
	Year       Year       `json:"year"`
	Experience Experience `json:"experience"`
	Skills     []string   `json:"skills"`
	TeamName   *string    `json:"teamName"`
	Status     Status     `json:"status"`
}

// HasSkill reports whether the participant lists skill
func (p Participant) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
