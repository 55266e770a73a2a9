package teamform

import (
	"sort"

	"devimpact/internal/domain"
)

// Candidate ranking points.
const (
	pointsPerNewSkill   = 2
	pointsNewExperience = 3
	pointsNewYear       = 2
)

// Suggestion is a solo participant proposed for a team.
type Suggestion struct {
	Member             domain.Participant `json:"member"`
	CompatibilityScore int                `json:"compatibilityScore"`
	NewSkills          []string           `json:"newSkills"`
}

// Suggest ranks pool against team and returns at most MaxTeamSize minus the
// current member count candidates. Each candidate's compatibility score is
// computed for the current roster plus that candidate alone. Teams that are
// empty or already complete get no suggestions.
func (s *Scorer) Suggest(team domain.Team, pool []domain.Participant) []Suggestion {
	n := len(team.Members)
	if n == 0 || n >= s.cfg.MaxTeamSize {
		return []Suggestion{}
	}
	needed := s.cfg.MaxTeamSize - n

	teamSkills := make(map[string]struct{})
	teamExperience := make(map[domain.Experience]struct{})
	teamYears := make(map[domain.Year]struct{})
	for _, m := range team.Members {
		for _, skill := range m.Skills {
			teamSkills[skill] = struct{}{}
		}
		teamExperience[m.Experience] = struct{}{}
		teamYears[m.Year] = struct{}{}
	}

	type ranked struct {
		member    domain.Participant
		newSkills []string
		points    int
	}
	candidates := make([]ranked, 0, len(pool))
	for _, m := range pool {
		newSkills := []string{}
		for _, skill := range m.Skills {
			if _, ok := teamSkills[skill]; !ok {
				newSkills = append(newSkills, skill)
			}
		}
		points := len(newSkills) * pointsPerNewSkill
		if _, ok := teamExperience[m.Experience]; !ok {
			points += pointsNewExperience
		}
		if _, ok := teamYears[m.Year]; !ok {
			points += pointsNewYear
		}
		candidates = append(candidates, ranked{member: m, newSkills: newSkills, points: points})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].points > candidates[j].points
	})
	if len(candidates) > needed {
		candidates = candidates[:needed]
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		roster := make([]domain.Participant, 0, n+1)
		roster = append(roster, team.Members...)
		roster = append(roster, c.member)
		suggestions = append(suggestions, Suggestion{
			Member:             c.member,
			CompatibilityScore: s.Score(roster),
			NewSkills:          c.newSkills,
		})
	}
	return suggestions
}
