package teamform

import (
	"math"
	"sort"

	"devimpact/internal/domain"
)

const topSkillsLimit = 10

// SkillCount is one entry of the top skills ranking.
type SkillCount struct {
	Skill      string  `json:"skill"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TeamSkills is one row of the per-team skill matrix.
type TeamSkills struct {
	TeamName           string         `json:"teamName"`
	MemberCount        int            `json:"memberCount"`
	Skills             map[string]int `json:"skills"`
	UniqueSkills       int            `json:"uniqueSkills"`
	TotalSkills        int            `json:"totalSkills"`
	CompatibilityScore int            `json:"compatibilityScore"`
}

// ScoredTeam is a team together with the values derived from its members.
type ScoredTeam struct {
	domain.Team
	SkillCoverage      map[string]int `json:"skillCoverage"`
	CompatibilityScore int            `json:"compatibilityScore"`
}

// SkillAnalysis aggregates skills over a set of teams.
type SkillAnalysis struct {
	TopSkills            []SkillCount   `json:"topSkills"`
	SkillDistribution    map[string]int `json:"skillDistribution"`
	TeamMatrix           []TeamSkills   `json:"teamSkillMatrix"`
	Teams                []ScoredTeam   `json:"-"`
	AverageSkillsPerTeam float64        `json:"averageSkillsPerTeam"`
	AverageCompatibility float64        `json:"averageCompatibility"`
}

// Analyze scores every team and aggregates skill statistics. The input teams
// are not modified; derived values are returned in Teams.
func (s *Scorer) Analyze(teams []domain.Team) SkillAnalysis {
	analysis := SkillAnalysis{
		TopSkills:         []SkillCount{},
		SkillDistribution: make(map[string]int),
		TeamMatrix:        make([]TeamSkills, 0, len(teams)),
		Teams:             make([]ScoredTeam, 0, len(teams)),
	}

	var order []string // skills in first-seen order
	total := 0
	scoreSum := 0
	for _, team := range teams {
		coverage := make(map[string]int)
		for _, m := range team.Members {
			for _, skill := range m.Skills {
				if _, seen := analysis.SkillDistribution[skill]; !seen {
					order = append(order, skill)
				}
				analysis.SkillDistribution[skill]++
				coverage[skill]++
				total++
			}
		}
		score := s.Score(team.Members)
		scoreSum += score
		analysis.Teams = append(analysis.Teams, ScoredTeam{
			Team:               team,
			SkillCoverage:      coverage,
			CompatibilityScore: score,
		})
	}

	ranked := make([]SkillCount, 0, len(order))
	for _, skill := range order {
		count := analysis.SkillDistribution[skill]
		ranked = append(ranked, SkillCount{
			Skill:      skill,
			Count:      count,
			Percentage: roundTo(float64(count)/float64(total)*100, 1),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topSkillsLimit {
		ranked = ranked[:topSkillsLimit]
	}
	analysis.TopSkills = ranked

	for _, st := range analysis.Teams {
		row := TeamSkills{
			TeamName:           st.Name,
			MemberCount:        len(st.Members),
			Skills:             make(map[string]int, len(order)),
			CompatibilityScore: st.CompatibilityScore,
		}
		// every row spans the global skill set so missing skills read as 0
		for _, skill := range order {
			n := 0
			for _, m := range st.Members {
				if m.HasSkill(skill) {
					n++
				}
			}
			row.Skills[skill] = n
		}
		row.UniqueSkills = len(st.SkillCoverage)
		for _, c := range st.SkillCoverage {
			row.TotalSkills += c
		}
		analysis.TeamMatrix = append(analysis.TeamMatrix, row)
	}

	if len(teams) > 0 {
		analysis.AverageSkillsPerTeam = float64(total) / float64(len(teams))
		analysis.AverageCompatibility = float64(scoreSum) / float64(len(teams))
	}
	return analysis
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
