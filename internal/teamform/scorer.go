// Package teamform scores hackathon teams, aggregates their skill coverage and
// ranks solo participants that could complete a team.
package teamform

import (
	"math"

	"devimpact/internal/config"
	"devimpact/internal/domain"
)

const (
	maxScore = 100
	minScore = 0
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithConfig replaces the normalizing constants and weights. Non-positive
// normalizers and team sizes are ignored so the defaults stay in effect, and
// the default weights are kept when all four weights are zero.
func WithConfig(cfg config.ScoringConfig) Option {
	return func(s *Scorer) {
		if cfg.SkillsPerMember > 0 {
			s.cfg.SkillsPerMember = cfg.SkillsPerMember
		}
		if cfg.SharedSkillsCeiling > 0 {
			s.cfg.SharedSkillsCeiling = cfg.SharedSkillsCeiling
		}
		if cfg.ExperienceLevels > 0 {
			s.cfg.ExperienceLevels = cfg.ExperienceLevels
		}
		if cfg.StudyYears > 0 {
			s.cfg.StudyYears = cfg.StudyYears
		}
		if cfg.MaxTeamSize > 0 {
			s.cfg.MaxTeamSize = cfg.MaxTeamSize
		}
		if cfg.DiversityWeight+cfg.ExperienceWeight+cfg.YearWeight+cfg.ComplementWeight > 0 {
			s.cfg.DiversityWeight = cfg.DiversityWeight
			s.cfg.ExperienceWeight = cfg.ExperienceWeight
			s.cfg.YearWeight = cfg.YearWeight
			s.cfg.ComplementWeight = cfg.ComplementWeight
		}
	}
}

// WithMaxTeamSize sets the size at which a team counts as complete.
func WithMaxTeamSize(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.cfg.MaxTeamSize = n
		}
	}
}

// Breakdown holds the four normalized sub-scores of a team.
type Breakdown struct {
	Diversity       float64 `json:"diversity"`
	Experience      float64 `json:"experience"`
	Year            float64 `json:"year"`
	Complementarity float64 `json:"complementarity"`
}

// Scorer computes compatibility scores. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer with the stock constants, then applies opts.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{cfg: config.DefaultScoringConfig()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxTeamSize returns the number of members that completes a team.
func (s *Scorer) MaxTeamSize() int {
	return s.cfg.MaxTeamSize
}

// Score returns the compatibility of members as an integer in [0,100].
// An empty member list scores 0.
func (s *Scorer) Score(members []domain.Participant) int {
	if len(members) == 0 {
		return 0
	}
	b := s.Breakdown(members)
	raw := 100 * (s.cfg.DiversityWeight*b.Diversity +
		s.cfg.ExperienceWeight*b.Experience +
		s.cfg.YearWeight*b.Year +
		s.cfg.ComplementWeight*b.Complementarity)

	// half-up rounding, matching the scores already shown to organizers
	score := int(math.Floor(raw + 0.5))
	if score > maxScore {
		return maxScore
	}
	if score < minScore {
		return minScore
	}
	return score
}

// Breakdown computes the sub-scores without weighting them. Diversity and
// complementarity are left unclamped.
func (s *Scorer) Breakdown(members []domain.Participant) Breakdown {
	n := len(members)
	if n == 0 {
		return Breakdown{}
	}

	skillSets := make([]map[string]struct{}, n)
	distinct := make(map[string]struct{})
	years := make(map[domain.Year]struct{})
	levels := 0
	for i, m := range members {
		skillSets[i] = skillSet(m.Skills)
		for skill := range skillSets[i] {
			distinct[skill] = struct{}{}
		}
		years[m.Year] = struct{}{}
		levels += m.Experience.Level()
	}

	var b Breakdown
	b.Diversity = float64(len(distinct)) / (float64(n) * s.cfg.SkillsPerMember)
	b.Experience = math.Min(float64(levels)/float64(n)/s.cfg.ExperienceLevels, 1)
	b.Year = float64(len(years)) / s.cfg.StudyYears

	overlap := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for skill := range skillSets[i] {
				if _, ok := skillSets[j][skill]; ok {
					overlap++
				}
			}
		}
	}
	pairs := float64(n*(n-1)) / 2
	if ceiling := pairs * s.cfg.SharedSkillsCeiling; ceiling > 0 {
		b.Complementarity = 1 - float64(overlap)/ceiling
	}
	return b
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}
