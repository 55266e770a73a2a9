package teamform_test

import (
	"testing"

	"devimpact/internal/config"
	"devimpact/internal/domain"
	"devimpact/internal/teamform"
	. "github.com/smartystreets/goconvey/convey"
)

func member(id string, exp domain.Experience, year domain.Year, skills ...string) domain.Participant {
	return domain.Participant{
		ID:         id,
		FullName:   "Member " + id,
		Email:      id + "@example.com",
		Year:       year,
		Experience: exp,
		Skills:     skills,
		Status:     domain.StatusPending,
	}
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with the stock constants", t, func() {
		scorer := teamform.NewScorer()

		Convey("When the team has no members", func() {
			Convey("Then the score is 0", func() {
				So(scorer.Score(nil), ShouldEqual, 0)
				So(scorer.Score([]domain.Participant{}), ShouldEqual, 0)
			})
		})

		Convey("When scoring the Alpha team", func() {
			alpha := []domain.Participant{
				member("1", domain.ExperienceBeginner, domain.YearL1, "Web"),
				member("2", domain.ExperienceAdvanced, domain.YearL2, "AI"),
			}

			Convey("Then the score is 61", func() {
				So(scorer.Score(alpha), ShouldEqual, 61)
			})

			Convey("And the sub-scores match the formula", func() {
				b := scorer.Breakdown(alpha)
				So(b.Diversity, ShouldAlmostEqual, 0.2, 1e-9)
				So(b.Experience, ShouldAlmostEqual, 2.0/3.0, 1e-9)
				So(b.Year, ShouldAlmostEqual, 2.0/3.0, 1e-9)
				So(b.Complementarity, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When the member order changes", func() {
			a := member("a", domain.ExperienceBeginner, domain.YearL1, "Web", "Design")
			b := member("b", domain.ExperienceIntermediate, domain.YearL1, "Web", "Mobile")
			c := member("c", domain.ExperienceAdvanced, domain.YearL3, "AI", "Design", "Cloud")

			Convey("Then the score is the same", func() {
				first := scorer.Score([]domain.Participant{a, b, c})
				So(scorer.Score([]domain.Participant{c, a, b}), ShouldEqual, first)
				So(scorer.Score([]domain.Participant{b, c, a}), ShouldEqual, first)
			})

			Convey("And scoring twice gives the same value", func() {
				team := []domain.Participant{a, b, c}
				So(scorer.Score(team), ShouldEqual, scorer.Score(team))
			})
		})

		Convey("When members have disjoint skills, distinct levels and distinct years", func() {
			team := []domain.Participant{
				member("1", domain.ExperienceBeginner, domain.YearL1, "A", "B"),
				member("2", domain.ExperienceIntermediate, domain.YearL2, "C", "D"),
				member("3", domain.ExperienceAdvanced, domain.YearL3, "E"),
			}
			b := scorer.Breakdown(team)

			Convey("Then complementarity and year diversity are full", func() {
				So(b.Complementarity, ShouldAlmostEqual, 1.0, 1e-9)
				So(b.Year, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("And experience is the average level over three", func() {
				So(b.Experience, ShouldAlmostEqual, 2.0/3.0, 1e-9)
			})
		})

		Convey("When members report at most five skills", func() {
			skills := []string{"Web", "AI", "Mobile", "Cloud", "Design"}
			teams := [][]domain.Participant{
				{member("1", domain.ExperienceAdvanced, domain.YearL1, skills...)},
				{
					member("1", domain.ExperienceAdvanced, domain.YearL1, skills...),
					member("2", domain.ExperienceAdvanced, domain.YearL1, skills...),
					member("3", domain.ExperienceAdvanced, domain.YearL1, skills...),
				},
				{
					member("1", domain.ExperienceBeginner, domain.YearL1),
					member("2", domain.ExperienceBeginner, domain.YearL1),
				},
			}

			Convey("Then every score lies in [0,100]", func() {
				for _, team := range teams {
					score := scorer.Score(team)
					So(score, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})

		Convey("When a member has an unknown experience level", func() {
			team := []domain.Participant{
				member("1", domain.Experience("Guru"), domain.YearL1, "Web"),
				member("2", domain.ExperienceAdvanced, domain.YearL2, "AI"),
			}

			Convey("Then it contributes no experience", func() {
				So(scorer.Breakdown(team).Experience, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When a member has no skills", func() {
			team := []domain.Participant{{ID: "1", Experience: domain.ExperienceBeginner, Year: domain.YearL1}}

			Convey("Then scoring does not fail", func() {
				So(scorer.Score(team), ShouldBeBetweenOrEqual, 0, 100)
			})
		})
	})
}

func TestScorer_WithConfig(t *testing.T) {
	Convey("Given a scorer with custom normalizers", t, func() {
		cfg := config.DefaultScoringConfig()
		cfg.SkillsPerMember = 1
		scorer := teamform.NewScorer(teamform.WithConfig(cfg))

		Convey("Then diversity uses the new constant", func() {
			team := []domain.Participant{member("1", domain.ExperienceBeginner, domain.YearL1, "Web")}
			So(scorer.Breakdown(team).Diversity, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("And zero normalizers keep their defaults", func() {
			zero := cfg
			zero.StudyYears = 0
			s := teamform.NewScorer(teamform.WithConfig(zero))
			team := []domain.Participant{member("1", domain.ExperienceBeginner, domain.YearL1)}
			So(s.Breakdown(team).Year, ShouldAlmostEqual, 1.0/3.0, 1e-9)
		})
	})

	Convey("Given a scorer built from an empty config", t, func() {
		scorer := teamform.NewScorer(teamform.WithConfig(config.ScoringConfig{}))

		Convey("Then the stock constants and weights apply", func() {
			alpha := []domain.Participant{
				member("1", domain.ExperienceBeginner, domain.YearL1, "Web"),
				member("2", domain.ExperienceAdvanced, domain.YearL2, "AI"),
			}
			So(scorer.Score(alpha), ShouldEqual, 61)
			So(scorer.MaxTeamSize(), ShouldEqual, 3)
		})
	})

	Convey("Given a scorer with only the year weight set", t, func() {
		cfg := config.ScoringConfig{YearWeight: 1}
		scorer := teamform.NewScorer(teamform.WithConfig(cfg))

		Convey("Then the other weights are taken as zero", func() {
			team := []domain.Participant{
				member("1", domain.ExperienceBeginner, domain.YearL1, "Web"),
				member("2", domain.ExperienceBeginner, domain.YearL2, "Web"),
				member("3", domain.ExperienceBeginner, domain.YearL3, "Web"),
			}
			So(scorer.Score(team), ShouldEqual, 100)
		})
	})
}
