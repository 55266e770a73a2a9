package service

import (
	"devimpact/internal/domain"
	"devimpact/pkg/logger"
)

// groupTeams splits registrations into named teams and the solo pool. Teams
// keep first-seen order and take their status from the first member seen.
// Rows that fail validation are logged and left out.
func groupTeams(regs []*domain.Registration, log *logger.Logger) ([]domain.Team, []domain.Participant) {
	teams := []domain.Team{}
	solo := []domain.Participant{}
	index := make(map[string]int)

	for _, reg := range regs {
		p, err := reg.ToParticipant()
		if err != nil {
			log.WithError(err).Warn("Skipping invalid registration")
			continue
		}

		if p.TeamName != nil {
			name := *p.TeamName
			i, ok := index[name]
			if !ok {
				i = len(teams)
				index[name] = i
				teams = append(teams, domain.Team{Name: name, Status: p.Status})
			}
			teams[i].Members = append(teams[i].Members, p)
			continue
		}

		if reg.Available() {
			solo = append(solo, p)
		}
	}
	return teams, solo
}

func teamProgress(teams []domain.Team, maxTeamSize int) domain.TeamProgress {
	progress := domain.TeamProgress{Total: len(teams)}
	for _, t := range teams {
		if t.MemberCount() >= maxTeamSize {
			progress.Complete++
		} else {
			progress.Incomplete++
		}
	}
	return progress
}
