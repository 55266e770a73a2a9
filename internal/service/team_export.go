package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"devimpact/internal/teamform"
)

var teamCSVHeader = []string{
	"Team Name",
	"Status",
	"Member Count",
	"Compatibility Score",
	"Members",
	"Skills",
	"Experience Levels",
	"Study Years",
}

const listSeparator = "; "

// ExportFilename returns the attachment name for a team export made at t
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("teams_%s.csv", t.Format("2006-01-02_15-04"))
}

func (s *teamService) ExportCSV(ctx context.Context, w io.Writer) error {
	overview, err := s.Overview(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(teamCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range overview.Teams {
		if err := cw.Write(teamCSVRow(t)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.logger.WithField("teams", len(overview.Teams)).Info("Teams exported")
	return nil
}

func teamCSVRow(t teamform.ScoredTeam) []string {
	names := make([]string, 0, len(t.Members))
	var skills, levels, years []string
	seen := make(map[string]struct{})
	add := func(list []string, prefix, v string) []string {
		if _, ok := seen[prefix+v]; ok {
			return list
		}
		seen[prefix+v] = struct{}{}
		return append(list, v)
	}

	for _, m := range t.Members {
		names = append(names, m.FullName)
		for _, skill := range m.Skills {
			skills = add(skills, "s:", skill)
		}
		levels = add(levels, "e:", string(m.Experience))
		years = add(years, "y:", string(m.Year))
	}

	score := "N/A"
	if t.CompatibilityScore > 0 {
		score = strconv.Itoa(t.CompatibilityScore)
	}

	return []string{
		t.Name,
		string(t.Status),
		strconv.Itoa(len(t.Members)),
		score,
		strings.Join(names, listSeparator),
		strings.Join(skills, listSeparator),
		strings.Join(levels, listSeparator),
		strings.Join(years, listSeparator),
	}
}
