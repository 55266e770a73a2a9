package domain

// Team is a named group of participants sharing a team name. Teams are
// derived from registrations and never stored on their own.
type Team struct {
	Name    string        `json:"name"`
	Status  Status        `json:"status"`
	Members []Participant `json:"members"`
}

// MemberCount returns the number of members
func (t Team) MemberCount() int {
	return len(t.Members)
}

// TeamStats summarizes the current set of teams
type TeamStats struct {
	Total        int     `json:"total"`
	Complete     int     `json:"complete"`
	Incomplete   int     `json:"incomplete"`
	Approved     int     `json:"approved"`
	Pending      int     `json:"pending"`
	Rejected     int     `json:"rejected"`
	TotalMembers int     `json:"totalMembers"`
	AvgTeamSize  float64 `json:"avgTeamSize"`
}
