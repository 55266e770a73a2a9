package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_ToParticipant(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
		check   func(t *testing.T, p Participant)
	}{
		{
			name: "assigned member",
			reg: Registration{
				ID: "r1", FullName: "Amina", Email: "amina@example.com",
				YearOfStudy: StringPtr("L2"), HasTeam: StringPtr(HasTeamYes), TeamName: StringPtr(" Alpha "),
				ExperienceLevel: StringPtr("Advanced"), Skills: []string{"AI", " ", "Web"}, Status: "approved",
			},
			check: func(t *testing.T, p Participant) {
				require.NotNil(t, p.TeamName)
				assert.Equal(t, "Alpha", *p.TeamName)
				assert.Equal(t, YearL2, p.Year)
				assert.Equal(t, ExperienceAdvanced, p.Experience)
				assert.Equal(t, []string{"AI", "Web"}, p.Skills)
				assert.Equal(t, StatusApproved, p.Status)
			},
		},
		{
			name: "null columns become empty values",
			reg:  Registration{ID: "r2", Email: "solo@example.com", Status: "pending"},
			check: func(t *testing.T, p Participant) {
				assert.Nil(t, p.TeamName)
				assert.NotNil(t, p.Skills)
				assert.Empty(t, p.Skills)
				assert.Equal(t, Year(""), p.Year)
			},
		},
		{
			name: "team name without has_team=yes is ignored",
			reg:  Registration{ID: "r3", Email: "x@example.com", Status: "pending", HasTeam: StringPtr(HasTeamForm), TeamName: StringPtr("Beta")},
			check: func(t *testing.T, p Participant) {
				assert.Nil(t, p.TeamName)
			},
		},
		{name: "missing id", reg: Registration{Email: "a@b.c", Status: "pending"}, wantErr: true},
		{name: "missing email", reg: Registration{ID: "r4", Status: "pending"}, wantErr: true},
		{name: "unknown status", reg: Registration{ID: "r5", Email: "a@b.c", Status: "waiting"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.reg.ToParticipant()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestRegistration_Availability(t *testing.T) {
	assert.True(t, (&Registration{}).Available())
	assert.True(t, (&Registration{HasTeam: StringPtr(HasTeamNo)}).Available())
	assert.True(t, (&Registration{HasTeam: StringPtr(HasTeamForm)}).Available())
	assert.False(t, (&Registration{HasTeam: StringPtr(HasTeamYes), TeamName: StringPtr("Alpha")}).Available())
	assert.False(t, (&Registration{HasTeam: StringPtr(HasTeamYes)}).InTeam())
}

func TestEnums(t *testing.T) {
	assert.Equal(t, 1, ExperienceBeginner.Level())
	assert.Equal(t, 3, ExperienceAdvanced.Level())
	assert.Equal(t, 0, Experience("Expert").Level())
	assert.False(t, Year("L4").Valid())

	s, ok := ParseStatus(" Approved ")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)
	_, ok = ParseStatus("done")
	assert.False(t, ok)
}

func validRequest() RegistrationRequest {
	return RegistrationRequest{
		FullName:    "Amina Benali",
		Email:       "amina@example.com",
		YearOfStudy: "L2",
		HasTeam:     HasTeamNo,
		Experience:  "Intermediate",
		Skills:      []string{"Web"},
	}
}

func TestRegistrationRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *RegistrationRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *RegistrationRequest) {}},
		{name: "missing name", mutate: func(r *RegistrationRequest) { r.FullName = "  " }, wantField: "fullName"},
		{name: "missing email", mutate: func(r *RegistrationRequest) { r.Email = "" }, wantField: "email"},
		{name: "malformed email", mutate: func(r *RegistrationRequest) { r.Email = "amina@example" }, wantField: "email"},
		{name: "unknown year", mutate: func(r *RegistrationRequest) { r.YearOfStudy = "M1" }, wantField: "yearOfStudy"},
		{name: "missing has team", mutate: func(r *RegistrationRequest) { r.HasTeam = "" }, wantField: "hasTeam"},
		{name: "team without name", mutate: func(r *RegistrationRequest) {
			r.HasTeam = HasTeamYes
			r.TeamMembers = []string{"Yacine"}
		}, wantField: "teamName"},
		{name: "team without members", mutate: func(r *RegistrationRequest) {
			r.HasTeam = HasTeamYes
			r.TeamName = "Alpha"
			r.TeamMembers = []string{"", " "}
		}, wantField: "teamMembers"},
		{name: "missing experience", mutate: func(r *RegistrationRequest) { r.Experience = "" }, wantField: "experience"},
		{name: "no skills", mutate: func(r *RegistrationRequest) { r.Skills = nil }, wantField: "skills"},
		{name: "other without details", mutate: func(r *RegistrationRequest) { r.Skills = []string{"Web", SkillOther} }, wantField: "otherSkills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			errs := req.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.wantField)
		})
	}
}
