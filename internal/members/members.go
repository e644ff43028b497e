// Package members reads the member directory and the core team list.
package members

import (
	"strings"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
)

const (
	ResourcePath         = "members.csv"
	CoreTeamResourcePath = "core_team.csv"

	skillSeparator = ";"
)

type Member struct {
	ID       string
	Name     string
	Role     string
	Dept     string
	Skills   []string
	ImageURL string
}

// CoreMember is a core team entry shown on the home page.
type CoreMember struct {
	Name        string
	Role        string
	ImageURL    string
	LinkedinURL string
}

func MemberFromRow(row content.Row) (Member, bool) {
	return Member{
		ID:       row["id"],
		Name:     row["name"],
		Role:     row["role"],
		Dept:     row["dept"],
		Skills:   content.SplitList(row["skills"], skillSeparator),
		ImageURL: row["imageUrl"],
	}, true
}

// CoreMemberFromRow reads core_team.csv, whose headers are capitalized.
func CoreMemberFromRow(row content.Row) (CoreMember, bool) {
	return CoreMember{
		Name:        row["Name"],
		Role:        row["Role"],
		ImageURL:    row["ImageUrl"],
		LinkedinURL: row["LinkedinUrl"],
	}, true
}

// Filter keeps members whose name, role or any skill contains term, ignoring
// case. An empty term keeps everyone.
func Filter(members []Member, term string) []Member {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return members
	}
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if matches(m, term) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m Member, term string) bool {
	if strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(strings.ToLower(m.Role), term) {
		return true
	}
	for _, s := range m.Skills {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}
