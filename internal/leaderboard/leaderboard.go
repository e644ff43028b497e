// Package leaderboard ranks members by category score.
package leaderboard

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
)

const ResourcePath = "leaderboard.csv"

type Category string

const (
	Overall  Category = "Overall Points"
	Projects Category = "Project Contributions"
	Help     Category = "Community Help"
)

// Categories in the order the page offers them.
var Categories = []Category{Overall, Projects, Help}

var columns = map[Category]string{
	Overall:  "overall",
	Projects: "projects",
	Help:     "community",
}

// Slug is a stable HTML id for the category.
func (c Category) Slug() string {
	return columns[c]
}

type Entry struct {
	ID        int
	Name      string
	Role      string
	AvatarURL string
	Scores    map[Category]int
}

func EntryFromRow(row content.Row) (Entry, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(row["id"]))
	if err != nil {
		return Entry{}, false
	}
	e := Entry{
		ID:        id,
		Name:      row["name"],
		Role:      row["role"],
		AvatarURL: row["avatarUrl"],
		Scores:    make(map[Category]int, len(columns)),
	}
	for cat, col := range columns {
		score, err := strconv.Atoi(strings.TrimSpace(row[col]))
		if err != nil {
			score = 0
		}
		e.Scores[cat] = score
	}
	return e, true
}

// Rank returns the entries sorted by score in cat, highest first. Ties keep
// their input order.
func Rank(entries []Entry, cat Category) []Entry {
	ranked := append([]Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores[cat] > ranked[j].Scores[cat]
	})
	return ranked
}

type Standing struct {
	Entry
	Rank  int
	Score int
}

// Board is one category view: a podium and the list below it.
type Board struct {
	Category Category
	// Podium is in display order: 2nd, 1st, 3rd.
	Podium   []Standing
	Rest     []Standing
	MaxScore int
}

func NewBoard(entries []Entry, cat Category) Board {
	ranked := Rank(entries, cat)
	standings := make([]Standing, len(ranked))
	for i, e := range ranked {
		standings[i] = Standing{Entry: e, Rank: i + 1, Score: e.Scores[cat]}
	}

	b := Board{Category: cat, MaxScore: 1}
	top := standings
	if len(top) > 3 {
		top = standings[:3]
		b.Rest = standings[3:]
	}
	for _, i := range []int{1, 0, 2} {
		if i < len(top) {
			b.Podium = append(b.Podium, top[i])
		}
	}
	if len(standings) > 0 && standings[0].Score > 0 {
		b.MaxScore = standings[0].Score
	}
	return b
}

// Percent is the width of the score bar relative to the leader.
func (b Board) Percent(s Standing) float64 {
	return float64(s.Score) / float64(b.MaxScore) * 100
}

var printer = message.NewPrinter(language.English)

// FormatScore groups thousands, e.g. 2,450.
func FormatScore(n int) string {
	return printer.Sprintf("%d", n)
}
