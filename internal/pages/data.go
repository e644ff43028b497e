package pages

import (
	"context"
	"html/template"
	"time"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/calendar"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/leaderboard"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/members"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
)

// Home is the landing page: the index markdown plus the core team.
type Home struct {
	templates *Templates
	content   *Markdown
	team      *content.Source[members.CoreMember]
}

func NewHome(templates *Templates, md *Markdown, fetcher content.Fetcher) *Home {
	return &Home{
		templates: templates,
		content:   md,
		team:      content.NewSource(fetcher, members.CoreTeamResourcePath, members.CoreMemberFromRow),
	}
}

func (p *Home) Title() string {
	if item, ok := p.content.Get("/"); ok {
		return item.Title
	}
	return "Home"
}

func (p *Home) Body(ctx context.Context) (template.HTML, error) {
	team, _ := p.team.Refresh(ctx)
	item, _ := p.content.Get("/")
	return p.templates.Execute("home", struct {
		Item *model.ContentItem
		Team []members.CoreMember
	}{Item: item, Team: team})
}

// Members is the searchable member directory.
type Members struct {
	templates *Templates
	source    *content.Source[members.Member]
}

func NewMembers(templates *Templates, fetcher content.Fetcher) *Members {
	return &Members{
		templates: templates,
		source:    content.NewSource(fetcher, members.ResourcePath, members.MemberFromRow),
	}
}

func (p *Members) Title() string { return "Members" }

func (p *Members) Body(ctx context.Context) (template.HTML, error) {
	return p.Search(ctx, "")
}

// Search renders the directory narrowed to members matching term.
func (p *Members) Search(ctx context.Context, term string) (template.HTML, error) {
	list, state := p.source.Refresh(ctx)
	return p.templates.Execute("members", struct {
		Header  Header
		Term    string
		Loading bool
		Members []members.Member
	}{
		Header:  Header{Title: "Our Squad", Subtitle: "Meet the visionaries, builders, and innovators driving the club."},
		Term:    term,
		Loading: state != content.StateLoaded && len(list) == 0,
		Members: members.Filter(list, term),
	})
}

// Community is the feed page with the post form and admin tools.
type Community struct {
	templates *Templates
	feed      *community.Feed
}

func NewCommunity(templates *Templates, feed *community.Feed) *Community {
	return &Community{templates: templates, feed: feed}
}

func (p *Community) Title() string { return "Community Hub" }

func (p *Community) Body(ctx context.Context) (template.HTML, error) {
	if _, err := p.feed.Load(ctx); err != nil {
		log.Errorf("%v", err)
	}
	posts := p.feed.Posts()
	return p.templates.Execute("community", struct {
		Header         Header
		Loading        bool
		Posts          []community.Post
		Stats          community.Stats
		ExportFilename string
	}{
		Header:         Header{Title: "Community Hub", Subtitle: "Engage in discussions, share ideas, and collaborate with fellow AI enthusiasts."},
		Loading:        p.feed.State() != content.StateLoaded && len(posts) == 0,
		Posts:          posts,
		Stats:          p.feed.Stats(),
		ExportFilename: community.ExportFilename,
	})
}

// Leaderboard shows one board per category; the page switches between them
// client-side.
type Leaderboard struct {
	templates *Templates
	source    *content.Source[leaderboard.Entry]
}

func NewLeaderboard(templates *Templates, fetcher content.Fetcher) *Leaderboard {
	return &Leaderboard{
		templates: templates,
		source:    content.NewSource(fetcher, leaderboard.ResourcePath, leaderboard.EntryFromRow),
	}
}

func (p *Leaderboard) Title() string { return "Leaderboard" }

func (p *Leaderboard) Body(ctx context.Context) (template.HTML, error) {
	entries, state := p.source.Refresh(ctx)
	boards := make([]leaderboard.Board, 0, len(leaderboard.Categories))
	for _, cat := range leaderboard.Categories {
		boards = append(boards, leaderboard.NewBoard(entries, cat))
	}
	return p.templates.Execute("leaderboard", struct {
		Header  Header
		Loading bool
		Boards  []leaderboard.Board
	}{
		Header:  Header{Title: "Leaderboard", Subtitle: "Recognizing the visionaries and contributors shaping the future of AI."},
		Loading: state != content.StateLoaded && len(entries) == 0,
		Boards:  boards,
	})
}

// Events lists upcoming events, with a countdown to the next one, and past
// events.
type Events struct {
	templates *Templates
	source    *content.Source[calendar.Event]
	now       func() time.Time
}

func NewEvents(templates *Templates, source *content.Source[calendar.Event], now func() time.Time) *Events {
	return &Events{templates: templates, source: source, now: now}
}

func (p *Events) Title() string { return "Events" }

func (p *Events) Body(ctx context.Context) (template.HTML, error) {
	events, state := p.source.Refresh(ctx)
	now := p.now()
	upcoming := calendar.Upcoming(events, now)
	var countdown *calendar.Countdown
	if len(upcoming) > 0 {
		c := calendar.CountdownTo(now, upcoming[0].Start(now.Location()))
		countdown = &c
	}
	return p.templates.Execute("events", struct {
		Header    Header
		Loading   bool
		Upcoming  []calendar.Event
		Past      []calendar.Event
		Countdown *calendar.Countdown
	}{
		Header:    Header{Title: "Events", Subtitle: "Join our workshops, hackathons, and tech talks to learn, build, and connect."},
		Loading:   state != content.StateLoaded && len(events) == 0,
		Upcoming:  upcoming,
		Past:      calendar.Past(events, now),
		Countdown: countdown,
	})
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar shows one month at a time, the current one by default. Other
// months live at /calendar/YYYY-MM.
type Calendar struct {
	templates *Templates
	source    *content.Source[calendar.Event]
	now       func() time.Time
}

func NewCalendar(templates *Templates, source *content.Source[calendar.Event], now func() time.Time) *Calendar {
	return &Calendar{templates: templates, source: source, now: now}
}

func (p *Calendar) Title() string { return "Our Calendar" }

func (p *Calendar) Body(ctx context.Context) (template.HTML, error) {
	now := p.now()
	return p.MonthBody(ctx, now.Year(), now.Month())
}

// MonthPath is the page path of a month key.
func MonthPath(key string) string {
	return "/calendar/" + key
}

// MonthKeys lists the months worth publishing: every month from the oldest
// to the newest event, and the current one.
func (p *Calendar) MonthKeys(ctx context.Context) []string {
	events, _ := p.source.Refresh(ctx)
	return calendar.MonthKeys(events, p.now())
}

// MonthPage is the calendar fixed on one month.
func (p *Calendar) MonthPage(year int, month time.Month) router.Page {
	return &calendarMonth{calendar: p, year: year, month: month}
}

// MonthBody renders a month. The selected day is today inside the current
// month, otherwise the first day with events; the day list switches
// client-side.
func (p *Calendar) MonthBody(ctx context.Context, year int, month time.Month) (template.HTML, error) {
	events, state := p.source.Refresh(ctx)
	now := p.now()
	m := calendar.NewMonth(year, month, events)

	today, selected := 0, 1
	if m.Contains(now) {
		today, selected = now.Day(), now.Day()
	} else {
		for _, d := range m.DayNumbers() {
			if len(m.EventsOn(d)) > 0 {
				selected = d
				break
			}
		}
	}

	return p.templates.Execute("calendar", struct {
		Header   Header
		Loading  bool
		Weekdays []string
		Month    calendar.Month
		Today    int
		Selected int
		Prev     template.HTML
		Next     template.HTML
	}{
		Header:   Header{Title: "Our Calendar", Subtitle: "Stay in sync with our workshops, hackathons, and community gatherings."},
		Loading:  state != content.StateLoaded && len(events) == 0,
		Weekdays: weekdays,
		Month:    m,
		Today:    today,
		Selected: selected,
		Prev:     router.Link{To: MonthPath(m.PrevKey()), Class: "month-nav prev", Children: "Previous"}.HTML(),
		Next:     router.Link{To: MonthPath(m.NextKey()), Class: "month-nav next", Children: "Next"}.HTML(),
	})
}

type calendarMonth struct {
	calendar *Calendar
	year     int
	month    time.Month
}

func (p *calendarMonth) Title() string { return p.calendar.Title() }

func (p *calendarMonth) Body(ctx context.Context) (template.HTML, error) {
	return p.calendar.MonthBody(ctx, p.year, p.month)
}
