package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/overlay"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newTestSite(t *testing.T) *Site {
	t.Helper()
	contentDir := t.TempDir()
	staticDir := t.TempDir()

	writeFile(t, contentDir, "index.md", "---\ntitle: Welcome\n---\nBuilding the future of AI, together.\n")
	writeFile(t, contentDir, "about.md", "---\ntitle: About Us\n---\nWe are a club.\n")
	writeFile(t, contentDir, "code-of-conduct.md", "Be kind.\n")

	writeFile(t, staticDir, "members.csv", "id,name,role,dept,skills,imageUrl\n"+
		"1,Aravind Kumar,Lead,AI Labs,Go;ML,a.png\n"+
		"2,Priya Rajesh,Researcher,Data,NLP,p.png\n")
	writeFile(t, staticDir, "core_team.csv", "Name,Role,ImageUrl,LinkedinUrl\nMeera S,President,m.png,\n")
	writeFile(t, staticDir, "community_posts.csv", strings.Join(community.Columns, ",")+"\n"+
		`100,Asha,,2 hours ago,Hello club,3,0,[]`+"\n")
	writeFile(t, staticDir, "events.csv", "id,title,date,type,time,location,description,imageUrl\n"+
		"1,Intro to ML,2024-03-01,Workshop,10:00 AM,Lab 3,First workshop,\n")
	writeFile(t, staticDir, "site.css", "body { margin: 0; }\n")

	s, err := New(Options{
		Config: config.Config{
			SiteTitle:  "AI Club",
			ContentDir: contentDir,
			StaticDir:  staticDir,
		},
		Data:    &model.SiteData{Nav: []model.NavItem{{Title: "About", Path: "/about"}}},
		Fetcher: content.DirLoader{Dir: staticDir},
		Storage: overlay.NewMemoryStorage(),
		Now:     func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRouteTable(t *testing.T) {
	s := newTestSite(t)

	for _, path := range []string{"/", "/about", "/members", "/community", "/leaderboard", "/events", "/calendar", "/code-of-conduct"} {
		assert.True(t, s.Table.Has(path), path)
	}
	// Listed pages without a markdown file are left out.
	assert.False(t, s.Table.Has("/faq"))
	assert.Equal(t, "/", s.Table.Fallback())
}

func TestPages(t *testing.T) {
	h := newTestSite(t).Handler()

	t.Run("full document", func(t *testing.T) {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, "/about", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, rec.Body.String(), "We are a club.")
		assert.Contains(t, rec.Body.String(), `href="#/about"`)
	})

	t.Run("partial", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		req.Header.Set(router.PartialHeader, "true")
		rec := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Equal(t, "About Us", rec.Header().Get(router.TitleHeader))
	})

	t.Run("unknown path renders home", func(t *testing.T) {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Building the future of AI")
		assert.Contains(t, rec.Body.String(), "Meera S")
	})

	t.Run("trailing slash", func(t *testing.T) {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, "/about/", nil))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/about", rec.Header().Get("Location"))
	})
}

func TestStaticFiles(t *testing.T) {
	h := newTestSite(t).Handler()

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/members.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aravind Kumar")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/members.csv", nil)
	req.Header.Set("If-None-Match", etag)
	rec = do(t, h, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestCommunityActions(t *testing.T) {
	s := newTestSite(t)
	h := s.Handler()

	rec := do(t, h, postForm("/community/posts", url.Values{"author": {"Ravi"}, "content": {"  "}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, postForm("/community/posts", url.Values{"author": {"Ravi Kumar"}, "content": {"First post"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/community", rec.Header().Get("Location"))

	posts := s.Feed.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "First post", posts[0].Content)
	assert.Equal(t, int64(100), posts[1].ID)
	id := posts[0].ID

	rec = do(t, h, postForm("/community/posts/100/like", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 4, s.Feed.Posts()[1].Likes)

	rec = do(t, h, postForm("/community/posts/42/like", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, postForm("/community/posts/abc/like", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, postForm("/community/posts/100/comments", url.Values{"content": {""}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, postForm("/community/posts/100/comments", url.Values{"content": {"Welcome!"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, s.Feed.Posts()[1].CommentsCount)
	assert.Equal(t, "Anonymous", s.Feed.Posts()[1].Comments[0].AuthorName)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/community/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="community_posts.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(community.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], strconv.FormatInt(id, 10)+","))
}

func TestMemberSearch(t *testing.T) {
	h := newTestSite(t).Handler()

	req := postForm("/members/search", url.Values{"q": {"nlp"}})
	req.Header.Set(router.PartialHeader, "true")
	rec := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Priya Rajesh")
	assert.NotContains(t, rec.Body.String(), "Aravind Kumar")
	assert.Equal(t, "Members", rec.Header().Get(router.TitleHeader))

	rec = do(t, h, postForm("/members/search", url.Values{"q": {"go"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "Aravind Kumar")
}

func TestToggleTheme(t *testing.T) {
	h := newTestSite(t).Handler()

	req := postForm("/theme", nil)
	req.Header.Set("Referer", "http://example.com/members")
	req.Host = "example.com"
	rec := do(t, h, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/members", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, model.ThemeCookie, cookies[0].Name)
	assert.Equal(t, model.ThemeDark, cookies[0].Value)

	req = httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(cookies[0])
	rec = do(t, h, req)
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="dark">`)

	req = postForm("/theme", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("Referer", "https://elsewhere.example.org/phish")
	rec = do(t, h, req)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, model.ThemeLight, rec.Result().Cookies()[0].Value)
}

func TestCalendarMonths(t *testing.T) {
	s := newTestSite(t)
	h := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/calendar/2024-03", nil)
	req.Header.Set(router.PartialHeader, "true")
	rec := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Our Calendar", rec.Header().Get(router.TitleHeader))
	assert.Contains(t, rec.Body.String(), "March 2024")
	assert.Contains(t, rec.Body.String(), "Intro to ML")
	assert.Contains(t, rec.Body.String(), `href="#/calendar/2024-04"`)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/calendar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "March 2025")

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/calendar/someday", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Building the future of AI")

	months := s.CalendarMonths(context.Background())
	assert.Len(t, months, 13)
	assert.Contains(t, months, "/calendar/2024-03")
	assert.Contains(t, months, "/calendar/2025-03")
}
