package site

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/calendar"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
)

const communityPath = "/community"

const themeMaxAge = 365 * 24 * time.Hour

func themeState(r *http.Request) *model.AppState {
	if c, err := r.Cookie(model.ThemeCookie); err == nil {
		return model.NewAppState(c.Value)
	}
	return model.NewAppState("")
}

// ensureFeed fetches the canonical posts before the first mutation, so a new
// post is ordered among them on the redirect that follows.
func (s *Site) ensureFeed(r *http.Request) {
	if s.Feed.State() != content.StateLoading {
		return
	}
	if _, err := s.Feed.Load(r.Context()); err != nil {
		log.Errorf("%v", err)
	}
}

func (s *Site) submitPost(w http.ResponseWriter, r *http.Request) {
	s.ensureFeed(r)
	post, err := s.Feed.Submit(r.FormValue("author"), r.FormValue("content"))
	if err != nil {
		s.feedError(w, err)
		return
	}
	log.Infof("new community post %d by %s", post.ID, post.Author.Name)
	http.Redirect(w, r, communityPath, http.StatusSeeOther)
}

func (s *Site) likePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}
	s.ensureFeed(r)
	if _, err := s.Feed.Like(id); err != nil {
		s.feedError(w, err)
		return
	}
	http.Redirect(w, r, communityPath, http.StatusSeeOther)
}

func (s *Site) addComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}
	s.ensureFeed(r)
	if _, err := s.Feed.AddComment(id, r.FormValue("author"), r.FormValue("content")); err != nil {
		s.feedError(w, err)
		return
	}
	http.Redirect(w, r, communityPath, http.StatusSeeOther)
}

func (s *Site) feedError(w http.ResponseWriter, err error) {
	switch errors.Cause(err) {
	case community.ErrEmptyPost, community.ErrEmptyComment:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case community.ErrPostNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("community: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) exportPosts(w http.ResponseWriter, r *http.Request) {
	s.ensureFeed(r)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+community.ExportFilename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	if err := s.Feed.Export(w); err != nil {
		log.Errorf("export: %v", err)
	}
}

// calendarMonth serves /calendar/YYYY-MM; any other key is an unknown page.
func (s *Site) calendarMonth(pageHandler http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, ok := calendar.ParseMonthKey(r.PathValue("month"))
		if !ok {
			pageHandler.ServeHTTP(w, r)
			return
		}
		body, err := s.calendar.MonthBody(r.Context(), year, month)
		if err != nil {
			log.Errorf("calendar %s: %v", r.PathValue("month"), err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.respond(w, r, "/calendar", body)
	}
}

func (s *Site) searchMembers(w http.ResponseWriter, r *http.Request) {
	body, err := s.members.Search(r.Context(), r.FormValue("q"))
	if err != nil {
		log.Errorf("member search: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.respond(w, r, "/members", body)
}

func (s *Site) toggleTheme(w http.ResponseWriter, r *http.Request) {
	state := themeState(r)
	state.ToggleTheme()
	http.SetCookie(w, &http.Cookie{
		Name:     model.ThemeCookie,
		Value:    state.Theme,
		Path:     "/",
		MaxAge:   int(themeMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo is the local path of the referring page, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	return ref.Path
}
