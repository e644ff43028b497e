// Package community implements the community feed: posts from the canonical
// CSV merged with posts kept in the local overlay.
package community

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
)

// Columns is the header of the canonical community_posts.csv.
var Columns = []string{
	"id", "authorName", "authorAvatar", "timestamp", "content",
	"likes", "commentsCount", "commentsData",
}

type Author struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type Comment struct {
	ID         int64  `json:"id"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

type Post struct {
	ID            int64     `json:"id"`
	Author        Author    `json:"author"`
	Timestamp     string    `json:"timestamp"`
	Content       string    `json:"content"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"commentsCount"`
	Comments      []Comment `json:"commentsData"`
}

// CommentTotal is what the feed shows next to the comment icon.
func (p Post) CommentTotal() int {
	if len(p.Comments) > 0 {
		return len(p.Comments)
	}
	return p.CommentsCount
}

// PostFromRow converts a canonical CSV row. Rows without a numeric id are
// dropped; bad counters read as zero.
func PostFromRow(row content.Row) (Post, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(row["id"]), 10, 64)
	if err != nil {
		return Post{}, false
	}
	return Post{
		ID: id,
		Author: Author{
			Name:      row["authorName"],
			AvatarURL: row["authorAvatar"],
		},
		Timestamp:     row["timestamp"],
		Content:       row["content"],
		Likes:         atoi(row["likes"]),
		CommentsCount: atoi(row["commentsCount"]),
		Comments:      parseComments(row["commentsData"]),
	}, true
}

// Row converts a post back to the canonical CSV shape.
func (p Post) Row() content.Row {
	comments := p.Comments
	if comments == nil {
		comments = []Comment{}
	}
	data, _ := json.Marshal(comments)
	return content.Row{
		"id":            strconv.FormatInt(p.ID, 10),
		"authorName":    p.Author.Name,
		"authorAvatar":  p.Author.AvatarURL,
		"timestamp":     p.Timestamp,
		"content":       p.Content,
		"likes":         strconv.Itoa(p.Likes),
		"commentsCount": strconv.Itoa(p.CommentsCount),
		"commentsData":  string(data),
	}
}

func parseComments(raw string) []Comment {
	comments := make([]Comment, 0)
	if strings.TrimSpace(raw) == "" || !gjson.Valid(raw) {
		return comments
	}
	result := gjson.Parse(raw)
	if !result.IsArray() {
		return comments
	}
	result.ForEach(func(_, c gjson.Result) bool {
		comments = append(comments, Comment{
			ID:         c.Get("id").Int(),
			AuthorName: c.Get("authorName").String(),
			Content:    c.Get("content").String(),
			Timestamp:  c.Get("timestamp").String(),
		})
		return true
	})
	return comments
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Merge combines canonical posts with locally kept ones. A local post whose
// id is already canonical is dropped; the result is newest first.
func Merge(canonical, local []Post) []Post {
	ids := make(map[int64]struct{}, len(canonical))
	for _, p := range canonical {
		ids[p.ID] = struct{}{}
	}
	merged := make([]Post, 0, len(canonical)+len(local))
	for _, p := range local {
		if _, ok := ids[p.ID]; !ok {
			merged = append(merged, p)
		}
	}
	merged = append(merged, canonical...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ID > merged[j].ID
	})
	return merged
}

// Initials gives up to two upper-case initials for an avatar, "??" when the
// name has none.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	s := []rune(b.String())
	if len(s) == 0 {
		return "??"
	}
	if len(s) > 2 {
		s = s[:2]
	}
	return string(s)
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://placehold.co/128x128/333333/FFFFFF?text=%s", url.QueryEscape(Initials(name)))
}
