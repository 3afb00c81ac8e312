package entities

import "time"

// MentionType distinguishes posts from comments
type MentionType string

const (
	MentionTypePost    MentionType = "post"
	MentionTypeComment MentionType = "comment"
)

// RedditMention represents one collected post or comment
type RedditMention struct {
	ID           string      `json:"id" db:"id"`
	RunID        string      `json:"run_id" db:"run_id"`
	Subreddit    string      `json:"subreddit" db:"subreddit"`
	Type         MentionType `json:"type" db:"type"`
	Title        string      `json:"title" db:"title"`
	Body         string      `json:"body" db:"body"`
	Score        int         `json:"score" db:"score"`
	CommentCount int         `json:"comment_count" db:"comment_count"`
	Permalink    string      `json:"permalink" db:"permalink"`
	PostedAt     time.Time   `json:"posted_at" db:"posted_at"`
}

// FullText returns title and body joined for keyword scanning
func (m *RedditMention) FullText() string {
	if m.Title == "" {
		return m.Body
	}
	if m.Body == "" {
		return m.Title
	}
	return m.Title + " " + m.Body
}
