package domain

import (
	"strings"
	"time"
)

// Article is the read-only input handed to the analysis engine by the
// ingestion collaborator. The engine never mutates it.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	Language    string    `json:"language,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// IsEmpty reports whether the article carries no analyzable text.
func (a Article) IsEmpty() bool {
	return strings.TrimSpace(a.Title) == "" &&
		strings.TrimSpace(a.Summary) == "" &&
		strings.TrimSpace(a.Content) == ""
}
