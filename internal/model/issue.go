// Package model contains domain types for the ghkeep application.
// These types are independent of any external GitHub library.
package model

import "time"

// Issue states as reported by the GitHub API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Issue is a snapshot of a GitHub issue as returned by the API client,
// including its full comment thread.
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"` // open, closed
	Labels    []string   `json:"labels"`
	Author    string     `json:"author"`
	Assignees []string   `json:"assignees"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	URL       string     `json:"url"`
	Milestone string     `json:"milestone,omitempty"`
	Comments  []Comment  `json:"comments"`
}

// Comment is a single issue comment. Comments are immutable once fetched;
// only the parent issue's fingerprint incorporates them.
type Comment struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository describes a repository the authenticated user can access.
type Repository struct {
	FullName    string `json:"fullName"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	OpenIssues  int    `json:"openIssues"`
	URL         string `json:"url"`
}
