// Package hash computes the content fingerprint used for change detection.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/ghkeep/ghkeep/internal/model"
)

// canonicalIssue is the fingerprint input. Fields are declared in sorted
// key order so the JSON encoding is canonical. URL and milestone are
// excluded: they may change without counting as a content change.
type canonicalIssue struct {
	Assignees []string           `json:"assignees"`
	Body      string             `json:"body"`
	Comments  []canonicalComment `json:"comments"`
	Labels    []string           `json:"labels"`
	Number    int                `json:"number"`
	State     string             `json:"state"`
	Title     string             `json:"title"`
	UpdatedAt string             `json:"updated_at"`
}

type canonicalComment struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Fingerprint returns the lowercase hex SHA-256 digest of an issue's
// tracked content. Labels and assignees are sorted before encoding so the
// result is independent of their in-memory order; comments keep their
// chronological order as returned by the API.
func Fingerprint(issue *model.Issue) string {
	c := canonicalIssue{
		Assignees: sortedCopy(issue.Assignees),
		Body:      issue.Body,
		Comments:  make([]canonicalComment, 0, len(issue.Comments)),
		Labels:    sortedCopy(issue.Labels),
		Number:    issue.Number,
		State:     issue.State,
		Title:     issue.Title,
		UpdatedAt: canonicalTime(issue.UpdatedAt),
	}
	for _, cm := range issue.Comments {
		c.Comments = append(c.Comments, canonicalComment{
			Author:    cm.Author,
			Body:      cm.Body,
			CreatedAt: canonicalTime(cm.CreatedAt),
		})
	}

	data, err := json.Marshal(c)
	if err != nil {
		// Only strings, ints and slices of those reach the encoder.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

// canonicalTime normalizes a timestamp to UTC RFC 3339 so the fingerprint
// does not depend on the time zone the API response was decoded in.
func canonicalTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
