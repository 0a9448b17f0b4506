package store

import (
	"strings"
	"testing"
	"time"

	"github.com/ghkeep/ghkeep/internal/model"
)

func TestRenderDocument(t *testing.T) {
	closed := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	issue := &model.Issue{
		Number:    7,
		Title:     "Panic in parser",
		Body:      "Stack trace attached.",
		State:     model.StateClosed,
		Labels:    []string{"bug", "parser"},
		Author:    "alice",
		Assignees: []string{"bob"},
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		ClosedAt:  &closed,
		URL:       "https://github.com/acme/widgets/issues/7",
		Milestone: "v1.0",
		Comments: []model.Comment{
			{Author: "bob", Body: "Reproduced.", CreatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		},
	}

	doc := renderDocument(issue)

	if !strings.HasPrefix(doc, "---\n") {
		t.Fatal("document must start with frontmatter delimiter")
	}
	for _, want := range []string{
		"number: 7",
		"title: Panic in parser",
		"state: closed",
		"author: alice",
		"url: https://github.com/acme/widgets/issues/7",
		"closed_at: \"2024-02-01T09:00:00Z\"",
		"milestone: v1.0",
		"\n---\n\n# Panic in parser\n",
		"Stack trace attached.",
		"## Comments",
		"### Comment by bob on 2024-01-02T10:00:00Z",
		"Reproduced.",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderDocumentOmitsOptionalFields(t *testing.T) {
	issue := &model.Issue{
		Number: 8,
		Title:  "Open issue",
		State:  model.StateOpen,
	}

	doc := renderDocument(issue)

	if strings.Contains(doc, "closed_at:") {
		t.Fatal("open issue must not have closed_at in frontmatter")
	}
	if strings.Contains(doc, "milestone:") {
		t.Fatal("issue without milestone must not have milestone in frontmatter")
	}
	if strings.Contains(doc, "## Comments") {
		t.Fatal("issue without comments must not have a comments section")
	}
}

func TestRenderDocumentBodyVerbatim(t *testing.T) {
	issue := &model.Issue{
		Number: 9,
		Title:  "Formatting",
		State:  model.StateOpen,
		Body:   "Line one\n\n```go\nfunc main() {}\n```\n\n- item",
	}

	doc := renderDocument(issue)
	if !strings.Contains(doc, issue.Body) {
		t.Fatal("body must appear verbatim in the document")
	}
}
