package store

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ghkeep/ghkeep/internal/model"
)

// frontmatter is the structured header at the top of every issue document.
// Optional fields are omitted rather than emitted empty.
type frontmatter struct {
	Number    int      `yaml:"number"`
	Title     string   `yaml:"title"`
	State     string   `yaml:"state"`
	Labels    []string `yaml:"labels"`
	Author    string   `yaml:"author"`
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Assignees []string `yaml:"assignees"`
	URL       string   `yaml:"url"`
	ClosedAt  string   `yaml:"closed_at,omitempty"`
	Milestone string   `yaml:"milestone,omitempty"`
}

// renderDocument produces the self-contained markdown document for an
// issue: YAML frontmatter, title heading, body verbatim and, when present,
// a comments section in chronological order.
func renderDocument(issue *model.Issue) string {
	fm := frontmatter{
		Number:    issue.Number,
		Title:     issue.Title,
		State:     issue.State,
		Labels:    issue.Labels,
		Author:    issue.Author,
		CreatedAt: formatTime(issue.CreatedAt),
		UpdatedAt: formatTime(issue.UpdatedAt),
		Assignees: issue.Assignees,
		URL:       issue.URL,
		Milestone: issue.Milestone,
	}
	if issue.ClosedAt != nil {
		fm.ClosedAt = formatTime(*issue.ClosedAt)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		// frontmatter contains only strings, ints and string slices.
		panic(err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", issue.Title)

	if issue.Body != "" {
		b.WriteString(issue.Body)
		b.WriteString("\n\n")
	}

	if len(issue.Comments) > 0 {
		b.WriteString("## Comments\n\n")
		for _, c := range issue.Comments {
			fmt.Fprintf(&b, "### Comment by %s on %s\n\n", c.Author, formatTime(c.CreatedAt))
			b.WriteString(c.Body)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
