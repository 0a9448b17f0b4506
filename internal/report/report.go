// Package report renders the change classification of a sync pass for
// humans: a markdown report on disk and a colored terminal summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ghkeep/ghkeep/internal/format"
	"github.com/ghkeep/ghkeep/internal/tracker"
)

// Changes bundles the classification of one repository with its
// independently computed deleted set.
type Changes struct {
	Classification tracker.Classification
	Deleted        []int
}

// HasChanges reports whether anything moved since the last sync.
func (c Changes) HasChanges() bool {
	return len(c.Classification.New) > 0 || len(c.Classification.Updated) > 0 || len(c.Deleted) > 0
}

// Generate writes a markdown change report for all repositories to w,
// in stable repository order.
func Generate(all map[string]Changes, w io.Writer) error {
	fmt.Fprintln(w, "# Issue Change Report")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))

	for _, repo := range sortedRepos(all) {
		changes := all[repo]
		cl := changes.Classification

		fmt.Fprintf(w, "## %s\n\n", repo)

		if !changes.HasChanges() {
			fmt.Fprintf(w, "No changes (%d issues unchanged).\n\n", len(cl.Unchanged))
			continue
		}

		if len(cl.New) > 0 {
			fmt.Fprintf(w, "### New (%d)\n\n", len(cl.New))
			for _, issue := range cl.New {
				fmt.Fprintf(w, "- [#%d %s](%s) (%s)\n", issue.Number, issue.Title, issue.URL, issue.State)
			}
			fmt.Fprintln(w)
		}

		if len(cl.Updated) > 0 {
			fmt.Fprintf(w, "### Updated (%d)\n\n", len(cl.Updated))
			for _, u := range cl.Updated {
				fmt.Fprintf(w, "- [#%d %s](%s)\n", u.Issue.Number, u.Issue.Title, u.Issue.URL)
				for _, change := range u.Changes {
					fmt.Fprintf(w, "  - %s\n", change)
				}
			}
			fmt.Fprintln(w)
		}

		if len(changes.Deleted) > 0 {
			fmt.Fprintf(w, "### No longer present (%d)\n\n", len(changes.Deleted))
			for _, n := range changes.Deleted {
				fmt.Fprintf(w, "- #%d\n", n)
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Unchanged: %d\n\n", len(cl.Unchanged))
	}

	return nil
}

// WriteFile writes the markdown report to a timestamped file under dir and
// returns its path.
func WriteFile(dir string, all map[string]Changes) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("changes-%s.md", time.Now().Format("20060102-150405")))

	var b strings.Builder
	if err := Generate(all, &b); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// PrintSummary prints a colored per-repository summary table to w.
func PrintSummary(all map[string]Changes, w io.Writer) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	const repoWidth = 40

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %8s %8s %10s %8s\n", format.PadRight("Repository", repoWidth), "New", "Updated", "Unchanged", "Missing")

	var totalNew, totalUpdated, totalUnchanged, totalDeleted int
	for _, repo := range sortedRepos(all) {
		changes := all[repo]
		cl := changes.Classification

		totalNew += len(cl.New)
		totalUpdated += len(cl.Updated)
		totalUnchanged += len(cl.Unchanged)
		totalDeleted += len(changes.Deleted)

		fmt.Fprintf(w, "%s %8s %8s %10d %8s\n",
			format.PadRight(format.Truncate(repo, repoWidth), repoWidth),
			green(len(cl.New)),
			yellow(len(cl.Updated)),
			len(cl.Unchanged),
			red(len(changes.Deleted)),
		)
	}

	fmt.Fprintf(w, "%s %8s %8s %10d %8s\n",
		format.PadRight("Total", repoWidth),
		green(totalNew),
		yellow(totalUpdated),
		totalUnchanged,
		red(totalDeleted),
	)
	fmt.Fprintln(w)
}

func sortedRepos(all map[string]Changes) []string {
	repos := make([]string, 0, len(all))
	for repo := range all {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	return repos
}
