package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/ghkeep/ghkeep/internal/model"
	"github.com/ghkeep/ghkeep/internal/tracker"
)

func testChanges() map[string]Changes {
	issue := model.Issue{
		Number:    1,
		Title:     "Bug",
		State:     model.StateClosed,
		URL:       "https://github.com/acme/widgets/issues/1",
		UpdatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	return map[string]Changes{
		"acme/widgets": {
			Classification: tracker.Classification{
				New: []model.Issue{issue},
				Updated: []tracker.UpdatedIssue{
					{Issue: issue, Changes: []string{"State changed from 'open' to 'closed'"}},
				},
				Unchanged: []int{2, 3},
			},
			Deleted: []int{9},
		},
		"acme/gadgets": {
			Classification: tracker.Classification{Unchanged: []int{5}},
		},
	}
}

func TestGenerate(t *testing.T) {
	var b strings.Builder
	if err := Generate(testChanges(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		"# Issue Change Report",
		"## acme/gadgets",
		"## acme/widgets",
		"### New (1)",
		"[#1 Bug](https://github.com/acme/widgets/issues/1)",
		"### Updated (1)",
		"State changed from 'open' to 'closed'",
		"### No longer present (1)",
		"- #9",
		"No changes (1 issues unchanged).",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}

	// Repositories appear in sorted order.
	if strings.Index(out, "## acme/gadgets") > strings.Index(out, "## acme/widgets") {
		t.Fatal("repositories not sorted")
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteFile(dir, testChanges())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), "changes-") {
		t.Fatalf("unexpected report name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Issue Change Report") {
		t.Fatal("report file missing heading")
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var b strings.Builder
	PrintSummary(testChanges(), &b)
	out := b.String()

	if !strings.Contains(out, "acme/widgets") {
		t.Fatalf("summary missing repository:\n%s", out)
	}
	if !strings.Contains(out, "Total") {
		t.Fatalf("summary missing totals row:\n%s", out)
	}
}

func TestHasChanges(t *testing.T) {
	if (Changes{}).HasChanges() {
		t.Fatal("empty changes should report no changes")
	}
	c := Changes{Deleted: []int{1}}
	if !c.HasChanges() {
		t.Fatal("deleted issues count as changes")
	}
}
