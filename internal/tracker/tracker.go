// Package tracker classifies the current remote issue set of a repository
// against its stored metadata. It performs no I/O of its own: the caller
// loads the metadata and passes it in by exclusive ownership.
package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ghkeep/ghkeep/internal/hash"
	"github.com/ghkeep/ghkeep/internal/model"
	"github.com/ghkeep/ghkeep/internal/store"
)

// UpdatedIssue pairs a changed issue with human-readable descriptions of
// what changed.
type UpdatedIssue struct {
	Issue   model.Issue `json:"issue"`
	Changes []string    `json:"changes"`
}

// Classification partitions the current issue set of one sync pass. Every
// current issue lands in exactly one bucket.
type Classification struct {
	New       []model.Issue  `json:"new"`
	Updated   []UpdatedIssue `json:"updated"`
	Unchanged []int          `json:"unchanged"`
}

// Total returns the number of classified issues.
func (c Classification) Total() int {
	return len(c.New) + len(c.Updated) + len(c.Unchanged)
}

// Classify compares each current issue against the stored metadata:
// unknown numbers are new, known numbers with a matching fingerprint are
// unchanged, everything else is updated.
func Classify(meta *store.Metadata, current []model.Issue) Classification {
	var cl Classification
	for _, issue := range current {
		stored, ok := meta.Issues[strconv.Itoa(issue.Number)]
		if !ok {
			cl.New = append(cl.New, issue)
			continue
		}
		if hash.Fingerprint(&issue) == stored.Hash {
			cl.Unchanged = append(cl.Unchanged, issue.Number)
			continue
		}
		cl.Updated = append(cl.Updated, UpdatedIssue{
			Issue:   issue,
			Changes: describeChanges(stored, &issue),
		})
	}
	return cl
}

// describeChanges lists what changed for an updated issue. State and
// timestamp changes are reported independently; when the fingerprint moved
// without either (comment content or ordering, for example), a generic
// descriptor guarantees at least one entry.
func describeChanges(stored store.IssueMeta, current *model.Issue) []string {
	var changes []string

	if stored.State != current.State {
		old := stored.State
		if old == "" {
			old = "unknown"
		}
		changes = append(changes, fmt.Sprintf("State changed from '%s' to '%s'", old, current.State))
	}

	if !stored.UpdatedAt.Equal(current.UpdatedAt) {
		changes = append(changes, fmt.Sprintf("Updated at %s", current.UpdatedAt.UTC().Format(time.RFC3339)))
	}

	if len(changes) == 0 {
		changes = append(changes, "Content modified")
	}
	return changes
}

// Deleted returns issue numbers present in the stored metadata but absent
// from the current fetch, sorted ascending. It only reports the
// discrepancy; removing local documents is left to the operator.
func Deleted(meta *store.Metadata, current []model.Issue) []int {
	currentNums := make(map[int]struct{}, len(current))
	for _, issue := range current {
		currentNums[issue.Number] = struct{}{}
	}

	var deleted []int
	for key := range meta.Issues {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if _, ok := currentNums[n]; !ok {
			deleted = append(deleted, n)
		}
	}
	sort.Ints(deleted)
	return deleted
}
