// Package store persists issues as markdown documents with a per-repository
// metadata file used for change detection.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ghkeep/ghkeep/internal/hash"
	"github.com/ghkeep/ghkeep/internal/log"
	"github.com/ghkeep/ghkeep/internal/model"
)

// metadataFile is the per-repository metadata document name.
const metadataFile = ".metadata.json"

// IssueMeta is the persisted fingerprint/state/timestamp triple recorded
// for one issue number. It is always replaced as a whole, never patched.
type IssueMeta struct {
	Hash      string    `json:"hash"`
	UpdatedAt time.Time `json:"updated_at"`
	State     string    `json:"state"`
}

// Metadata is the full persisted state for one repository: the active
// filter configuration plus one entry per issue written to storage.
type Metadata struct {
	Filters model.Filters        `json:"filters"`
	Issues  map[string]IssueMeta `json:"issues"`
}

// NewMetadata returns an empty metadata structure.
func NewMetadata() *Metadata {
	return &Metadata{Issues: make(map[string]IssueMeta)}
}

// Store manages the on-disk issue mirror rooted at a base directory.
// One directory per repository, one markdown document per issue, one
// metadata document per repository. Not safe for concurrent use against
// the same repository; callers serialize per-repository writes.
type Store struct {
	base string
}

// NewStore creates a store rooted at base, creating the directory if needed.
func NewStore(base string) (*Store, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{base: base}, nil
}

// BaseDir returns the storage root.
func (s *Store) BaseDir() string {
	return s.base
}

// RepoDir returns (and creates) the directory for a repository, replacing
// the owner/name separator so the layout stays flat and collision-free.
func (s *Store) RepoDir(repo string) (string, error) {
	dir := filepath.Join(s.base, strings.ReplaceAll(repo, "/", "-"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create repository directory: %w", err)
	}
	return dir, nil
}

// LoadMetadata reads the metadata document for a repository. A repository
// that has never been synced is a valid empty state, not an error.
// Documents written in the legacy flat format (issue entries at the top
// level, no filters/issues wrapper) are upgraded on read; the file itself
// is only rewritten on the next write.
func (s *Store) LoadMetadata(repo string) (*Metadata, error) {
	dir, err := s.RepoDir(repo)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return NewMetadata(), nil
		}
		return nil, fmt.Errorf("failed to read metadata for %s: %w", repo, err)
	}

	meta, err := decodeMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("malformed metadata for %s: %w", repo, err)
	}
	return meta, nil
}

// decodeMetadata decodes the current schema, falling back to the legacy
// flat schema by structural inspection. Both normalize to one shape.
func decodeMetadata(data []byte) (*Metadata, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	_, hasFilters := raw["filters"]
	_, hasIssues := raw["issues"]
	if hasFilters || hasIssues {
		meta := NewMetadata()
		if err := json.Unmarshal(data, meta); err != nil {
			return nil, err
		}
		if meta.Issues == nil {
			meta.Issues = make(map[string]IssueMeta)
		}
		return meta, nil
	}

	// Legacy flat format: every top-level key is an issue entry.
	meta := NewMetadata()
	for key, entry := range raw {
		var im IssueMeta
		if err := json.Unmarshal(entry, &im); err != nil {
			return nil, fmt.Errorf("legacy entry %q: %w", key, err)
		}
		meta.Issues[key] = im
	}
	return meta, nil
}

// SaveIssue writes the issue's markdown document and updates its metadata
// entry. The two form a single logical operation: any failure surfaces and
// the metadata document is never left partially written. Returns the
// document path.
func (s *Store) SaveIssue(repo string, issue *model.Issue) (string, error) {
	dir, err := s.RepoDir(repo)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, documentName(issue.Number))
	if err := writeFileAtomic(path, []byte(renderDocument(issue))); err != nil {
		return "", fmt.Errorf("failed to write issue document: %w", err)
	}

	meta, err := s.LoadMetadata(repo)
	if err != nil {
		return "", err
	}
	meta.Issues[strconv.Itoa(issue.Number)] = IssueMeta{
		Hash:      hash.Fingerprint(issue),
		UpdatedAt: issue.UpdatedAt,
		State:     issue.State,
	}
	if err := s.saveMetadata(repo, meta); err != nil {
		return "", fmt.Errorf("document written but metadata update failed: %w", err)
	}

	log.Debug("saved issue", "repo", repo, "number", issue.Number, "path", path)
	return path, nil
}

// SaveFilters replaces the filter configuration wholesale, leaving all
// issue entries untouched.
func (s *Store) SaveFilters(repo string, filters model.Filters) error {
	meta, err := s.LoadMetadata(repo)
	if err != nil {
		return err
	}
	meta.Filters = filters
	return s.saveMetadata(repo, meta)
}

// LoadFilters returns the stored filter configuration for a repository,
// empty if none was saved.
func (s *Store) LoadFilters(repo string) (model.Filters, error) {
	meta, err := s.LoadMetadata(repo)
	if err != nil {
		return model.Filters{}, err
	}
	return meta.Filters, nil
}

// saveMetadata writes the whole metadata document atomically.
func (s *Store) saveMetadata(repo string, meta *Metadata) error {
	dir, err := s.RepoDir(repo)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, metadataFile), data)
}

// IssueNumbers returns the numbers of all issues stored for a repository,
// sorted ascending.
func (s *Store) IssueNumbers(repo string) ([]int, error) {
	dir := filepath.Join(s.base, strings.ReplaceAll(repo, "/", "-"))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var numbers []int
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "issue-") || !strings.HasSuffix(name, ".md") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "issue-"), ".md"))
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

func documentName(number int) string {
	return fmt.Sprintf("issue-%d.md", number)
}

// writeFileAtomic writes to a temporary file and renames it into place so
// a reader never observes a partially written document.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
