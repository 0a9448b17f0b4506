package model

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the accepted format for the since/until filter bounds.
const dateLayout = "2006-01-02"

// Filters describes the issue selection criteria applied when fetching a
// repository. A zero-valued field means no constraint on that dimension.
// Filters are persisted per repository alongside the issue metadata and
// reapplied on every subsequent sync until explicitly replaced.
type Filters struct {
	Author    string   `json:"author,omitempty" yaml:"author,omitempty"`
	Assignee  string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	State     string   `json:"state,omitempty" yaml:"state,omitempty"` // open, closed, all
	Labels    []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Milestone string   `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Since     string   `json:"since,omitempty" yaml:"since,omitempty"` // YYYY-MM-DD, inclusive lower bound on creation
	Until     string   `json:"until,omitempty" yaml:"until,omitempty"` // YYYY-MM-DD, inclusive upper bound on creation
}

// IsZero reports whether no filter dimension is constrained.
func (f Filters) IsZero() bool {
	return f.Author == "" && f.Assignee == "" && f.State == "" &&
		len(f.Labels) == 0 && f.Milestone == "" && f.Since == "" && f.Until == ""
}

// Validate checks the state value and date bounds.
func (f Filters) Validate() error {
	switch f.State {
	case "", StateOpen, StateClosed, "all":
	default:
		return fmt.Errorf("invalid state filter %q (expected open, closed or all)", f.State)
	}
	for _, d := range []struct{ name, value string }{
		{"since", f.Since},
		{"until", f.Until},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d.value); err != nil {
			return fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", d.name, d.value)
		}
	}
	return nil
}

// SinceTime returns the parsed since bound, if set and valid.
func (f Filters) SinceTime() (time.Time, bool) {
	return parseDate(f.Since)
}

// UntilTime returns the parsed until bound, if set and valid.
func (f Filters) UntilTime() (time.Time, bool) {
	return parseDate(f.Until)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Describe returns the active filter dimensions as key=value strings for
// display, in a fixed order.
func (f Filters) Describe() []string {
	var parts []string
	if f.Author != "" {
		parts = append(parts, "author="+f.Author)
	}
	if f.Assignee != "" {
		parts = append(parts, "assignee="+f.Assignee)
	}
	if f.State != "" && f.State != "all" {
		parts = append(parts, "state="+f.State)
	}
	if len(f.Labels) > 0 {
		parts = append(parts, "labels="+strings.Join(f.Labels, ","))
	}
	if f.Milestone != "" {
		parts = append(parts, "milestone="+f.Milestone)
	}
	if f.Since != "" {
		parts = append(parts, "since="+f.Since)
	}
	if f.Until != "" {
		parts = append(parts, "until="+f.Until)
	}
	return parts
}
