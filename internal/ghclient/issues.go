package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"

	"github.com/ghkeep/ghkeep/internal/log"
	"github.com/ghkeep/ghkeep/internal/model"
)

// FetchIssues fetches all issues of a repository matching the given
// filters, including full comment threads. Filters the API supports are
// applied server-side; creation-date bounds and milestone title matching
// are applied client-side.
func (c *Client) FetchIssues(ctx context.Context, repo string, filters model.Filters) ([]model.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListByRepoOptions{
		State:       stateParam(filters.State),
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	if filters.Author != "" {
		opts.Creator = filters.Author
	}
	if filters.Assignee != "" {
		opts.Assignee = filters.Assignee
	}
	if len(filters.Labels) > 0 {
		opts.Labels = filters.Labels
	}
	// The API's since filters on update time. Anything created at or after
	// the bound was necessarily updated at or after it, so this is a safe
	// superset; the precise creation-date check happens client-side.
	if since, ok := filters.SinceTime(); ok {
		opts.Since = since
	}

	var issues []model.Issue
	for {
		list, resp, err := c.client.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues from %s: %w", repo, err)
		}

		for _, is := range list {
			// Pull requests share the issues endpoint.
			if is.IsPullRequest() {
				continue
			}
			if !matchesClientFilters(is, filters) {
				continue
			}

			issue, err := c.issueFromAPI(ctx, owner, name, is)
			if err != nil {
				return nil, err
			}
			issues = append(issues, *issue)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	log.Info("fetched issues", "repo", repo, "count", len(issues))
	return issues, nil
}

// stateParam maps the filter state to the API parameter. An unset state
// fetches everything.
func stateParam(state string) string {
	if state == "" {
		return "all"
	}
	return state
}

// matchesClientFilters applies the filters the list API cannot express.
func matchesClientFilters(is *gh.Issue, filters model.Filters) bool {
	created := is.GetCreatedAt().Time

	if since, ok := filters.SinceTime(); ok && created.Before(since) {
		return false
	}
	if until, ok := filters.UntilTime(); ok && created.After(until) {
		return false
	}
	if filters.Milestone != "" && is.GetMilestone().GetTitle() != filters.Milestone {
		return false
	}
	return true
}

// issueFromAPI converts an API issue into the domain model, fetching its
// comment thread.
func (c *Client) issueFromAPI(ctx context.Context, owner, name string, is *gh.Issue) (*model.Issue, error) {
	comments, err := c.listComments(ctx, owner, name, is.GetNumber())
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, label := range is.Labels {
		labels = append(labels, label.GetName())
	}

	var assignees []string
	for _, assignee := range is.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	issue := &model.Issue{
		Number:    is.GetNumber(),
		Title:     is.GetTitle(),
		Body:      is.GetBody(),
		State:     is.GetState(),
		Labels:    labels,
		Author:    login(is.GetUser()),
		Assignees: assignees,
		CreatedAt: is.GetCreatedAt().Time,
		UpdatedAt: is.GetUpdatedAt().Time,
		URL:       is.GetHTMLURL(),
		Milestone: is.GetMilestone().GetTitle(),
		Comments:  comments,
	}
	if is.ClosedAt != nil {
		t := is.GetClosedAt().Time
		issue.ClosedAt = &t
	}
	return issue, nil
}

// listComments fetches the full comment thread of an issue in
// chronological order.
func (c *Client) listComments(ctx context.Context, owner, name string, number int) ([]model.Comment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []model.Comment
	for {
		list, resp, err := c.client.Issues.ListComments(ctx, owner, name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comments for issue #%d: %w", number, err)
		}

		for _, cm := range list {
			comments = append(comments, model.Comment{
				Author:    login(cm.GetUser()),
				Body:      cm.GetBody(),
				CreatedAt: cm.GetCreatedAt().Time,
				UpdatedAt: cm.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// login returns the user's login, or the placeholder GitHub uses for
// deleted accounts.
func login(u *gh.User) string {
	if l := u.GetLogin(); l != "" {
		return l
	}
	return "ghost"
}
