package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

var ErrDataInconsistency = errors.New("data inconsistency")

// InconsistencyError reports users that own workflows but could not be
// placed in an engagement category. Demographics must not be rendered
// when it is returned.
type InconsistencyError struct {
	TotalUsers           int
	TotalCategorized     int
	Delta                int
	UncategorizedUserIDs []string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: %d users with workflows, %d categorized (delta %d), uncategorized [%s]",
		ErrDataInconsistency, e.TotalUsers, e.TotalCategorized, e.Delta,
		strings.Join(e.UncategorizedUserIDs, ", "))
}

func (e *InconsistencyError) Unwrap() error {
	return ErrDataInconsistency
}

// Categorize places one user in exactly one engagement category. Owning
// several workflows wins over everything else; otherwise the first workflow
// decides. A user without workflows has no category and gets "".
func Categorize(workflows []domain.Workflow) domain.EngagementCategory {
	if len(workflows) == 0 {
		return ""
	}
	if len(workflows) > 1 {
		return domain.CategoryCreatedMultiple
	}
	first := workflows[0]
	modified := !IsBaseState(first)
	switch {
	case modified && first.RunCount > 0:
		return domain.CategoryModifiedAndRan
	case modified:
		return domain.CategoryModifiedNoRun
	default:
		return domain.CategoryBaseState
	}
}

// ClassifyEngagement partitions roster users that own workflows into the
// four engagement categories and checks the partition against the number of
// distinct workflow owners. An owner missing from the roster breaks the
// partition and yields an *InconsistencyError.
func ClassifyEngagement(users []domain.User, workflows []domain.Workflow, stats []domain.UserStats) (domain.UserDemographics, error) {
	byOwner := groupByOwner(workflows)
	roster := uniqueUsers(users)

	executions := make(map[string]int64, len(stats))
	for _, s := range stats {
		executions[s.UserID] += s.TotalExecutions()
	}

	var d domain.UserDemographics
	d.TotalUsers = len(roster)
	categorized := make(map[string]struct{}, len(byOwner.order))

	for _, u := range roster {
		if executions[u.ID] > 0 {
			d.UsersWithExecutions++
		}

		owned := byOwner.items[u.ID]
		if len(owned) == 0 {
			d.UsersWithNoWorkflows++
			continue
		}

		switch Categorize(owned) {
		case domain.CategoryCreatedMultiple:
			d.CreatedMultiple++
		case domain.CategoryModifiedAndRan:
			d.ModifiedAndRan++
		case domain.CategoryModifiedNoRun:
			d.ModifiedNoRun++
		case domain.CategoryBaseState:
			d.BaseStateOnly++
		}
		categorized[u.ID] = struct{}{}

		if allZeroRuns(owned) {
			d.UsersWithNoRuns++
			if allBaseState(owned) {
				d.InactiveUsers++
			}
		}
	}

	d.UsersWithWorkflows = len(byOwner.order)
	total := d.ModifiedAndRan + d.ModifiedNoRun + d.CreatedMultiple + d.BaseStateOnly
	if total != d.UsersWithWorkflows {
		missing := make([]string, 0, d.UsersWithWorkflows-len(categorized))
		for _, id := range byOwner.order {
			if _, ok := categorized[id]; !ok {
				missing = append(missing, id)
			}
		}
		sort.Strings(missing)
		return domain.UserDemographics{}, &InconsistencyError{
			TotalUsers:           d.UsersWithWorkflows,
			TotalCategorized:     total,
			Delta:                d.UsersWithWorkflows - total,
			UncategorizedUserIDs: missing,
		}
	}

	d.AvgWorkflowsPerUser = ratio(len(workflows), d.TotalUsers)
	d.ModifiedAndRanPercentage = percentage(d.ModifiedAndRan, d.TotalUsers)
	d.ModifiedNoRunPercentage = percentage(d.ModifiedNoRun, d.TotalUsers)
	d.CreatedMultiplePercentage = percentage(d.CreatedMultiple, d.TotalUsers)
	d.BaseStateOnlyPercentage = percentage(d.BaseStateOnly, d.TotalUsers)
	d.NoWorkflowsPercentage = percentage(d.UsersWithNoWorkflows, d.TotalUsers)
	d.InactivePercentage = percentage(d.InactiveUsers, d.TotalUsers)

	return d, nil
}

func allZeroRuns(workflows []domain.Workflow) bool {
	for _, w := range workflows {
		if w.RunCount > 0 {
			return false
		}
	}
	return true
}

func allBaseState(workflows []domain.Workflow) bool {
	for _, w := range workflows {
		if !IsBaseState(w) {
			return false
		}
	}
	return true
}

// ownerGroups keeps workflows per owner in feed order, and owners in order
// of first appearance.
type ownerGroups struct {
	order []string
	items map[string][]domain.Workflow
}

// groupByOwner skips workflows without an owner id.
func groupByOwner(workflows []domain.Workflow) ownerGroups {
	g := ownerGroups{items: make(map[string][]domain.Workflow)}
	for _, w := range workflows {
		if w.UserID == "" {
			continue
		}
		if _, ok := g.items[w.UserID]; !ok {
			g.order = append(g.order, w.UserID)
		}
		g.items[w.UserID] = append(g.items[w.UserID], w)
	}
	return g
}

// uniqueUsers drops roster duplicates and entries without an id.
func uniqueUsers(users []domain.User) []domain.User {
	seen := make(map[string]struct{}, len(users))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.ID == "" {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func percentage(n, total int) float64 {
	return ratio(n, total) * 100
}
