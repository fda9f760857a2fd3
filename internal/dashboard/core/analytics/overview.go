package analytics

import (
	"sort"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

// Summarize computes the overview totals. Executions are taken from the
// per-user counters; workflow run counts are not reliable across workflows.
func Summarize(feeds domain.Feeds, outcomes map[string]domain.ExecutionOutcome) domain.Overview {
	o := domain.Overview{
		TotalWorkflows: len(feeds.Workflows),
		TotalUsers:     len(uniqueUsers(feeds.Users)),
	}

	totalBlocks := 0
	for _, w := range feeds.Workflows {
		if w.IsDeployed {
			o.ActiveWorkflows++
		}
		totalBlocks += len(ExtractBlocks(w.State))
	}
	o.AvgBlocksPerWorkflow = ratio(totalBlocks, o.TotalWorkflows)

	for _, s := range feeds.Stats {
		o.TotalExecutions += s.TotalExecutions()
		o.TotalCost += s.TotalCost
	}

	for _, out := range outcomes {
		if out.Status == domain.StatusSuccess {
			o.SuccessfulExecutions++
		} else {
			o.FailedExecutions++
		}
	}
	return o
}

// RankTopUsers groups workflows by owner and returns the owners with the
// most workflows, each with a block usage histogram and per-workflow blocks.
func RankTopUsers(workflows []domain.Workflow, limit int) []domain.TopUser {
	groups := groupByOwner(workflows)

	users := make([]domain.TopUser, 0, len(groups.order))
	for _, id := range groups.order {
		owned := groups.items[id]
		usage := NewHistogram[string]()
		tu := domain.TopUser{
			UserID:        id,
			Name:          owned[0].Owner.Name,
			Email:         owned[0].Owner.Email,
			WorkflowCount: len(owned),
			Workflows:     make([]domain.WorkflowBlocks, 0, len(owned)),
		}
		for _, w := range owned {
			blocks := ExtractBlocks(w.State)
			tu.BlockCount += len(blocks)
			usage.Merge(blockTypes(blocks))
			tu.Workflows = append(tu.Workflows, domain.WorkflowBlocks{
				ID:     w.ID,
				Name:   w.Name,
				Blocks: blocks,
			})
		}
		tu.BlockUsage = usage.Map()
		users = append(users, tu)
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].WorkflowCount != users[j].WorkflowCount {
			return users[i].WorkflowCount > users[j].WorkflowCount
		}
		if users[i].BlockCount != users[j].BlockCount {
			return users[i].BlockCount > users[j].BlockCount
		}
		return users[i].UserID < users[j].UserID
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users
}

// RankTopBlocks returns the global block type histogram, most used first.
// It is not truncated; callers slice it.
func RankTopBlocks(workflows []domain.Workflow) []domain.BlockUsage {
	h := NewHistogram[string]()
	for _, w := range workflows {
		h.Merge(blockTypes(ExtractBlocks(w.State)))
	}

	buckets := h.Sorted()
	out := make([]domain.BlockUsage, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.BlockUsage{Type: b.Key, Count: b.Count})
	}
	return out
}

func summarizeWorkflows(workflows []domain.Workflow, outcomes map[string]domain.ExecutionOutcome) []domain.WorkflowSummary {
	success := NewHistogram[string]()
	failed := NewHistogram[string]()
	for _, o := range outcomes {
		if o.Status == domain.StatusSuccess {
			success.Add(o.WorkflowID)
		} else {
			failed.Add(o.WorkflowID)
		}
	}

	out := make([]domain.WorkflowSummary, 0, len(workflows))
	for _, w := range workflows {
		out = append(out, domain.WorkflowSummary{
			ID:                   w.ID,
			Name:                 w.Name,
			UserID:               w.UserID,
			OwnerName:            w.Owner.Name,
			IsDeployed:           w.IsDeployed,
			RunCount:             w.RunCount,
			BlockCount:           len(ExtractBlocks(w.State)),
			BaseState:            IsBaseState(w),
			SuccessfulExecutions: success.Count(w.ID),
			FailedExecutions:     failed.Count(w.ID),
		})
	}
	return out
}
