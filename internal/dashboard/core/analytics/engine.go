// Package analytics turns workflow, execution log and session feeds into a
// dashboard snapshot. Everything here is a pure function of its inputs: no
// I/O, no clocks, no state shared between calls.
package analytics

import "dashboard-analytics-service/internal/dashboard/core/domain"

const (
	DefaultTopUsers          = 5
	DefaultTopReturningUsers = 10
	DefaultRecentActivity    = 10
)

type Options struct {
	TopUsers          int
	TopReturningUsers int
	RecentActivity    int
	Matcher           MessageMatcher
}

type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	if opts.TopUsers <= 0 {
		opts.TopUsers = DefaultTopUsers
	}
	if opts.TopReturningUsers <= 0 {
		opts.TopReturningUsers = DefaultTopReturningUsers
	}
	if opts.RecentActivity <= 0 {
		opts.RecentActivity = DefaultRecentActivity
	}
	if opts.Matcher == nil {
		opts.Matcher = DefaultMatcher()
	}
	return &Engine{opts: opts}
}

// Build runs one aggregation over feeds. It fails only when the engagement
// partition is inconsistent, in which case the error is an
// *InconsistencyError and no snapshot is returned. ID and GeneratedAt are
// left for the caller to stamp.
func (e *Engine) Build(feeds domain.Feeds) (*domain.DashboardSnapshot, error) {
	demographics, err := ClassifyEngagement(feeds.Users, feeds.Workflows, feeds.Stats)
	if err != nil {
		return nil, err
	}

	outcomes := ClassifyExecutions(feeds.Logs, e.opts.Matcher)
	latencies := AggregateLatencies(feeds.Logs, e.opts.Matcher)

	return &domain.DashboardSnapshot{
		Overview:         Summarize(feeds, outcomes),
		UserDemographics: demographics,
		Sessions:         AnalyzeSessions(feeds.Sessions, feeds.Users, feeds.Stats, e.opts.TopReturningUsers),
		TopUsers:         RankTopUsers(feeds.Workflows, e.opts.TopUsers),
		TopBlocks:        RankTopBlocks(feeds.Workflows),
		RecentActivity:   recentActivity(outcomes, feeds.Workflows, e.opts.RecentActivity),
		Workflows:        summarizeWorkflows(feeds.Workflows, outcomes),
		BlockLatencies:   blockLatencyTable(latencies),
	}, nil
}
