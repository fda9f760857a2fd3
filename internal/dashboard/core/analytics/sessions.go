package analytics

import (
	"sort"
	"time"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

type sessionGroup struct {
	userID   string
	name     string
	email    string
	count    int
	lastSeen time.Time
}

// AnalyzeSessions computes session totals and ranks returning users (more
// than one session) by session count. Averages are taken over the roster.
func AnalyzeSessions(sessions []domain.Session, users []domain.User, stats []domain.UserStats, limit int) domain.SessionMetrics {
	roster := uniqueUsers(users)
	profiles := make(map[string]domain.User, len(roster))
	for _, u := range roster {
		profiles[u.ID] = u
	}

	lastActive := make(map[string]time.Time, len(stats))
	for _, s := range stats {
		if s.LastActive != nil {
			lastActive[s.UserID] = *s.LastActive
		}
	}

	groups := make(map[string]*sessionGroup)
	for _, s := range sessions {
		if s.UserID == "" {
			continue
		}
		g, ok := groups[s.UserID]
		if !ok {
			g = &sessionGroup{userID: s.UserID, name: s.User.Name, email: s.User.Email}
			groups[s.UserID] = g
		}
		g.count++
		if s.CreatedAt.After(g.lastSeen) {
			g.lastSeen = s.CreatedAt
		}
		if g.name == "" {
			g.name = s.User.Name
		}
		if g.email == "" {
			g.email = s.User.Email
		}
	}

	returning := make([]*sessionGroup, 0)
	for _, g := range groups {
		if g.count > 1 {
			returning = append(returning, g)
		}
	}
	sort.Slice(returning, func(i, j int) bool {
		if returning[i].count != returning[j].count {
			return returning[i].count > returning[j].count
		}
		return returning[i].userID < returning[j].userID
	})

	m := domain.SessionMetrics{
		TotalSessions:            len(sessions),
		AverageSessionsPerUser:   ratio(len(sessions), len(roster)),
		ReturningUsers:           len(returning),
		ReturningUsersPercentage: percentage(len(returning), len(roster)),
		TopReturningUsers:        make([]domain.ReturningUser, 0, min(len(returning), max(limit, 0))),
	}

	for i, g := range returning {
		if limit > 0 && i >= limit {
			break
		}
		ru := domain.ReturningUser{
			UserID:       g.userID,
			Name:         g.name,
			Email:        g.email,
			SessionCount: g.count,
			LastSeen:     g.lastSeen,
		}
		if p, ok := profiles[g.userID]; ok {
			if ru.Name == "" {
				ru.Name = p.Name
			}
			if ru.Email == "" {
				ru.Email = p.Email
			}
		}
		if t, ok := lastActive[g.userID]; ok {
			ru.LastSeen = t
		}
		m.TopReturningUsers = append(m.TopReturningUsers, ru)
	}

	return m
}
