package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/domain"
)

func session(userID string, at time.Time) domain.Session {
	return domain.Session{
		UserID:    userID,
		User:      domain.Owner{Name: "name " + userID, Email: userID + "@example.com"},
		CreatedAt: at,
	}
}

func TestAnalyzeSessions_ReturningUsers(t *testing.T) {
	sessions := []domain.Session{
		session("U1", t0),
		session("U1", t0.Add(2*time.Hour)),
		session("U1", t0.Add(time.Hour)),
		session("U2", t0),
	}

	got := analytics.AnalyzeSessions(sessions, users("U1", "U2"), nil, 10)

	assert.Equal(t, 4, got.TotalSessions)
	assert.Equal(t, 2.0, got.AverageSessionsPerUser)
	assert.Equal(t, 1, got.ReturningUsers)
	assert.Equal(t, 50.0, got.ReturningUsersPercentage)
	require.Len(t, got.TopReturningUsers, 1)
	assert.Equal(t, "U1", got.TopReturningUsers[0].UserID)
	assert.Equal(t, 3, got.TopReturningUsers[0].SessionCount)
	assert.Equal(t, t0.Add(2*time.Hour), got.TopReturningUsers[0].LastSeen)
}

func TestAnalyzeSessions_LastActivePreferred(t *testing.T) {
	lastActive := t0.Add(48 * time.Hour)
	sessions := []domain.Session{session("U1", t0), session("U1", t0.Add(time.Hour))}
	stats := []domain.UserStats{{UserID: "U1", LastActive: &lastActive}}

	got := analytics.AnalyzeSessions(sessions, users("U1"), stats, 10)

	require.Len(t, got.TopReturningUsers, 1)
	assert.Equal(t, lastActive, got.TopReturningUsers[0].LastSeen)
}

func TestAnalyzeSessions_TopTenOrdering(t *testing.T) {
	var sessions []domain.Session
	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("U%02d", i)
		ids = append(ids, id)
		for n := 0; n < i+2; n++ {
			sessions = append(sessions, session(id, t0.Add(time.Duration(n)*time.Minute)))
		}
	}

	got := analytics.AnalyzeSessions(sessions, users(ids...), nil, analytics.DefaultTopReturningUsers)

	assert.Equal(t, 12, got.ReturningUsers)
	require.Len(t, got.TopReturningUsers, 10)
	assert.Equal(t, "U11", got.TopReturningUsers[0].UserID)
	assert.Equal(t, 13, got.TopReturningUsers[0].SessionCount)
	for i := 1; i < len(got.TopReturningUsers); i++ {
		assert.GreaterOrEqual(t, got.TopReturningUsers[i-1].SessionCount, got.TopReturningUsers[i].SessionCount)
	}
}

func TestAnalyzeSessions_EmptyRoster(t *testing.T) {
	sessions := []domain.Session{session("U1", t0), session("U1", t0)}

	got := analytics.AnalyzeSessions(sessions, nil, nil, 10)

	assert.Equal(t, 2, got.TotalSessions)
	assert.Equal(t, 0.0, got.AverageSessionsPerUser)
	assert.Equal(t, 0.0, got.ReturningUsersPercentage)
	assert.Equal(t, 1, got.ReturningUsers)
}
