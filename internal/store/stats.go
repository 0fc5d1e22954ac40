package store

import (
	"time"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// ComputeStats derives aggregate statistics from a session collection. It is
// a pure function of its input (plus the clock for the weekly count) shared
// by every SessionStore implementation.
func ComputeStats(sessions []*domain.ThoughtSession, now time.Time) *domain.SessionStats {
	stats := &domain.SessionStats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats
	}

	weekAgo := now.AddDate(0, 0, -7)
	totalReduction := 0

	// Tracking the running best while iterating in stored order makes the
	// most-common pick deterministic: on equal counts the distortion seen
	// first wins.
	counts := make(map[string]int)
	best := ""
	bestCount := 0

	for _, s := range sessions {
		totalReduction += s.IntensityReduction()
		if s.CreatedAt.After(weekAgo) {
			stats.SessionsThisWeek++
		}
		for _, d := range s.Distortions {
			counts[d.Name]++
			if counts[d.Name] > bestCount {
				best = d.Name
				bestCount = counts[d.Name]
			}
		}
	}

	stats.AverageIntensityReduction = float64(totalReduction) / float64(len(sessions))
	stats.MostCommonDistortion = best
	return stats
}
