package stats

import (
	"sort"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// MoodDistribution counts occurrences per distinct mood, ordered by
// descending count. Ties keep first-seen order over the reconciled sequence.
func MoodDistribution(records []models.NormalizedRecord) []models.MoodCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for i, record := range records {
		if _, ok := counts[record.Mood]; !ok {
			firstSeen[record.Mood] = i
			order = append(order, record.Mood)
		}
		counts[record.Mood]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	distribution := make([]models.MoodCount, len(order))
	for i, mood := range order {
		distribution[i] = models.MoodCount{Mood: mood, Count: counts[mood]}
	}
	return distribution
}
