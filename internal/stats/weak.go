package stats

import (
	"sort"

	"github.com/verte-zerg/keydrill/internal/model"
)

// SelectWeakKeys returns the lowest-accuracy characters from aggregates,
// weakest first. Characters without any typo are never weak.
func SelectWeakKeys(aggs []model.KeyAggregate, top int) []model.KeyAggregate {
	candidates := make([]model.KeyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Typos > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

func accuracy(agg model.KeyAggregate) float64 {
	total := agg.Matches + agg.Typos
	if total == 0 {
		return 1.0
	}
	return float64(agg.Matches) / float64(total)
}

func avgLatency(agg model.KeyAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}
