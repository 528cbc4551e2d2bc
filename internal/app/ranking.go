package app

import "sort"

// Rank assigns dense competition ranks with gap-skip to the given scores.
// Entries are ordered descending by score; tied entries share a rank and
// the entry after a tie group gets its 1-based position, not the previous
// rank plus one. Scores [10,10,7] rank as [1,1,3].
//
// Pure function of the input; calling it twice with unchanged scores
// yields identical ranks.
func Rank(scores map[string]int) map[string]int {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		// Stable order among ties so repeated calls agree.
		return ids[i] < ids[j]
	})

	ranks := make(map[string]int, len(ids))
	for pos, id := range ids {
		if pos > 0 && scores[id] == scores[ids[pos-1]] {
			ranks[id] = ranks[ids[pos-1]]
			continue
		}
		ranks[id] = pos + 1
	}
	return ranks
}
