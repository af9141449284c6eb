package nameindex

import "sort"

const maxSuggestions = 3

// Distance is the classic unit-cost Levenshtein edit distance over runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Suggest returns up to three candidates closest to target by edit
// distance over the normalized forms. Ties keep input order; matches are
// suggestions for a human, never auto-applied.
func Suggest(target string, candidates []string) []string {
	key := NormalizeKey(target)

	type scored struct {
		name  string
		score int
	}
	items := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, scored{
			name:  candidate,
			score: Distance(key, NormalizeKey(candidate)),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score < items[j].score
	})

	limit := maxSuggestions
	if len(items) < limit {
		limit = len(items)
	}
	out := make([]string, 0, limit)
	for _, item := range items[:limit] {
		out = append(out, item.name)
	}
	return out
}
