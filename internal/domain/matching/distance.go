package matching

// EditDistance returns the optimal string alignment variant of the
// Damerau-Levenshtein distance between a and b, measured in runes.
// Insertions, deletions and substitutions cost 1, and swapping two adjacent
// runes counts as a single operation.
func EditDistance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Three rolling rows: i-2, i-1 and i.
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			d := min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d = min(d, prev2[j-2]+1) // transposition
			}

			curr[j] = d
		}

		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(rb)]
}

// LexicalSimilarity maps the edit distance of a and b onto [0,1], where 1
// means identical. Two empty strings are identical.
func LexicalSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 1
	}

	s := 1 - float64(EditDistance(a, b))/float64(maxLen)
	if s < 0 {
		return 0
	}
	return s
}
