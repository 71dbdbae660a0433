// Package similarity provides an edit-block string similarity ratio.
package similarity

// Ratio returns a similarity measure for two strings in [0, 1], computed as
// 2*M/T where M is the total length of the longest matching blocks found
// recursively and T is the combined length. Identical strings score 1.0,
// disjoint strings 0.0. The candidate-finder threshold (0.6) and the
// relevance cutoff (0.3) are tuned against this exact ratio, so it is a
// behavioral contract rather than an approximation. Pure function, rune
// based for correct Unicode handling.
func Ratio(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)
	total := len(runesA) + len(runesB)
	if total == 0 {
		return 1.0
	}

	matched := 0
	type span struct{ aLo, aHi, bLo, bHi int }
	stack := []span{{0, len(runesA), 0, len(runesB)}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, size := longestMatch(runesA, runesB, s.aLo, s.aHi, s.bLo, s.bHi)
		if size == 0 {
			continue
		}
		matched += size
		stack = append(stack,
			span{s.aLo, i, s.bLo, j},
			span{i + size, s.aHi, j + size, s.bHi},
		)
	}
	return 2.0 * float64(matched) / float64(total)
}

// longestMatch finds the longest block of runes common to a[aLo:aHi] and
// b[bLo:bHi], preferring the earliest position on ties. It walks a one row
// at a time, carrying run lengths per position in b, so memory stays
// proportional to the number of matching positions.
func longestMatch(a, b []rune, aLo, aHi, bLo, bHi int) (bestI, bestJ, bestSize int) {
	positions := make(map[rune][]int, bHi-bLo)
	for j := bLo; j < bHi; j++ {
		positions[b[j]] = append(positions[b[j]], j)
	}

	bestI, bestJ = aLo, bLo
	runLengths := make(map[int]int)
	for i := aLo; i < aHi; i++ {
		newRuns := make(map[int]int)
		for _, j := range positions[a[i]] {
			k := runLengths[j-1] + 1
			newRuns[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		runLengths = newRuns
	}
	return bestI, bestJ, bestSize
}
