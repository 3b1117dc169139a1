package network

import "strings"

// sameAuthorThreshold is the similarity score above which two author
// names are considered the same person.
const sameAuthorThreshold = 0.80

// AuthorIsSame reports whether two author names, both in "Last, First"
// form, plausibly denote the same person. Names with differing first
// initials are rejected outright. Otherwise the score is a weighted
// average of the initial similarity (weight 1) and the last name
// similarity (weight 9), each a Ratcliff/Obershelp ratio in [0, 1].
func AuthorIsSame(name1, name2 string) bool {
	last1, init1 := splitName(name1)
	last2, init2 := splitName(name2)

	if init1 != init2 {
		return false
	}

	score := (similarity(init1, init2) + 9*similarity(last1, last2)) / 10
	return score > sameAuthorThreshold
}

// splitName extracts the last name and the first initial of the given
// name from a "Last, First" string. The initial is empty when no given
// name is present.
func splitName(name string) (last, initial string) {
	last, given, ok := strings.Cut(name, ", ")
	if !ok {
		return name, ""
	}
	first, _, _ := strings.Cut(given, " ")
	if first == "" {
		return last, ""
	}
	return last, first[:1]
}

// similarity is the Ratcliff/Obershelp ratio: twice the number of
// matching characters over the total length, with matches found by
// recursive longest-common-substring decomposition.
func similarity(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

func matchingChars(a, b string) int {
	ai, bj, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bj]) +
		matchingChars(a[ai+size:], b[bj+size:])
}

// longestMatch finds the longest common substring, preferring the
// earliest occurrence on ties.
func longestMatch(a, b string) (ai, bj, size int) {
	// lengths[j] holds the match length ending at the current a index
	// and b index j.
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 0; j < len(b); j++ {
			cur := lengths[j+1]
			if a[i] == b[j] {
				lengths[j+1] = prev + 1
				if lengths[j+1] > size {
					size = lengths[j+1]
					ai = i - size + 1
					bj = j - size + 1
				}
			} else {
				lengths[j+1] = 0
			}
			prev = cur
		}
	}
	return ai, bj, size
}
