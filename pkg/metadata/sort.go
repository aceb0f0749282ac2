package metadata

import (
	"cmp"
	"strings"
)

// KeySort orders top-level keys on output. It returns a negative number when
// a sorts before b, a positive number when after, and zero when equal.
type KeySort func(a, b string) int

// Lexical orders keys by byte-wise string comparison.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// Priority places the given keys first, in the order listed, followed by all
// other keys in lexical order.
func Priority(keys ...string) KeySort {
	rank := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, dup := rank[k]; !dup {
			rank[k] = i
		}
	}
	return func(a, b string) int {
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			return cmp.Compare(ra, rb)
		case aok:
			return -1
		case bok:
			return 1
		}
		return strings.Compare(a, b)
	}
}
