package qbell

import (
	"fmt"
	"sort"
	"strings"
)

/*
Counts is the histogram of measured classical bitstrings over all shots
of one run. Keys are written most significant classical bit first, so
bit 0 is the rightmost character.
*/
type Counts map[string]int

// Get returns the count for key, or 0 when the outcome never occurred.
func (c Counts) Get(key string) int {
	return c[key]
}

// Total sums every outcome and equals the shot count of the run.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the counts as {'00': 517, '11': 507}.
func (c Counts) String() string {
	parts := make([]string, 0, len(c))
	for _, k := range c.Keys() {
		parts = append(parts, fmt.Sprintf("'%s': %d", k, c[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// bitstring renders the classical register of width n, bit n-1 first.
func bitstring(register uint64, n int) string {
	var b strings.Builder
	b.Grow(n)

	for bit := n - 1; bit >= 0; bit-- {
		if register&(1<<uint(bit)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}
