// Package sizes orders garment size labels for display: numeric waist sizes
// ascending, then letter sizes XXS through 4XL, then "One Size" last.
package sizes

import (
	"sort"
	"strconv"
	"strings"
)

// letterRank orders the known alphabetic labels. XXL and 2XL are the same
// size written two ways and share a rank.
var letterRank = map[string]int{
	"XXS": 0,
	"XS":  1,
	"S":   2,
	"M":   3,
	"L":   4,
	"XL":  5,
	"XXL": 6,
	"2XL": 6,
	"3XL": 7,
	"4XL": 8,
}

const unknownRank = 100

// numericPrefix extracts a leading numeric token from a label such as `28"`
// or `32 x 34`. Returns false when the label does not start with a digit.
func numericPrefix(label string) (float64, bool) {
	s := strings.TrimSpace(label)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isOneSize(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "One Size")
}

// Less reports whether size label a sorts before label b.
func Less(a, b string) bool {
	switch {
	case isOneSize(a):
		return false
	case isOneSize(b):
		return true
	}

	na, aNum := numericPrefix(a)
	nb, bNum := numericPrefix(b)
	switch {
	case aNum && bNum:
		return na < nb
	case aNum:
		return true
	case bNum:
		return false
	}

	ra, ok := letterRank[strings.ToUpper(strings.TrimSpace(a))]
	if !ok {
		ra = unknownRank
	}
	rb, ok := letterRank[strings.ToUpper(strings.TrimSpace(b))]
	if !ok {
		rb = unknownRank
	}
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// SortLabels sorts size labels in place.
func SortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool { return Less(labels[i], labels[j]) })
}
