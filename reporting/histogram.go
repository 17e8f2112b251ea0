package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// Bucket counts how many nodes share one degree value.
type Bucket struct {
	Degree int
	Count  int
}

// DegreeDistribution aggregates a degree sequence into buckets sorted by
// ascending degree.
func DegreeDistribution(degrees []int) []Bucket {
	counts := make(map[int]int)
	for _, d := range degrees {
		counts[d]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for degree, count := range counts {
		buckets = append(buckets, Bucket{Degree: degree, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Degree < buckets[j].Degree })
	return buckets
}

// maxBarWidth is the number of characters used for the widest histogram bar.
const maxBarWidth = 50

// WriteHistogram renders the degree distribution as a text bar chart.
func WriteHistogram(w io.Writer, buckets []Bucket) error {
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range buckets {
		width := 0
		if maxCount > 0 {
			width = b.Count * maxBarWidth / maxCount
		}
		if width == 0 && b.Count > 0 {
			width = 1
		}
		if _, err := fmt.Fprintf(w, "%6d | %-*s %d\n", b.Degree, maxBarWidth, strings.Repeat("#", width), b.Count); err != nil {
			return xerrors.Errorf("write histogram: %w", err)
		}
	}
	return nil
}
