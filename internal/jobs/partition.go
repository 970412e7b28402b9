package jobs

// Span is a half-open index range [Start, End).
type Span struct {
	Start, End int
}

// Partition splits n items into count contiguous, disjoint, order-preserving
// spans whose sizes differ by at most one. The first n%count spans carry
// the extra item. count < 1 is treated as 1. Spans may be empty when
// n < count, so callers can keep one job per shard regardless of load.
func Partition(n, count int) []Span {
	if count < 1 {
		count = 1
	}
	if n < 0 {
		n = 0
	}
	spans := make([]Span, count)
	base, extra := n/count, n%count
	start := 0
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = Span{Start: start, End: start + size}
		start += size
	}
	return spans
}

// Shard returns the items of span s.
func Shard[T any](items []T, s Span) []T {
	return items[s.Start:s.End:s.End]
}
