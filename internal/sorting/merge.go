package sorting

// Merge is a top-down merge sort. Ties take the left element, so the sort
// is stable. An empty input yields no steps at all.
type Merge struct{}

func NewMerge() *Merge { return &Merge{} }

func (m *Merge) Info() Info { return infos[KindMerge] }

func (m *Merge) Steps(input []int) Sequence {
	return func(yield func(Step) bool) {
		r := newRun(input, yield)
		switch len(r.a) {
		case 0:
			return
		case 1:
			r.mark(0)
			r.settle()
			return
		}
		r.mergesort(0, len(r.a)-1)
	}
}

func (r *run) mergesort(start, end int) bool {
	if start >= end {
		return true
	}
	mid := (start + end) / 2
	return r.mergesort(start, mid) &&
		r.mergesort(mid+1, end) &&
		r.merge(start, mid, end)
}

// merge combines the sorted runs a[start..mid] and a[mid+1..end].
//
// Compare steps name the source positions in the original index space
// (start+i, mid+1+j). After every write the range is laid out as
// merged prefix, then the unread left tail, then the unread right tail,
// so each snapshot stays a permutation of the input.
func (r *run) merge(start, mid, end int) bool {
	left := append([]int(nil), r.a[start:mid+1]...)
	right := append([]int(nil), r.a[mid+1:end+1]...)
	merged := make([]int, 0, end-start+1)

	i, j, k := 0, 0, start
	for i < len(left) && j < len(right) {
		if !r.compare(start+i, mid+1+j) {
			return false
		}
		if left[i] <= right[j] {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
		r.layout(start, merged, left[i:], right[j:])
		if !r.wrote(k) {
			return false
		}
		k++
	}

	for ; i < len(left); i++ {
		merged = append(merged, left[i])
		r.layout(start, merged, left[i+1:], nil)
		if !r.wrote(k) {
			return false
		}
		k++
	}
	for ; j < len(right); j++ {
		merged = append(merged, right[j])
		r.layout(start, merged, nil, right[j+1:])
		if !r.wrote(k) {
			return false
		}
		k++
	}

	for idx := start; idx <= end; idx++ {
		r.mark(idx)
	}
	return r.settle()
}

func (r *run) layout(start int, parts ...[]int) {
	k := start
	for _, p := range parts {
		k += copy(r.a[k:], p)
	}
}
