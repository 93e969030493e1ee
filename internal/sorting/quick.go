package sorting

// Quick partitions around the last element of each range (Lomuto) and
// recurses left before right. Every partition, including an empty one,
// emits at least one step.
type Quick struct{}

func NewQuick() *Quick { return &Quick{} }

func (q *Quick) Info() Info { return infos[KindQuick] }

func (q *Quick) Steps(input []int) Sequence {
	return func(yield func(Step) bool) {
		r := newRun(input, yield)
		r.quicksort(0, len(r.a)-1)
	}
}

// quicksort sorts a[start..end] in place. It returns false once the
// consumer has stopped.
func (r *run) quicksort(start, end int) bool {
	if start >= end {
		if start == end {
			r.mark(start)
		}
		return r.settle()
	}

	p, ok := r.partition(start, end)
	if !ok {
		return false
	}

	return r.quicksort(start, p-1) && r.quicksort(p+1, end)
}

func (r *run) partition(start, end int) (int, bool) {
	pivot := r.a[end]
	i := start - 1

	for j := start; j < end; j++ {
		if !r.compare(j, end) {
			return 0, false
		}
		if r.a[j] < pivot {
			i++
			if i != j && !r.exchange(i, j) {
				return 0, false
			}
		}
	}

	p := i + 1
	if !r.exchange(p, end) {
		return 0, false
	}
	r.mark(p)

	return p, r.settle()
}
