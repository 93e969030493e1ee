package sorting

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// IndexSet is an ascending set of array positions.
type IndexSet []int

// NewIndexSet builds a set from positions in any order, dropping duplicates.
func NewIndexSet(idx ...int) IndexSet {
	s := make(IndexSet, len(idx))
	copy(s, idx)
	slices.Sort(s)
	return slices.Compact(s)
}

// RangeSet returns {0, 1, ..., n-1}.
func RangeSet(n int) IndexSet {
	s := make(IndexSet, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func (s IndexSet) Len() int    { return len(s) }
func (s IndexSet) Empty() bool { return len(s) == 0 }

func (s IndexSet) Contains(i int) bool {
	_, ok := slices.BinarySearch(s, i)
	return ok
}

// SubsetOf reports whether every position in s is also in other.
func (s IndexSet) SubsetOf(other IndexSet) bool {
	for _, i := range s {
		if !other.Contains(i) {
			return false
		}
	}
	return true
}

func (s IndexSet) Equal(other IndexSet) bool { return slices.Equal(s, other) }

func (s IndexSet) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// StepKind classifies what a step shows.
type StepKind int

const (
	// StepSettle has no highlighted operation, only array and sorted state.
	StepSettle StepKind = iota
	// StepCompare highlights two positions being compared.
	StepCompare
	// StepSwap highlights positions being exchanged or written.
	StepSwap
)

func (k StepKind) String() string {
	switch k {
	case StepCompare:
		return "compare"
	case StepSwap:
		return "swap"
	default:
		return "settle"
	}
}

// Step is one immutable snapshot of sort progress. Array is a private copy
// and may be retained after the sequence moves on.
type Step struct {
	Array     []int    `json:"array"`
	Comparing IndexSet `json:"comparing"`
	Swapping  IndexSet `json:"swapping"`
	Sorted    IndexSet `json:"sorted"`
}

func (s Step) Kind() StepKind {
	switch {
	case !s.Comparing.Empty():
		return StepCompare
	case !s.Swapping.Empty():
		return StepSwap
	default:
		return StepSettle
	}
}

// Sequence is the ordered, finite stream of steps for one run.
type Sequence = iter.Seq[Step]

// Engine produces a step sequence for one sorting algorithm.
type Engine interface {
	Info() Info
	Steps(input []int) Sequence
}

// run is the single owner of the mutable state behind one sequence: the
// working array and the sorted-position accumulator. Recursive helpers
// receive it by pointer and are its only writers.
type run struct {
	a      []int
	marked []bool
	sorted IndexSet
	yield  func(Step) bool
}

func newRun(input []int, yield func(Step) bool) *run {
	a := make([]int, len(input))
	copy(a, input)
	return &run{
		a:      a,
		marked: make([]bool, len(input)),
		sorted: IndexSet{},
		yield:  yield,
	}
}

// mark adds i to the sorted set; marking twice is a no-op.
func (r *run) mark(i int) {
	if i < 0 || i >= len(r.a) || r.marked[i] {
		return
	}
	r.marked[i] = true
	pos, _ := slices.BinarySearch(r.sorted, i)
	r.sorted = slices.Insert(r.sorted, pos, i)
}

// emit yields a snapshot and reports whether the consumer wants more.
func (r *run) emit(comparing, swapping IndexSet) bool {
	if comparing == nil {
		comparing = IndexSet{}
	}
	if swapping == nil {
		swapping = IndexSet{}
	}
	a := make([]int, len(r.a))
	copy(a, r.a)
	sorted := make(IndexSet, len(r.sorted))
	copy(sorted, r.sorted)
	return r.yield(Step{Array: a, Comparing: comparing, Swapping: swapping, Sorted: sorted})
}

func (r *run) compare(i, j int) bool { return r.emit(NewIndexSet(i, j), nil) }

// exchange shows i and j as swapping with their pre-swap values, then
// swaps them in the working array.
func (r *run) exchange(i, j int) bool {
	if !r.emit(nil, NewIndexSet(i, j)) {
		return false
	}
	r.a[i], r.a[j] = r.a[j], r.a[i]
	return true
}

func (r *run) wrote(k int) bool { return r.emit(nil, IndexSet{k}) }

func (r *run) settle() bool { return r.emit(nil, nil) }

// Role is how a single position should be highlighted.
type Role int

const (
	RoleIdle Role = iota
	RoleComparing
	RoleSwapping
	RoleSorted
)

func (r Role) String() string {
	switch r {
	case RoleComparing:
		return "comparing"
	case RoleSwapping:
		return "swapping"
	case RoleSorted:
		return "sorted"
	default:
		return "idle"
	}
}

// RoleOf resolves the highlight for position i. Sorted wins over swapping,
// which wins over comparing.
func RoleOf(i int, comparing, swapping, sorted IndexSet) Role {
	switch {
	case sorted.Contains(i):
		return RoleSorted
	case swapping.Contains(i):
		return RoleSwapping
	case comparing.Contains(i):
		return RoleComparing
	default:
		return RoleIdle
	}
}

func (s Step) Role(i int) Role { return RoleOf(i, s.Comparing, s.Swapping, s.Sorted) }
