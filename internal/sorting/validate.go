package sorting

import "slices"

// Summary tallies a validated sequence.
type Summary struct {
	Steps    int
	Compares int
	Swaps    int
	Final    Step
}

// Validate consumes seq and checks it against the step contract for input:
// every array is a permutation of input, highlights stay in range and never
// mix, the sorted set never shrinks, and the last step is fully sorted.
// A sequence with no steps is accepted only for an empty input.
func Validate(input []int, seq Sequence) (Summary, error) {
	want := slices.Clone(input)
	slices.Sort(want)

	var sum Summary
	var prev IndexSet
	n := len(input)

	for step := range seq {
		idx := sum.Steps
		sum.Steps++

		if len(step.Array) != n {
			return sum, &ContractError{Step: idx, Wrapped: ErrNotPermutation}
		}
		got := slices.Clone(step.Array)
		slices.Sort(got)
		if !slices.Equal(got, want) {
			return sum, &ContractError{Step: idx, Wrapped: ErrNotPermutation}
		}

		for _, set := range []IndexSet{step.Comparing, step.Swapping, step.Sorted} {
			for _, i := range set {
				if i < 0 || i >= n {
					return sum, &ContractError{Step: idx, Wrapped: ErrIndexOutOfRange}
				}
			}
		}

		if !step.Comparing.Empty() && !step.Swapping.Empty() {
			return sum, &ContractError{Step: idx, Wrapped: ErrMixedHighlight}
		}
		if !prev.SubsetOf(step.Sorted) {
			return sum, &ContractError{Step: idx, Wrapped: ErrSortedShrank}
		}
		prev = step.Sorted

		switch step.Kind() {
		case StepCompare:
			sum.Compares++
		case StepSwap:
			sum.Swaps++
		}
		sum.Final = step
	}

	if sum.Steps == 0 {
		if n == 0 {
			return sum, nil
		}
		return sum, &ContractError{Step: 0, Wrapped: ErrIncompleteFinal}
	}

	last := sum.Steps - 1
	if !slices.Equal(sum.Final.Array, want) {
		return sum, &ContractError{Step: last, Wrapped: ErrUnsortedFinal}
	}
	if !sum.Final.Sorted.Equal(RangeSet(n)) {
		return sum, &ContractError{Step: last, Wrapped: ErrIncompleteFinal}
	}

	return sum, nil
}
