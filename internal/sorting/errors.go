package sorting

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned for an algorithm name with no engine.
var ErrUnknownAlgorithm = errors.New("sorting: unknown algorithm")

// Step contract violations reported by Validate.
var (
	// ErrNotPermutation indicates a step array that is not a permutation of the input.
	ErrNotPermutation = errors.New("sorting: array is not a permutation of the input")

	// ErrSortedShrank indicates a position dropped out of the sorted set.
	ErrSortedShrank = errors.New("sorting: sorted set shrank")

	// ErrMixedHighlight indicates a step comparing and swapping at once.
	ErrMixedHighlight = errors.New("sorting: step both compares and swaps")

	// ErrIndexOutOfRange indicates a highlighted position outside the array.
	ErrIndexOutOfRange = errors.New("sorting: index out of range")

	// ErrUnsortedFinal indicates the final array is not in ascending order.
	ErrUnsortedFinal = errors.New("sorting: final array not sorted")

	// ErrIncompleteFinal indicates the final sorted set misses positions.
	ErrIncompleteFinal = errors.New("sorting: final sorted set incomplete")
)

// ContractError wraps a violation with the step it occurred at.
type ContractError struct {
	Step    int
	Wrapped error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *ContractError) Unwrap() error {
	return e.Wrapped
}
