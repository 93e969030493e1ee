// Package sorting provides the step-producing sorting engines.
//
// Every engine turns an input array into a lazy, finite [Sequence] of
// [Step] snapshots. A step carries a full copy of the array plus the
// positions being compared, the positions being written, and the positions
// already known to be final:
//
//   - [Bubble]: adjacent compare/exchange passes
//   - [Quick]: Lomuto partition around the last element
//   - [Merge]: top-down stable merge sort
//
// # Example
//
//	seq, _ := sorting.Run(sorting.KindQuick, []int{5, 3, 1})
//	for step := range seq {
//		fmt.Println(step.Array, step.Comparing, step.Swapping)
//	}
//
// # Thread Safety
//
// Engines hold no state between calls and may be shared. A single
// [Sequence] must be consumed by one goroutine; each range over it replays
// the run from the original input.
package sorting
