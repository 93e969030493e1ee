// Package session drives one sorting run at a time for the presentation
// layer.
//
// A [Controller] owns the working array, highlighted positions and
// counters. [Controller.Start] pulls steps from a [sorting.Sequence] on a
// background goroutine, applies each one atomically, then sleeps for the
// pacing interval. [Controller.Pause] and [Controller.Reset] take effect at
// the next step boundary.
//
// Comparison and swap counters are edge-triggered: a contiguous stretch of
// compare steps counts as one comparison.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
package session
