// Package viz provides the interactive terminal UI for a sorting session.
//
// [Model] is a Bubble Tea model over a [session.Controller]. It re-renders
// on a fixed frame tick, draws one colored bar per array position and shows
// the running counters next to them.
//
// # Key Bindings
//
//	Space - Start/Pause
//	R     - Reset with a new array
//	S     - Shuffle
//	A     - Cycle algorithms
//	+/-   - Shorter/longer step delay
//	]/[   - Grow/shrink the array
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Configuration keys are ignored by the controller while a run is active.
package viz
