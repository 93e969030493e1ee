package sorting

import (
	"fmt"
	"strings"
)

// Kind identifies a sorting algorithm.
type Kind string

const (
	KindBubble Kind = "bubble"
	KindQuick  Kind = "quick"
	KindMerge  Kind = "merge"
)

// Info describes an algorithm for display.
type Info struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Complexity  string `json:"complexity"`
	Description string `json:"description"`
}

var infos = map[Kind]Info{
	KindBubble: {
		Kind:        KindBubble,
		Name:        "Bubble Sort",
		Complexity:  "O(n²)",
		Description: "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
	},
	KindQuick: {
		Kind:        KindQuick,
		Name:        "Quick Sort",
		Complexity:  "O(n log n)",
		Description: "Divides array into smaller sub-arrays using a pivot element and recursively sorts them.",
	},
	KindMerge: {
		Kind:        KindMerge,
		Name:        "Merge Sort",
		Complexity:  "O(n log n)",
		Description: "Divides array into halves, recursively sorts them, and then merges the sorted halves.",
	},
}

var order = []Kind{KindBubble, KindQuick, KindMerge}

var engines = map[Kind]func() Engine{
	KindBubble: func() Engine { return NewBubble() },
	KindQuick:  func() Engine { return NewQuick() },
	KindMerge:  func() Engine { return NewMerge() },
}

// Lookup returns the engine registered for kind.
func Lookup(kind Kind) (Engine, error) {
	fn, ok := engines[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, kind)
	}
	return fn(), nil
}

// Run builds a fresh step sequence of kind over a copy of input.
func Run(kind Kind, input []int) (Sequence, error) {
	eng, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return eng.Steps(input), nil
}

// Kinds lists the registered algorithms in display order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// InfoFor returns display info for kind.
func InfoFor(kind Kind) (Info, bool) {
	info, ok := infos[kind]
	return info, ok
}

// ParseKind accepts "quick", "Quick", "quicksort" or "quick-sort".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(strings.TrimSuffix(name, "sort"), "-")
	name = strings.TrimSpace(strings.TrimSuffix(name, "_"))
	k := Kind(name)
	if _, ok := engines[k]; !ok {
		return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownAlgorithm, s, order)
	}
	return k, nil
}

// Next returns the algorithm after kind in display order, wrapping around.
func Next(kind Kind) Kind {
	for i, k := range order {
		if k == kind {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
