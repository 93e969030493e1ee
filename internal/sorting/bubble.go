package sorting

// Bubble compares adjacent pairs and exchanges them when out of order.
// Equal neighbours are never exchanged.
type Bubble struct{}

func NewBubble() *Bubble { return &Bubble{} }

func (b *Bubble) Info() Info { return infos[KindBubble] }

func (b *Bubble) Steps(input []int) Sequence {
	return func(yield func(Step) bool) {
		r := newRun(input, yield)
		n := len(r.a)

		for i := 0; i < n-1; i++ {
			for j := 0; j < n-i-1; j++ {
				if !r.compare(j, j+1) {
					return
				}
				if r.a[j] > r.a[j+1] {
					if !r.exchange(j, j+1) {
						return
					}
				}
			}
			r.mark(n - i - 1)
		}
		if n > 0 {
			r.mark(0)
		}

		r.settle()
	}
}
