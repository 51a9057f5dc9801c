package domain

// CarouselPageSize is the number of reviews the carousel shows at once.
const CarouselPageSize = 3

// Window is the sliding view the review carousel keeps over the full ordered
// review list. The server always returns the complete set; windowing state is
// purely a client-side concern, and this type is the contract the client
// implements: previous is disabled exactly at the left edge, next exactly
// when the window reaches past the last element.
type Window struct {
	Start int
	Size  int
}

// NewWindow returns a window of the default carousel size anchored at the
// first element.
func NewWindow() Window {
	return Window{Start: 0, Size: CarouselPageSize}
}

// Bounds returns the half-open slice range [lo, hi) clamped to a list of n
// elements.
func (w Window) Bounds(n int) (lo, hi int) {
	lo = w.Start
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	hi = lo + w.Size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// PrevDisabled reports whether the previous control must be disabled.
func (w Window) PrevDisabled() bool {
	return w.Start <= 0
}

// NextDisabled reports whether the next control must be disabled for a list
// of n elements.
func (w Window) NextDisabled(n int) bool {
	return w.Start+w.Size >= n
}

// Prev slides the window one element left, clamped at the start.
func (w Window) Prev() Window {
	if w.PrevDisabled() {
		return w
	}
	w.Start--
	return w
}

// Next slides the window one element right, clamped so the window never moves
// past the last element of a list of n.
func (w Window) Next(n int) Window {
	if w.NextDisabled(n) {
		return w
	}
	w.Start++
	return w
}
