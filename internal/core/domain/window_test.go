package domain

import "testing"

func TestWindow_EdgeControls(t *testing.T) {
	// For every list length and every valid start index, previous is
	// disabled exactly at the left edge and next exactly when the window
	// reaches past the end.
	for n := 0; n <= 10; n++ {
		for start := 0; start < n || start == 0; start++ {
			w := Window{Start: start, Size: CarouselPageSize}
			if got, want := w.PrevDisabled(), start == 0; got != want {
				t.Fatalf("n=%d start=%d: PrevDisabled=%v, want %v", n, start, got, want)
			}
			if got, want := w.NextDisabled(n), start+CarouselPageSize >= n; got != want {
				t.Fatalf("n=%d start=%d: NextDisabled=%v, want %v", n, start, got, want)
			}
			if n == 0 {
				break
			}
		}
	}
}

func TestWindow_Bounds(t *testing.T) {
	w := NewWindow()
	lo, hi := w.Bounds(2)
	if lo != 0 || hi != 2 {
		t.Fatalf("short list: got [%d,%d), want [0,2)", lo, hi)
	}

	lo, hi = Window{Start: 4, Size: 3}.Bounds(5)
	if lo != 4 || hi != 5 {
		t.Fatalf("tail window: got [%d,%d), want [4,5)", lo, hi)
	}

	lo, hi = Window{Start: 9, Size: 3}.Bounds(5)
	if lo != 5 || hi != 5 {
		t.Fatalf("past-end window: got [%d,%d), want [5,5)", lo, hi)
	}
}

func TestWindow_PrevNextClamp(t *testing.T) {
	w := NewWindow()
	if w.Prev() != w {
		t.Fatalf("Prev at left edge must not move")
	}

	w = w.Next(10)
	if w.Start != 1 {
		t.Fatalf("Next: start=%d, want 1", w.Start)
	}

	w = Window{Start: 7, Size: 3}
	if w.Next(10) != w {
		t.Fatalf("Next at right edge must not move")
	}

	// Walking forward then back returns to the origin.
	w = NewWindow()
	for i := 0; i < 20; i++ {
		w = w.Next(6)
	}
	if w.Start != 3 {
		t.Fatalf("forward walk clamped at %d, want 3", w.Start)
	}
	for i := 0; i < 20; i++ {
		w = w.Prev()
	}
	if w.Start != 0 {
		t.Fatalf("backward walk clamped at %d, want 0", w.Start)
	}
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := ValidRating(rating); got != want {
			t.Fatalf("ValidRating(%d)=%v, want %v", rating, got, want)
		}
	}
}
