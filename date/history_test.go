package date

import (
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	on := New(2025, 1, 2)
	h.Append(on, 1).Append(New(2025, 1, 3), 2).Append(on, 3)

	if h.Len() != 2 {
		t.Fatalf("Len() = %v want 2", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 3 {
		t.Errorf("Get(%v) = %v, %v want 3, true", on, v, ok)
	}
}

func TestWithin(t *testing.T) {
	h := new(History[float64])
	for i := 1; i <= 10; i++ {
		h.Append(New(2025, 1, i), float64(i))
	}

	testCases := []struct {
		name string
		r    Range
		want []float64
	}{
		{"inner", Range{New(2025, 1, 3), New(2025, 1, 5)}, []float64{3, 4, 5}},
		{"outer", Range{New(2024, 12, 1), New(2025, 2, 1)}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"open from", Range{To: New(2025, 1, 2)}, []float64{1, 2}},
		{"empty", Range{New(2025, 3, 1), New(2025, 3, 2)}, []float64{}},
		{"reversed", Range{New(2025, 1, 5), New(2025, 1, 3)}, []float64{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Within(tc.r).Slice()
			if !slices.Equal(got, tc.want) {
				t.Errorf("Within(%v) = %v want %v", tc.r, got, tc.want)
			}
		})
	}
	if h.Len() != 10 {
		t.Errorf("Within() modified the history: Len() = %v want 10", h.Len())
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[float64])
	if d, v := h.Latest(); !d.IsZero() || v != 0 {
		t.Errorf("empty Latest() = %v, %v want zero values", d, v)
	}
	h.Append(New(2025, 3, 1), 3).Append(New(2025, 1, 1), 1)
	if d, v := h.First(); d != New(2025, 1, 1) || v != 1 {
		t.Errorf("First() = %v, %v want 2025-01-01, 1", d, v)
	}
	if d, v := h.Latest(); d != New(2025, 3, 1) || v != 3 {
		t.Errorf("Latest() = %v, %v want 2025-03-01, 3", d, v)
	}
}
