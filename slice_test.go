package jsonpath

import (
	"math"
	"reflect"
	"slices"
	"testing"
)

func TestSliceIndices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		slice  Slice
		length int
		want   []int
	}{
		{name: "all", slice: Slice{}, length: 4, want: []int{0, 1, 2, 3}},
		{name: "from_one", slice: Slice{Start: ptr(1)}, length: 4, want: []int{1, 2, 3}},
		{name: "to_two", slice: Slice{End: ptr(2)}, length: 4, want: []int{0, 1}},
		{name: "step_two", slice: Slice{Step: ptr(2)}, length: 5, want: []int{0, 2, 4}},
		{name: "negative_start", slice: Slice{Start: ptr(-2)}, length: 4, want: []int{2, 3}},
		{name: "negative_end", slice: Slice{End: ptr(-1)}, length: 4, want: []int{0, 1, 2}},
		{name: "reverse", slice: Slice{Step: ptr(-1)}, length: 3, want: []int{2, 1, 0}},
		{name: "reverse_step_two", slice: Slice{Step: ptr(-2)}, length: 5, want: []int{4, 2, 0}},
		{name: "reverse_bounded", slice: Slice{Start: ptr(3), End: ptr(0), Step: ptr(-1)}, length: 5, want: []int{3, 2, 1}},
		{name: "reverse_negative_end", slice: Slice{End: ptr(-3), Step: ptr(-1)}, length: 5, want: []int{4, 3}},
		{name: "empty_range", slice: Slice{Start: ptr(3), End: ptr(1)}, length: 5, want: nil},
		{name: "zero_step", slice: Slice{Step: ptr(0)}, length: 5, want: nil},
		{name: "empty_array", slice: Slice{}, length: 0, want: nil},
		{name: "start_past_end", slice: Slice{Start: ptr(10)}, length: 3, want: nil},
		{name: "start_before_begin", slice: Slice{Start: ptr(-10)}, length: 3, want: []int{0, 1, 2}},
		{name: "reverse_start_past_end", slice: Slice{Start: ptr(10), Step: ptr(-1)}, length: 3, want: []int{2, 1, 0}},
		{name: "huge_step", slice: Slice{Step: ptr(math.MaxInt64)}, length: 3, want: []int{0}},
		{name: "huge_negative_step", slice: Slice{Step: ptr(math.MinInt64)}, length: 3, want: []int{2}},
		{name: "extreme_bounds", slice: Slice{Start: ptr(math.MinInt64), End: ptr(math.MaxInt64)}, length: 3, want: []int{0, 1, 2}},
		{name: "extreme_bounds_reversed", slice: Slice{Start: ptr(math.MaxInt64), End: ptr(math.MinInt64), Step: ptr(-1)}, length: 3, want: []int{2, 1, 0}},
		{name: "extreme_everything", slice: Slice{Start: ptr(math.MaxInt64), End: ptr(math.MinInt64), Step: ptr(math.MinInt64)}, length: 3, want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slices.Collect(tt.slice.indices(tt.length))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s.indices(%d) = %v, want %v", tt.slice, tt.length, got, tt.want)
			}
		})
	}
}

// naiveIndices applies the normalize-then-clamp bounds with a plain loop,
// which is only safe for small steps.
func naiveIndices(s Slice, length int) []int {
	n := int64(length)
	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return nil
	}

	var out []int
	if step > 0 {
		lo := min(max(normalize(s.Start, 0, n), 0), n)
		hi := min(max(normalize(s.End, n, n), 0), n)
		for i := lo; i < hi; i += step {
			out = append(out, int(i))
		}
		return out
	}

	hi := min(max(normalize(s.Start, n-1, n), -1), n-1)
	lo := min(max(normalize(s.End, -1, n), -1), n-1)
	for i := hi; i > lo; i += step {
		out = append(out, int(i))
	}
	return out
}

func TestSliceIndicesMatchNaive(t *testing.T) {
	t.Parallel()

	bounds := []*int64{nil, ptr(-7), ptr(-3), ptr(-1), ptr(0), ptr(1), ptr(2), ptr(5), ptr(8)}
	steps := []*int64{nil, ptr(-3), ptr(-2), ptr(-1), ptr(1), ptr(2), ptr(4)}

	for length := range 7 {
		for _, start := range bounds {
			for _, end := range bounds {
				for _, step := range steps {
					s := Slice{Start: start, End: end, Step: step}
					got := slices.Collect(s.indices(length))
					want := naiveIndices(s, length)
					if !reflect.DeepEqual(got, want) {
						t.Fatalf("%s.indices(%d) = %v, want %v", s, length, got, want)
					}
				}
			}
		}
	}
}

func TestSliceIndicesStopEarly(t *testing.T) {
	t.Parallel()

	var got []int
	for i := range (Slice{}).indices(10) {
		got = append(got, i)
		if len(got) == 3 {
			break
		}
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("indices() = %v, want [0 1 2]", got)
	}
}

func TestAbsIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index  Index
		length int
		want   int
		ok     bool
	}{
		{index: 0, length: 3, want: 0, ok: true},
		{index: 2, length: 3, want: 2, ok: true},
		{index: 3, length: 3},
		{index: -1, length: 3, want: 2, ok: true},
		{index: -3, length: 3, want: 0, ok: true},
		{index: -4, length: 3},
		{index: 0, length: 0},
		{index: math.MaxInt64, length: 3},
		{index: math.MinInt64, length: 3},
	}

	for _, tt := range tests {
		got, ok := absIndex(tt.index, tt.length)
		if got != tt.want || ok != tt.ok {
			t.Errorf("absIndex(%d, %d) = (%d, %t), want (%d, %t)", tt.index, tt.length, got, ok, tt.want, tt.ok)
		}
	}
}
