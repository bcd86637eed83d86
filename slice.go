package jsonpath

import "iter"

// indices returns the array positions selected by s over an array of the
// given length, in visiting order. Every yielded index is in [0, length).
//
// Bounds are clamped before walking so the work is O(length) no matter how
// large the start, end or step magnitudes are.
func (s Slice) indices(length int) iter.Seq[int] {
	n := int64(length)

	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}

	return func(yield func(int) bool) {
		switch {
		case step == 0 || n == 0:
			return
		case step > 0:
			lo := clamp(normalize(s.Start, 0, n), 0, n)
			hi := clamp(normalize(s.End, n, n), 0, n)
			for i := lo; i < hi; {
				if !yield(int(i)) {
					return
				}
				if step >= hi-i {
					return
				}
				i += step
			}
		default:
			hi := clamp(normalize(s.Start, n-1, n), -1, n-1)
			lo := clamp(normalize(s.End, -1, n), -1, n-1)
			for i := hi; i > lo; {
				if !yield(int(i)) {
					return
				}
				// step is negative; compare without negating it
				if step <= lo-i {
					return
				}
				i += step
			}
		}
	}
}

// normalize resolves an optional slice bound. Explicit negative bounds
// count from the end of the array; omitted bounds take def as is.
func normalize(bound *int64, def, length int64) int64 {
	if bound == nil {
		return def
	}
	if *bound < 0 {
		return *bound + length
	}
	return *bound
}

func clamp(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

// absIndex resolves a possibly negative index against an array length.
// ok is false when the index falls outside the array.
func absIndex(i Index, length int) (int, bool) {
	idx := int64(i)
	n := int64(length)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return int(idx), true
}
