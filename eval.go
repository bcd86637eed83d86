package jsonpath

import (
	"iter"
	"maps"
	"slices"

	"github.com/jacoelho/jsonpath/internal/stack"
)

// Members is implemented by object representations that keep their
// members in insertion order. Values must yield member values in that order.
//
// Objects decoded into map[string]any are also accepted; since Go maps
// carry no order, their members are visited in sorted key order.
type Members interface {
	Get(key string) (any, bool)
	Values() iter.Seq[any]
}

// walk streams the nodes matched by e over doc into yield, stopping early
// when yield returns false. It reports whether the walk ran to completion.
func walk(e Expr, doc any, yield func(any) bool) bool {
	switch e := e.(type) {
	case Root:
		return yield(doc)
	case Sel:
		return walk(e.Inner, doc, func(v any) bool {
			return apply(e.Selector, v, yield)
		})
	default:
		return true
	}
}

func apply(sel Selector, v any, yield func(any) bool) bool {
	switch s := sel.(type) {
	case DotName:
		return yieldMember(v, string(s), yield)
	case DotWildcard:
		for child := range children(v) {
			if !yield(child) {
				return false
			}
		}
		return true
	case Union:
		for _, elem := range s {
			if !applyElement(elem, v, yield) {
				return false
			}
		}
		return true
	case Descendant:
		return descend(v, func(n any) bool {
			return apply(s.Selector, n, yield)
		})
	default:
		return true
	}
}

func applyElement(elem UnionElement, v any, yield func(any) bool) bool {
	switch e := elem.(type) {
	case Name:
		return yieldMember(v, string(e), yield)
	case Index:
		arr, ok := v.([]any)
		if !ok {
			return true
		}
		if i, ok := absIndex(e, len(arr)); ok {
			return yield(arr[i])
		}
		return true
	case Slice:
		arr, ok := v.([]any)
		if !ok {
			return true
		}
		for i := range e.indices(len(arr)) {
			if !yield(arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func yieldMember(v any, key string, yield func(any) bool) bool {
	switch obj := v.(type) {
	case Members:
		if child, ok := obj.Get(key); ok {
			return yield(child)
		}
	case map[string]any:
		if child, ok := obj[key]; ok {
			return yield(child)
		}
	}
	return true
}

// children yields the member values of an object or the elements of an
// array. Scalars have no children.
func children(v any) iter.Seq[any] {
	return func(yield func(any) bool) {
		switch c := v.(type) {
		case Members:
			for child := range c.Values() {
				if !yield(child) {
					return
				}
			}
		case map[string]any:
			for _, key := range slices.Sorted(maps.Keys(c)) {
				if !yield(c[key]) {
					return
				}
			}
		case []any:
			for _, child := range c {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// descend visits v and then every descendant of v in document order
// (pre-order, children in member or index order).
func descend(v any, visit func(any) bool) bool {
	pending := stack.New[any]()
	pending.Push(v)

	var siblings []any
	for !pending.IsEmpty() {
		n, _ := pending.Pop()
		if !visit(n) {
			return false
		}

		siblings = slices.AppendSeq(siblings[:0], children(n))
		slices.Reverse(siblings)
		pending.Push(siblings...)
	}
	return true
}
