package jsonpath

import (
	"fmt"
	"strconv"
)

type builder struct {
	src string
}

// build folds the matchers of a selector parse tree, left to right, into
// nested Sel nodes rooted at Root.
func build(src string, tree parseNode) (Expr, error) {
	b := builder{src: src}

	var acc Expr = Root{}
	for _, child := range tree.children {
		switch child.rule {
		case ruleRootSelector:
			continue
		case ruleMatcher:
			sel, err := b.selector(child.children[0])
			if err != nil {
				return nil, err
			}
			acc = Sel{Inner: acc, Selector: sel}
		default:
			return nil, b.unexpected(child)
		}
	}

	return acc, nil
}

func (b builder) selector(n parseNode) (Selector, error) {
	switch n.rule {
	case ruleWildcardedDotChild:
		return DotWildcard{}, nil
	case ruleNamedDotChild:
		return DotName(n.children[0].text(b.src)), nil
	case ruleUnion:
		return b.union(n)
	case ruleDescendant:
		inner, err := b.selector(n.children[0])
		if err != nil {
			return nil, err
		}
		return Descendant{Selector: inner}, nil
	default:
		return nil, b.unexpected(n)
	}
}

func (b builder) union(n parseNode) (Union, error) {
	elems := make(Union, 0, len(n.children))
	for _, child := range n.children {
		elem, err := b.unionElement(child)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func (b builder) unionElement(n parseNode) (UnionElement, error) {
	switch n.rule {
	case ruleUnionChild:
		return b.name(n.children[0])
	case ruleUnionArrayIndex:
		i, err := b.integer(n)
		if err != nil {
			return nil, err
		}
		return Index(i), nil
	case ruleUnionArraySlice:
		return b.slice(n)
	default:
		return nil, b.unexpected(n)
	}
}

func (b builder) name(n parseNode) (UnionElement, error) {
	var (
		s   string
		err error
	)
	switch n.rule {
	case ruleDoubleInner:
		s, err = unescapeDouble(n.text(b.src))
	case ruleSingleInner:
		s, err = unescapeSingle(n.text(b.src))
	default:
		return nil, b.unexpected(n)
	}
	if err != nil {
		return nil, &SyntaxError{
			Selector: b.src,
			Offset:   n.start,
			Msg:      fmt.Sprintf("invalid string literal: %v", err),
			Err:      err,
		}
	}
	return Name(s), nil
}

func (b builder) slice(n parseNode) (Slice, error) {
	var s Slice
	for _, child := range n.children {
		v, err := b.integer(child)
		if err != nil {
			return Slice{}, err
		}
		switch child.rule {
		case ruleSliceStart:
			s.Start = &v
		case ruleSliceEnd:
			s.End = &v
		case ruleSliceStep:
			s.Step = &v
		default:
			return Slice{}, b.unexpected(child)
		}
	}
	return s, nil
}

func (b builder) integer(n parseNode) (int64, error) {
	v, err := strconv.ParseInt(n.text(b.src), 10, 64)
	if err != nil {
		return 0, &SyntaxError{
			Selector: b.src,
			Offset:   n.start,
			Msg:      fmt.Sprintf("invalid integer %q", n.text(b.src)),
			Err:      err,
		}
	}
	return v, nil
}

// unexpected reports a parse tree the grammar cannot produce.
func (b builder) unexpected(n parseNode) error {
	return &SyntaxError{
		Selector: b.src,
		Offset:   n.start,
		Msg:      fmt.Sprintf("invalid parse tree: unexpected %s", n.rule),
	}
}
