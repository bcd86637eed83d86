package jsonpath

import (
	"strconv"
	"strings"
)

// Expr is a node of the compiled selector tree.
//
// The tree is left associative: `$.foo[1,2]['bar']` is built as
//
//	Sel{Sel{Sel{Root{}, DotName("foo")}, Union{1, 2}}, Union{"bar"}}
//
// so the outermost node holds the last selector written and Root is
// always the left-most leaf.
type Expr interface {
	expr()
	String() string
}

// Root selects the whole document.
type Root struct{}

// Sel applies Selector to every node matched by Inner.
type Sel struct {
	Inner    Expr
	Selector Selector
}

func (Root) expr() {}
func (Sel) expr()  {}

func (Root) String() string { return "$" }

func (s Sel) String() string {
	return s.Inner.String() + s.Selector.String()
}

// Selector is one step of a selector chain.
type Selector interface {
	selector()
	String() string
}

type (
	// Union concatenates the matches of each element, in declared order.
	Union []UnionElement

	// DotName selects the member with the given name.
	DotName string

	// DotWildcard selects every member value or array element.
	DotWildcard struct{}

	// Descendant applies Selector to a node and to all of its descendants.
	// It is only produced when parsing WithDescendants.
	Descendant struct {
		Selector Selector
	}
)

func (Union) selector()       {}
func (DotName) selector()     {}
func (DotWildcard) selector() {}
func (Descendant) selector()  {}

func (u Union) String() string {
	parts := make([]string, len(u))
	for i, e := range u {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (n DotName) String() string { return "." + string(n) }

func (DotWildcard) String() string { return ".*" }

func (d Descendant) String() string {
	switch s := d.Selector.(type) {
	case DotName:
		return ".." + string(s)
	case DotWildcard:
		return "..*"
	default:
		return ".." + s.String()
	}
}

// UnionElement is one member of a bracketed union.
type UnionElement interface {
	unionElement()
	String() string
}

type (
	// Name selects an object member.
	Name string

	// Index selects an array element; negative values count from the end.
	Index int64

	// Slice selects a range of array elements. A nil bound is omitted.
	Slice struct {
		Start, End, Step *int64
	}
)

func (Name) unionElement()  {}
func (Index) unionElement() {}
func (Slice) unionElement() {}

func (n Name) String() string { return quoteName(string(n)) }

// quoteName renders a double-quoted literal the grammar accepts back.
func quoteName(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

const hexDigits = "0123456789abcdef"

func (i Index) String() string { return strconv.FormatInt(int64(i), 10) }

func (s Slice) String() string {
	var b strings.Builder
	writeBound(&b, s.Start)
	b.WriteByte(':')
	writeBound(&b, s.End)
	if s.Step != nil {
		b.WriteByte(':')
		writeBound(&b, s.Step)
	}
	return b.String()
}

func writeBound(b *strings.Builder, v *int64) {
	if v != nil {
		b.WriteString(strconv.FormatInt(*v, 10))
	}
}
