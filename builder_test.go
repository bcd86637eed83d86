package jsonpath

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"
)

func ptr(v int64) *int64 { return &v }

func TestParseExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		selector string
		want     Expr
	}{
		{
			selector: "$",
			want:     Root{},
		},
		{
			selector: "$.foo[1,2]['bar']",
			want: Sel{
				Inner: Sel{
					Inner:    Sel{Inner: Root{}, Selector: DotName("foo")},
					Selector: Union{Index(1), Index(2)},
				},
				Selector: Union{Name("bar")},
			},
		},
		{
			selector: "$.*",
			want:     Sel{Inner: Root{}, Selector: DotWildcard{}},
		},
		{
			selector: `$["aé\"",'it\'s']`,
			want:     Sel{Inner: Root{}, Selector: Union{Name(`aé"`), Name("it's")}},
		},
		{
			selector: `$["😀"]`,
			want:     Sel{Inner: Root{}, Selector: Union{Name("😀")}},
		},
		{
			selector: "$[:]",
			want:     Sel{Inner: Root{}, Selector: Union{Slice{}}},
		},
		{
			selector: "$[1:-2:3,::-1,-0]",
			want: Sel{Inner: Root{}, Selector: Union{
				Slice{Start: ptr(1), End: ptr(-2), Step: ptr(3)},
				Slice{Step: ptr(-1)},
				Index(0),
			}},
		},
		{
			selector: "$[007]",
			want:     Sel{Inner: Root{}, Selector: Union{Index(7)}},
		},
		{
			selector: "$[-9223372036854775808:9223372036854775807]",
			want: Sel{Inner: Root{}, Selector: Union{
				Slice{Start: ptr(math.MinInt64), End: ptr(math.MaxInt64)},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.selector)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.selector, err)
			}
			if !reflect.DeepEqual(p.Expr(), tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.selector, p.Expr(), tt.want)
			}
		})
	}
}

func TestParseDescendantExpr(t *testing.T) {
	t.Parallel()

	p := MustParse("$.a..b..[0]", WithDescendants())
	want := Sel{
		Inner: Sel{
			Inner:    Sel{Inner: Root{}, Selector: DotName("a")},
			Selector: Descendant{Selector: DotName("b")},
		},
		Selector: Descendant{Selector: Union{Index(0)}},
	}
	if !reflect.DeepEqual(p.Expr(), want) {
		t.Errorf("Expr() = %#v, want %#v", p.Expr(), want)
	}
}

func TestParseIntegerOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		selector string
		offset   int
	}{
		{selector: "$[9223372036854775808]", offset: 2},
		{selector: "$[-9223372036854775809]", offset: 2},
		{selector: "$[0:99999999999999999999]", offset: 4},
		{selector: "$[::99999999999999999999]", offset: 4},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.selector)

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.selector, err)
			}
			if syntaxErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", syntaxErr.Offset, tt.offset)
			}

			var numErr *strconv.NumError
			if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
				t.Errorf("Parse(%q) error = %v, want wrapped strconv.ErrRange", tt.selector, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("errors.Is(%v, ErrSyntax) = false", err)
			}
		})
	}
}

func TestParseInvalidLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		selector string
		offset   int
		wantErr  error
	}{
		{selector: `$["\ud800"]`, offset: 3, wantErr: errLoneSurrogate},
		{selector: `$["\udc00"]`, offset: 3, wantErr: errLoneSurrogate},
		{selector: `$['x\ud83dy']`, offset: 3, wantErr: errLoneSurrogate},
		{selector: `$["\ud83dA"]`, offset: 3, wantErr: errLoneSurrogate},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.selector)

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.selector, err)
			}
			if syntaxErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", syntaxErr.Offset, tt.offset)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.selector, err, tt.wantErr)
			}
		})
	}
}

func TestBuildRejectsForeignTree(t *testing.T) {
	t.Parallel()

	tree := parseNode{
		rule:     ruleSelector,
		children: []parseNode{{rule: ruleSliceStep, start: 0, end: 1}},
	}
	_, err := build("$", tree)
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("build() error = %v, want ErrSyntax", err)
	}
}

func TestExprString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr Expr
		want string
	}{
		{expr: Root{}, want: "$"},
		{expr: Sel{Inner: Root{}, Selector: DotName("a")}, want: "$.a"},
		{expr: Sel{Inner: Root{}, Selector: Union{Name("a\"b\\\n\x01")}}, want: `$["a\"b\\\n\u0001"]`},
		{expr: Sel{Inner: Root{}, Selector: Union{Slice{}, Slice{Step: ptr(2)}, Index(-1)}}, want: "$[:,::2,-1]"},
		{expr: Sel{Inner: Root{}, Selector: Descendant{Selector: DotWildcard{}}}, want: "$..*"},
		{expr: Sel{Inner: Root{}, Selector: Descendant{Selector: Union{Name("x")}}}, want: `$..["x"]`},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
