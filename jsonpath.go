package jsonpath

import "iter"

// NodeList is the ordered result of applying a Path to a document.
// Entries are the document's own values; the same node may appear more
// than once.
type NodeList []any

// Path is a compiled selector. It holds no mutable state and is safe for
// concurrent use.
type Path struct {
	text string
	expr Expr
}

// Option configures how a selector is parsed.
type Option func(*options)

type options struct {
	descendants bool
}

// WithDescendants enables descendant segments (`..name`, `..*`, `..[...]`),
// which are not part of the baseline grammar.
func WithDescendants() Option {
	return func(o *options) {
		o.descendants = true
	}
}

// Parse compiles selector into a Path.
// On failure the returned error is a *SyntaxError matching ErrSyntax.
func Parse(selector string, opts ...Option) (*Path, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tree, err := parseGrammar(selector, o.descendants)
	if err != nil {
		return nil, err
	}

	expr, err := build(selector, tree)
	if err != nil {
		return nil, err
	}

	return &Path{text: selector, expr: expr}, nil
}

// MustParse is like Parse but panics if the selector cannot be parsed.
func MustParse(selector string, opts ...Option) *Path {
	p, err := Parse(selector, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks if a selector is syntactically valid.
func Validate(selector string, opts ...Option) error {
	_, err := Parse(selector, opts...)
	return err
}

// Find applies the path to doc and returns every matched node in order.
// Missing members, out of range indices and type mismatches contribute
// nothing; Find never fails.
func (p *Path) Find(doc any) NodeList {
	nodes := NodeList{}
	walk(p.expr, doc, func(v any) bool {
		nodes = append(nodes, v)
		return true
	})
	return nodes
}

// Select returns a lazy iterator over the nodes Find would return.
// Each selector consumes the previous one's output as it is produced.
func (p *Path) Select(doc any) iter.Seq[any] {
	return func(yield func(any) bool) {
		walk(p.expr, doc, yield)
	}
}

// Expr returns the root of the compiled selector tree.
func (p *Path) Expr() Expr {
	return p.expr
}

// String returns the selector the path was compiled from.
func (p *Path) String() string {
	return p.text
}
