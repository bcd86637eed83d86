package jsonpath

import (
	"fmt"
	"unicode/utf8"
)

// rule tags a node of the generic parse tree.
type rule uint8

const (
	ruleSelector rule = iota
	ruleRootSelector
	ruleMatcher
	ruleWildcardedDotChild
	ruleNamedDotChild
	ruleChildName
	ruleDescendant
	ruleUnion
	ruleUnionChild
	ruleDoubleInner
	ruleSingleInner
	ruleUnionArrayIndex
	ruleUnionArraySlice
	ruleSliceStart
	ruleSliceEnd
	ruleSliceStep
)

var ruleNames = [...]string{
	ruleSelector:           "selector",
	ruleRootSelector:       "rootSelector",
	ruleMatcher:            "matcher",
	ruleWildcardedDotChild: "wildcardedDotChild",
	ruleNamedDotChild:      "namedDotChild",
	ruleChildName:          "childName",
	ruleDescendant:         "descendant",
	ruleUnion:              "union",
	ruleUnionChild:         "unionChild",
	ruleDoubleInner:        "doubleInner",
	ruleSingleInner:        "singleInner",
	ruleUnionArrayIndex:    "unionArrayIndex",
	ruleUnionArraySlice:    "unionArraySlice",
	ruleSliceStart:         "sliceStart",
	ruleSliceEnd:           "sliceEnd",
	ruleSliceStep:          "sliceStep",
}

func (r rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// parseNode is a node of the generic parse tree: a rule and the byte span
// [start, end) of the selector it matched.
type parseNode struct {
	rule       rule
	start, end int
	children   []parseNode
}

func (n parseNode) text(src string) string {
	return src[n.start:n.end]
}

type grammarParser struct {
	src         string
	pos         int
	descendants bool
}

// parseGrammar matches src against the selector grammar end to end.
func parseGrammar(src string, descendants bool) (parseNode, error) {
	p := &grammarParser{src: src, descendants: descendants}
	return p.parseSelector()
}

func (p *grammarParser) parseSelector() (parseNode, error) {
	if p.peek() != '$' {
		return parseNode{}, p.expected("'$'")
	}
	p.pos++

	root := parseNode{
		rule:     ruleSelector,
		children: []parseNode{{rule: ruleRootSelector, start: 0, end: 1}},
	}

	for !p.eof() {
		m, err := p.parseMatcher()
		if err != nil {
			return parseNode{}, err
		}
		root.children = append(root.children, m)
	}

	root.end = p.pos
	return root, nil
}

func (p *grammarParser) parseMatcher() (parseNode, error) {
	start := p.pos

	var (
		inner parseNode
		err   error
	)
	switch p.peek() {
	case '.':
		if p.descendants && p.peekAt(1) == '.' {
			inner, err = p.parseDescendant()
		} else {
			inner, err = p.parseDotChild()
		}
	case '[':
		inner, err = p.parseUnion()
	default:
		return parseNode{}, p.expected("'.' or '['")
	}
	if err != nil {
		return parseNode{}, err
	}

	return parseNode{rule: ruleMatcher, start: start, end: p.pos, children: []parseNode{inner}}, nil
}

func (p *grammarParser) parseDotChild() (parseNode, error) {
	start := p.pos
	p.pos++ // '.'

	if p.peek() == '*' {
		p.pos++
		return parseNode{rule: ruleWildcardedDotChild, start: start, end: p.pos}, nil
	}

	name, err := p.parseChildName()
	if err != nil {
		return parseNode{}, err
	}
	return parseNode{rule: ruleNamedDotChild, start: start, end: p.pos, children: []parseNode{name}}, nil
}

func (p *grammarParser) parseDescendant() (parseNode, error) {
	start := p.pos
	p.pos += 2 // '..'

	var inner parseNode
	switch p.peek() {
	case '*':
		p.pos++
		inner = parseNode{rule: ruleWildcardedDotChild, start: p.pos - 1, end: p.pos}
	case '[':
		u, err := p.parseUnion()
		if err != nil {
			return parseNode{}, err
		}
		inner = u
	default:
		nameStart := p.pos
		name, err := p.parseChildName()
		if err != nil {
			return parseNode{}, err
		}
		inner = parseNode{rule: ruleNamedDotChild, start: nameStart, end: p.pos, children: []parseNode{name}}
	}

	return parseNode{rule: ruleDescendant, start: start, end: p.pos, children: []parseNode{inner}}, nil
}

func (p *grammarParser) parseChildName() (parseNode, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !nameRune(r, size) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return parseNode{}, p.expected("'*' or child name")
	}
	return parseNode{rule: ruleChildName, start: start, end: p.pos}, nil
}

func (p *grammarParser) parseUnion() (parseNode, error) {
	node := parseNode{rule: ruleUnion, start: p.pos}
	p.pos++ // '['

	for {
		elem, err := p.parseUnionElement()
		if err != nil {
			return parseNode{}, err
		}
		node.children = append(node.children, elem)

		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			node.end = p.pos
			return node, nil
		default:
			return parseNode{}, p.expected("',' or ']'")
		}
	}
}

func (p *grammarParser) parseUnionElement() (parseNode, error) {
	switch p.peek() {
	case '"':
		return p.parseQuoted('"', ruleDoubleInner)
	case '\'':
		return p.parseQuoted('\'', ruleSingleInner)
	}

	start := p.pos
	from, hasFrom, err := p.parseInteger(ruleSliceStart)
	if err != nil {
		return parseNode{}, err
	}

	if p.peek() != ':' {
		if !hasFrom {
			return parseNode{}, p.expected("quoted name, index or slice")
		}
		return parseNode{rule: ruleUnionArrayIndex, start: start, end: p.pos}, nil
	}
	p.pos++

	node := parseNode{rule: ruleUnionArraySlice, start: start}
	if hasFrom {
		node.children = append(node.children, from)
	}

	to, hasTo, err := p.parseInteger(ruleSliceEnd)
	if err != nil {
		return parseNode{}, err
	}
	if hasTo {
		node.children = append(node.children, to)
	}

	if p.peek() == ':' {
		p.pos++
		step, hasStep, err := p.parseInteger(ruleSliceStep)
		if err != nil {
			return parseNode{}, err
		}
		if hasStep {
			node.children = append(node.children, step)
		}
	}

	node.end = p.pos
	return node, nil
}

// parseInteger matches an optional `-?[0-9]+`. ok is false when no integer
// starts at the current position.
func (p *grammarParser) parseInteger(r rule) (parseNode, bool, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
		if !isDigit(p.peek()) {
			return parseNode{}, false, p.expected("digit")
		}
	}
	if !isDigit(p.peek()) {
		return parseNode{}, false, nil
	}
	for isDigit(p.peek()) {
		p.pos++
	}
	return parseNode{rule: r, start: start, end: p.pos}, true, nil
}

func (p *grammarParser) parseQuoted(quote byte, inner rule) (parseNode, error) {
	start := p.pos
	p.pos++
	bodyStart := p.pos

	for {
		if p.eof() {
			return parseNode{}, p.errorAt(start, "unterminated string literal")
		}

		c := p.src[p.pos]
		switch {
		case c == quote:
			body := parseNode{rule: inner, start: bodyStart, end: p.pos}
			p.pos++
			return parseNode{rule: ruleUnionChild, start: start, end: p.pos, children: []parseNode{body}}, nil
		case c == '\\':
			if err := p.scanEscape(quote); err != nil {
				return parseNode{}, err
			}
		case c < 0x20:
			return parseNode{}, p.errorAt(p.pos, "control character in string literal")
		case c < utf8.RuneSelf:
			p.pos++
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r == utf8.RuneError && size <= 1 {
				return parseNode{}, p.errorAt(p.pos, "invalid UTF-8 in string literal")
			}
			p.pos += size
		}
	}
}

func (p *grammarParser) scanEscape(quote byte) error {
	escStart := p.pos
	p.pos++ // '\'

	switch c := p.peek(); c {
	case quote, '\\', '/', 'b', 'f', 'n', 'r', 't':
		p.pos++
		return nil
	case 'u':
		p.pos++
		for range 4 {
			if !isHexDigit(p.peek()) {
				return p.errorAt(escStart, "invalid unicode escape, expected four hex digits")
			}
			p.pos++
		}
		return nil
	default:
		if p.eof() {
			return p.errorAt(escStart, "unterminated string literal")
		}
		return p.errorAt(escStart, fmt.Sprintf("invalid escape sequence '\\%c'", c))
	}
}

func (p *grammarParser) eof() bool {
	return p.pos >= len(p.src)
}

// peek returns the current byte, or 0 at the end of input.
func (p *grammarParser) peek() byte {
	return p.peekAt(0)
}

func (p *grammarParser) peekAt(offset int) byte {
	if p.pos+offset < len(p.src) {
		return p.src[p.pos+offset]
	}
	return 0
}

func (p *grammarParser) expected(what string) error {
	if p.eof() {
		return p.errorAt(p.pos, "unexpected end of selector, expected "+what)
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return p.errorAt(p.pos, fmt.Sprintf("unexpected %q, expected %s", r, what))
}

func (p *grammarParser) errorAt(offset int, msg string) error {
	return &SyntaxError{Selector: p.src, Offset: offset, Msg: msg}
}

// nameRune reports whether r may appear in an unquoted child name.
// size guards against invalid UTF-8, which decodes as a 1-byte RuneError.
func nameRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size <= 1:
		return false
	case r >= 0x80:
		return true
	case r == '-' || r == '_':
		return true
	default:
		return isDigit(byte(r)) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
