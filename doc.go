// Package jsonpath compiles JSONPath selectors and applies them to decoded
// JSON documents.
//
// A selector is compiled once with Parse and may then be evaluated any
// number of times, concurrently, with Find or Select:
//
//	p, err := jsonpath.Parse("$.store.book[0,-1]['title']")
//	if err != nil {
//		return err
//	}
//	titles := p.Find(doc)
//
// Supported selectors:
//   - Root `$`
//   - Dot child `.name` and dot wildcard `.*`
//   - Unions `[...]` of quoted names `'a'` / `"a"`, indices `[0]`, `[-1]`
//     and slices `[start:end:step]`
//   - Descendant segments `..name`, `..*`, `..[...]` when parsed
//     WithDescendants
//
// Documents are trees of []any, map[string]any or Members objects, and
// scalars. Evaluation never fails: selectors that do not apply to a node
// simply match nothing.
package jsonpath
