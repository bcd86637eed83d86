package document

import (
	"encoding/json"
	"maps"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Equal reports whether two document values are equal. Numbers compare by
// value, objects ignore member order and arrays compare element-wise.
func Equal(a, b any) bool {
	if ka, ga, ok := members(a); ok {
		kb, gb, ok := members(b)
		if !ok || len(ka) != len(kb) {
			return false
		}
		for _, k := range ka {
			va, _ := ga(k)
			vb, found := gb(k)
			if !found || !Equal(va, vb) {
				return false
			}
		}
		return true
	}

	if aa, ok := a.([]any); ok {
		ab, ok := b.([]any)
		if !ok || len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ab[i]) {
				return false
			}
		}
		return true
	}

	if na, ok := number(a); ok {
		nb, ok := number(b)
		return ok && na.Cmp(nb) == 0
	}

	return reflect.DeepEqual(a, b)
}

func members(v any) ([]string, func(string) (any, bool), bool) {
	switch o := v.(type) {
	case *Object:
		return o.keys, o.Get, true
	case map[string]any:
		return sortedKeys(o), func(k string) (any, bool) {
			v, ok := o[k]
			return v, ok
		}, true
	default:
		return nil, nil, false
	}
}

func number(v any) (*big.Float, bool) {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case float64:
		if math.IsNaN(n) {
			return nil, false
		}
		return big.NewFloat(n), true
	case int:
		return new(big.Float).SetInt64(int64(n)), true
	case int64:
		return new(big.Float).SetInt64(n), true
	case uint64:
		return new(big.Float).SetUint64(n), true
	default:
		return nil, false
	}

	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Plain converts *Object values into map[string]any, producing the shape
// encoding/json.Unmarshal would.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, t.Len())
		for k, e := range t.All() {
			m[k] = Plain(e)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}

// ToYAML converts a document into values goccy/go-yaml encodes faithfully:
// objects become ordered yaml.MapSlice and json.Number a native number.
func ToYAML(v any) any {
	switch t := v.(type) {
	case *Object:
		ms := make(yaml.MapSlice, 0, t.Len())
		for k, e := range t.All() {
			ms = append(ms, yaml.MapItem{Key: k, Value: ToYAML(e)})
		}
		return ms
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToYAML(e)
		}
		return out
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return f
		}
		return string(t)
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
