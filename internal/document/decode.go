package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/tailscale/hujson"
)

// Format names a document encoding.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatHuJSON Format = "hujson"
	FormatYAML   Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatHuJSON, FormatYAML:
		return f, nil
	case "jsonc":
		return FormatHuJSON, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".hujson", ".jsonc":
		return FormatHuJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// ReadFile decodes the file at path. FormatAuto picks the format from the
// file extension, then from the content.
func ReadFile(path string, format Format) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	if format == FormatAuto {
		format = FormatFromPath(path)
	}

	v, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}
	return v, nil
}

// Decode decodes data in the given format into a document tree of
// *Object, []any, string, json.Number, bool and nil values.
func Decode(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(bytes.NewReader(data))
	case FormatHuJSON:
		return DecodeHuJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatAuto, "":
		return decodeAuto(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeAuto(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	switch trimmed[0] {
	case '{', '[', '"', '/':
		v, err := DecodeJSON(bytes.NewReader(data))
		if err == nil {
			return v, nil
		}
		// comments or trailing commas
		if hv, herr := DecodeHuJSON(data); herr == nil {
			return hv, nil
		}
		return nil, err
	default:
		return DecodeYAML(data)
	}
}

// DecodeJSON decodes exactly one JSON value from r, keeping object member
// order and number literals.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrMalformed)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected delimiter %q", ErrMalformed, d)
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v is not a string", ErrMalformed, tok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		value, err := decodeValue(dec, valueTok)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
}

// DecodeHuJSON decodes JSON with comments and trailing commas.
// data is left untouched.
func DecodeHuJSON(data []byte) (any, error) {
	ast, err := hujson.Parse(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	ast.Standardize()
	return DecodeJSON(bytes.NewReader(ast.Pack()))
}

// DecodeYAML decodes a single YAML document into the same representation
// DecodeJSON produces: mappings become *Object in document order and
// numbers become json.Number.
func DecodeYAML(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromYAML(raw), nil
}

func fromYAML(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		obj := NewObject()
		for _, item := range t {
			obj.Set(yamlKey(item.Key), fromYAML(item.Value))
		}
		return obj
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, fromYAML(t[k]))
		}
		return obj
	case []any:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = fromYAML(e)
		}
		return arr
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return t
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}

func yamlKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
