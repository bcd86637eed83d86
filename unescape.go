package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	errTruncatedEscape = errors.New("truncated escape sequence")
	errLoneSurrogate   = errors.New("unpaired UTF-16 surrogate")
)

// unescapeDouble decodes the body of a double-quoted literal using JSON
// string escaping.
func unescapeDouble(body string) (string, error) {
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var out strings.Builder
	out.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}

		i++
		if i >= len(body) {
			return "", errTruncatedEscape
		}

		switch body[i] {
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'u':
			r, n, err := decodeUnicodeEscape(body[i+1:])
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			i += n
		default:
			return "", fmt.Errorf("invalid escape sequence '\\%c'", body[i])
		}
	}

	return out.String(), nil
}

// unescapeSingle decodes the body of a single-quoted literal. `\'` becomes
// a plain quote and bare `"` is escaped, then the result is decoded like a
// double-quoted body.
func unescapeSingle(body string) (string, error) {
	return unescapeDouble(singleToDouble(body))
}

func singleToDouble(body string) string {
	if strings.IndexByte(body, '\\') < 0 && strings.IndexByte(body, '"') < 0 {
		return body
	}

	var out strings.Builder
	out.Grow(len(body) + 2)

	escaping := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if escaping {
			escaping = false
			if c != '\'' {
				out.WriteByte('\\')
			}
			out.WriteByte(c)
			continue
		}

		switch c {
		case '\\':
			escaping = true
		case '"':
			out.WriteString(`\"`)
		default:
			out.WriteByte(c)
		}
	}
	if escaping {
		// keep the dangling backslash so the decoder reports it
		out.WriteByte('\\')
	}

	return out.String()
}

// decodeUnicodeEscape decodes the XXXX of a `\uXXXX` escape, joining a
// following `\uXXXX` low surrogate when the first is a high surrogate.
// It returns the rune and the number of bytes consumed from s.
func decodeUnicodeEscape(s string) (rune, int, error) {
	first, err := parseHex4(s)
	if err != nil {
		return 0, 0, err
	}

	r := rune(first)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}
	if r >= 0xDC00 {
		return 0, 0, fmt.Errorf("%w: \\u%s", errLoneSurrogate, s[:4])
	}

	if len(s) < 10 || s[4] != '\\' || s[5] != 'u' {
		return 0, 0, fmt.Errorf("%w: \\u%s", errLoneSurrogate, s[:4])
	}
	second, err := parseHex4(s[6:])
	if err != nil {
		return 0, 0, err
	}

	decoded := utf16.DecodeRune(r, rune(second))
	if decoded == utf8.RuneError {
		return 0, 0, fmt.Errorf("%w: \\u%s", errLoneSurrogate, s[:4])
	}

	return decoded, 10, nil
}

func parseHex4(s string) (uint64, error) {
	if len(s) < 4 {
		return 0, errTruncatedEscape
	}
	for i := range 4 {
		if !isHexDigit(s[i]) {
			return 0, fmt.Errorf("invalid unicode escape '\\u%s'", s[:4])
		}
	}
	return strconv.ParseUint(s[:4], 16, 16)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
