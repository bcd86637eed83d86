package document

import "errors"

var (
	// ErrMalformed indicates the document is not valid JSON, HuJSON or YAML.
	ErrMalformed = errors.New("document: malformed structure")

	// ErrEmpty indicates the input holds no value.
	ErrEmpty = errors.New("document: empty input")

	// ErrUnsupportedFormat indicates an unknown document format name.
	ErrUnsupportedFormat = errors.New("document: unsupported format")
)
