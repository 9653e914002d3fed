// Package configfile reads single keys from the dependency config file.
package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// Reader reads keys from a config file using an injected parser.
type Reader struct {
	Path   string
	Parser contract.ConfigParser
}

var _ contract.ConfigReader = &Reader{} // Compile-time check

// NewReader creates a Reader for path using parser.
func NewReader(path string, parser contract.ConfigParser) *Reader {
	return &Reader{Path: path, Parser: parser}
}

// NewParser returns the parser strategy for kind.
func NewParser(kind schema.ParserKind) (contract.ConfigParser, error) {
	switch kind {
	case schema.YAMLParser, "":
		return YAMLParser{}, nil
	case schema.LineParser:
		return LineParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported parser: %s. Must be yaml or line", kind)
	}
}

// Lookup implements the ConfigReader interface.
// A missing file reports the key as absent.
func (r *Reader) Lookup(key string) (string, bool, error) {
	data, err := os.ReadFile(r.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	value, ok, err := r.Parser.Lookup(data, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse %s: %w", r.Path, err)
	}
	return value, ok, nil
}
