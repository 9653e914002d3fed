package configfile

import (
	"bufio"
	"bytes"
	"strings"
)

// LineParser scans for the first line starting with "<key>:" and returns the
// trimmed remainder after the first colon. It does not understand quoting,
// nesting or multi-line values.
type LineParser struct{}

// Lookup implements the ConfigParser interface.
func (LineParser) Lookup(data []byte, key string) (string, bool, error) {
	prefix := key + ":"
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// No line of the file may exceed the token limit, however long.
	scanner.Buffer(nil, len(data)+1)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(rest), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}
