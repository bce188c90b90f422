// Package envfile extracts credential-shaped entries from rendered KEY=VALUE files.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ylchen07/vault-import/internal/secure"
)

const maxLineSize = 1024 * 1024

// sensitiveKeyPattern decides which keys are imported. Unanchored and case-sensitive.
var sensitiveKeyPattern = regexp.MustCompile(`SECRET|PASSWORD|API_KEY`)

// Entry is one retained key and its unquoted value
type Entry struct {
	Key   string
	Value *secure.Value
}

// SecretSet is an insertion-ordered set of entries. A repeated key keeps
// its first position and takes its last value.
type SecretSet struct {
	order   []string
	entries map[string]*Entry
}

// NewSecretSet creates an empty set
func NewSecretSet() *SecretSet {
	return &SecretSet{entries: make(map[string]*Entry)}
}

// Put inserts or overwrites key
func (s *SecretSet) Put(key, value string) {
	if e, ok := s.entries[key]; ok {
		e.Value = secure.NewValue(value)
		return
	}
	s.order = append(s.order, key)
	s.entries[key] = &Entry{Key: key, Value: secure.NewValue(value)}
}

// Len returns the number of entries
func (s *SecretSet) Len() int {
	return len(s.order)
}

// Get returns the entry for key
func (s *SecretSet) Get(key string) (*Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Entries returns the entries in insertion order
func (s *SecretSet) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Keys returns the key names in insertion order
func (s *SecretSet) Keys() []string {
	return append([]string(nil), s.order...)
}

// SortedKeys returns the key names in lexical order
func (s *SecretSet) SortedKeys() []string {
	keys := s.Keys()
	sort.Strings(keys)
	return keys
}

// IsSensitiveKey reports whether key names sensitive material
func IsSensitiveKey(key string) bool {
	return sensitiveKeyPattern.MatchString(key)
}

// Parse reads the file at path. The caller checks existence first.
func Parse(path string) (*SecretSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	set, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return set, nil
}

// ParseReader reads KEY=VALUE lines from r and keeps the sensitive ones
func ParseReader(r io.Reader) (*SecretSet, error) {
	set := NewSecretSet()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok || !IsSensitiveKey(key) {
			continue
		}
		set.Put(key, value)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line longer than %d bytes: %w", maxLineSize, err)
		}
		return nil, err
	}

	return set, nil
}

// scanLines is a bufio.SplitFunc breaking on every Unicode line boundary:
// \n, \r, \r\n, \v, \f, \x1c-\x1e, U+0085, U+2028 and U+2029.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i := 0; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			return 0, nil, nil
		}
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// a following \n may not have been read yet
				return 0, nil, nil
			}
			return i + 1, data[:i], nil
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return i + size, data[:i], nil
		}
		i += size
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func parseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	return strings.TrimSpace(key), unquote(strings.TrimSpace(value)), true
}

// unquote strips exactly one matching pair of outer double or single quotes
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
