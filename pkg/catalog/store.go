package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"unicode/utf8"

	"github.com/natefinch/atomic"
)

// DefaultPath is the catalog file used when no other path is configured,
// resolved against the working directory.
const DefaultPath = "config.json"

var errNotUTF8 = errors.New("file is not valid UTF-8")

// Load reads a catalog from path. A path that is not a regular file yields
// FileNotExist; malformed JSON, a schema mismatch or a broken cross-reference
// yields ParseError.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &Error{Kind: KindFileNotExist, Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindReadError, Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &Error{Kind: KindReadError, Path: path, Err: errNotUTF8}
	}

	c := New()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, &Error{Kind: KindParseError, Path: path, Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, &Error{Kind: KindParseError, Path: path, Err: err}
	}

	return c, nil
}

// Save writes c to path as indented JSON, replacing the file atomically.
func Save(c *Catalog, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		// Every field is marshalable; this only fires on a nil Theme.
		return &Error{Kind: KindWriteError, Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &Error{Kind: KindWriteError, Path: path, Err: err}
	}
	return nil
}
