package navfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of a sitemap YAML file
type Loader struct {
	filePath string
}

// NewLoader creates a new sitemap loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the sitemap file. The raw bytes are returned too so
// callers can share the exact document (e.g. through redis).
func (l *Loader) Load() (Document, []byte, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Document{}, nil, fmt.Errorf("failed to read sitemap file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, data, nil
}

// ErrEmptyDocument is returned for a file with no YAML content.
var ErrEmptyDocument = errors.New("sitemap document is empty")

// Parse decodes a sitemap document. Unknown fields are rejected so typos in
// match specs do not silently produce entries that never activate.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrEmptyDocument
		}
		return Document{}, fmt.Errorf("failed to parse sitemap yaml: %w", err)
	}
	return doc, nil
}
