package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Errors returned while loading fixtures.
var (
	ErrFileNotFound   = errors.New("fixture file not found")
	ErrInvalidJSON    = errors.New("invalid JSON syntax")
	ErrInvalidYAML    = errors.New("invalid YAML syntax")
	ErrEmptyFile      = errors.New("fixture file is empty")
	ErrInvalidFixture = errors.New("invalid fixture")
)

// DefaultPattern selects every fixture file below a directory.
const DefaultPattern = "**/*.{yaml,yml,json}"

// Format is the encoding of a fixture document.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension. Anything other
// than .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the fixture at path.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// LoadDir loads every file below dir matching the doublestar pattern, in
// lexical order. An empty pattern means DefaultPattern.
func LoadDir(dir, pattern string) ([]*Document, error) {
	paths, err := Glob(dir, pattern)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Glob returns the files below dir matching the doublestar pattern, joined
// with dir and sorted. An empty pattern means DefaultPattern.
func Glob(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, match := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(match))
	}
	return paths, nil
}

// Parse decodes and validates a fixture document.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
			}
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyFile
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	case FormatJSON:
		if !json.Valid(data) {
			return nil, ErrInvalidJSON
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", format)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
