// Package types defines the data model shared by the collector and
// annotator pipelines: the on-disk author artifact and per-file
// annotation outcomes.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status classifies the result of a single annotation attempt.
type Status string

const (
	// StatusSuccess means the annotator exited zero for the file.
	StatusSuccess Status = "success"
	// StatusSkipped means the file was not annotated for a benign reason
	// (no git history and no default contributors, file missing on disk,
	// or the annotator does not recognize the file type).
	StatusSkipped Status = "skipped"
	// StatusFailed means the annotator exited non-zero for an
	// unrecognized reason.
	StatusFailed Status = "failed"
)

// Outcome is the result of one annotation attempt.
type Outcome struct {
	Path string
	// Status is one of StatusSuccess, StatusSkipped, StatusFailed.
	Status Status
	// Detail carries the skip reason or the captured tool output for
	// failures. Empty for successes.
	Detail string
	// Contributors is the contributor list the annotator was invoked
	// with (authors from history or the default-contributor fallback).
	Contributors []string
}

// AuthorMap maps repository-relative file paths to the ordered list of
// author display names found in that file's git history. An empty list
// is the "not tracked" sentinel for files with no history.
//
// Iteration and JSON serialization preserve insertion order so that
// repeated collector runs over an unchanged repository produce
// byte-identical artifacts.
type AuthorMap struct {
	keys    []string
	entries map[string][]string
}

// NewAuthorMap returns an empty AuthorMap.
func NewAuthorMap() *AuthorMap {
	return &AuthorMap{entries: make(map[string][]string)}
}

// Set records authors for path. Setting an existing path overwrites its
// authors without changing its position.
func (m *AuthorMap) Set(path string, authors []string) {
	if m.entries == nil {
		m.entries = make(map[string][]string)
	}
	if _, ok := m.entries[path]; !ok {
		m.keys = append(m.keys, path)
	}
	m.entries[path] = authors
}

// Get returns the authors recorded for path.
func (m *AuthorMap) Get(path string) ([]string, bool) {
	authors, ok := m.entries[path]
	return authors, ok
}

// Len returns the number of entries.
func (m *AuthorMap) Len() int {
	return len(m.keys)
}

// Paths returns the entry keys in insertion order. The returned slice
// is shared with the map and must not be modified.
func (m *AuthorMap) Paths() []string {
	return m.keys
}

// MarshalJSON encodes the map as a JSON object with keys in insertion
// order.
func (m *AuthorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		authors := m.entries[key]
		if authors == nil {
			authors = []string{}
		}
		v, err := json.Marshal(authors)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the key order found
// in the document.
func (m *AuthorMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.entries = make(map[string][]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("author map: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("author map: expected string key, got %v", tok)
		}
		var authors []string
		if err := dec.Decode(&authors); err != nil {
			return fmt.Errorf("author map: invalid author list for %q: %w", key, err)
		}
		m.Set(key, authors)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
