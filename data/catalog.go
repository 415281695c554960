package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// A Catalog is the full set of genre entries parsed from one snapshot. It
// behaves like a map from genre name to entry, but remembers insertion order:
// downstream limits and resume logic depend on iterating genres in a stable
// order across runs, and a plain map would shuffle them.
type Catalog struct {
	names   []string
	entries map[string]GenreEntry
}

func NewCatalog() *Catalog {
	return &Catalog{entries: map[string]GenreEntry{}}
}

// Add inserts or replaces an entry. A replaced entry keeps its original
// position.
func (c *Catalog) Add(name string, entry GenreEntry) {
	if _, exists := c.entries[name]; !exists {
		c.names = append(c.names, name)
	}
	c.entries[name] = entry
}

func (c *Catalog) Get(name string) (GenreEntry, bool) {
	entry, ok := c.entries[name]
	return entry, ok
}

func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns genre names in insertion order.
func (c *Catalog) Names() []string {
	return c.names
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(c.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Catalog) UnmarshalJSON(bs []byte) error {
	dec := json.NewDecoder(bytes.NewReader(bs))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("error reading catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("error reading catalog: expected an object, got %v", tok)
	}

	c.names = nil
	c.entries = map[string]GenreEntry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("error reading catalog key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("error reading catalog key: got %v", tok)
		}
		var entry GenreEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("error reading catalog entry '%s': %w", name, err)
		}
		c.Add(name, entry)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("error reading catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads a catalog from a JSON file on disk.
func LoadCatalog(path string) (*Catalog, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog at '%s': %w", path, err)
	}
	catalog := NewCatalog()
	if err := json.Unmarshal(bs, catalog); err != nil {
		return nil, fmt.Errorf("error parsing catalog at '%s': %w", path, err)
	}
	return catalog, nil
}

// Write saves the catalog as indented JSON, preserving genre order.
func (c *Catalog) Write(path string) error {
	bs, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("error writing catalog to '%s': %w", path, err)
	}
	return nil
}
