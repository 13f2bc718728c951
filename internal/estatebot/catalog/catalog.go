package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// NearbyObject is a point of interest close to a development.
type NearbyObject struct {
	Name     string `json:"название"`
	Kind     string `json:"тип"`
	Distance string `json:"расстояние"`
}

// Label holds a catalog attribute that the source file may store either as
// a number or as a free-form string ("9" vs "9-12 этажей").
type Label string

// UnmarshalJSON accepts both JSON strings and numbers.
func (l *Label) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = Label(n.String())
	return nil
}

// Entry is one housing development record. Entries are immutable after load.
type Entry struct {
	Name         string         `json:"-"`
	Description  string         `json:"описание"`
	Floors       Label          `json:"этажность"`
	DeliveryDate string         `json:"срок_сдачи"`
	Features     []string       `json:"особенности,omitempty"`
	Nearby       []NearbyObject `json:"ближайшие_объекты,omitempty"`
}

// Catalog is the immutable in-memory view of the development catalog.
// Iteration order is the key order of the source document, which the
// lookup tie-break rules depend on.
type Catalog struct {
	names   []string
	entries map[string]*Entry

	summaryOnce sync.Once
	summary     string
}

// Load reads the catalog from a JSON file. A missing or malformed file is
// fatal to the caller; no sessions can be served without a catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document: a JSON object mapping development name
// to its attributes. Key order is preserved.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog document must be a JSON object")
	}

	c := &Catalog{entries: make(map[string]*Entry)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected catalog key token %v", keyTok)
		}

		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode entry %q: %w", name, err)
		}
		entry.Name = name

		if _, exists := c.entries[name]; exists {
			return nil, fmt.Errorf("duplicate catalog entry %q", name)
		}
		c.names = append(c.names, name)
		c.entries[name] = &entry
	}

	if len(c.names) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return c, nil
}

// Names returns the development names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Get returns the entry for an exact name.
func (c *Catalog) Get(name string) (*Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Len returns the number of developments in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}
