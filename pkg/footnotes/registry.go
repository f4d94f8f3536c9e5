package footnotes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateDefinition is returned by Registry.Define when the id already
	// has an entry in the document.
	ErrDuplicateDefinition = errors.New("footnotes: duplicate definition")
	// ErrEmptyID is returned when an id is blank.
	ErrEmptyID = errors.New("footnotes: id is required")
	// ErrEmptyDescription is returned when a definition has no description.
	ErrEmptyDescription = errors.New("footnotes: description is required")
)

// Entry is the registered definition of one footnote id within a document.
type Entry struct {
	ID          string
	Description string
	// Index is the shared display ordinal, assigned in definition order.
	Index int
	// RefCount is the number of anchor slots claimed for the entry, including
	// the ones reserved by placeholders evaluated before the definition.
	RefCount int
	// Reserved is the number of slots held for those placeholders.
	Reserved int
}

// Registry stores footnote state partitioned by document key. Each document
// has its own lock, so different documents can be resolved concurrently.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []*Entry
	pending map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*document)}
}

// Define registers a footnote, consuming any pending references recorded for
// the id. It fails with ErrDuplicateDefinition when the id is already defined.
func (r *Registry) Define(doc, id, description string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrEmptyID
	}
	if strings.TrimSpace(description) == "" {
		return Entry{}, ErrEmptyDescription
	}

	d := r.acquire(doc)
	defer d.mu.Unlock()

	if _, exists := d.entries[id]; exists {
		return Entry{}, fmt.Errorf("%w: %q in %s", ErrDuplicateDefinition, id, doc)
	}
	return *d.define(id, description), nil
}

// Lookup returns the entry for id in doc.
func (r *Registry) Lookup(doc, id string) (Entry, bool) {
	id = strings.TrimSpace(id)
	d := r.existing(doc)
	if d == nil {
		return Entry{}, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns the document's entries in the order their index was
// assigned.
func (r *Registry) Entries(doc string) []Entry {
	d := r.existing(doc)
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Entry, 0, len(d.order))
	for _, e := range d.order {
		out = append(out, *e)
	}
	return out
}

// Pending reports how many references to id are waiting for a definition.
func (r *Registry) Pending(doc, id string) int {
	id = strings.TrimSpace(id)
	d := r.existing(doc)
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[id]
}

// Documents lists the keys holding state, sorted.
func (r *Registry) Documents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.docs))
	for key := range r.docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dispose drops all state held for doc.
func (r *Registry) Dispose(doc string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, doc)
}

// Reset drops the state of every document.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = make(map[string]*document)
}

// acquire returns the document for key, creating it if needed, with its lock
// held. Callers must unlock d.mu.
func (r *Registry) acquire(key string) *document {
	r.mu.RLock()
	d, ok := r.docs[key]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		if d, ok = r.docs[key]; !ok {
			d = &document{
				entries: make(map[string]*Entry),
				pending: make(map[string]int),
			}
			r.docs[key] = d
		}
		r.mu.Unlock()
	}

	d.mu.Lock()
	return d
}

func (r *Registry) existing(key string) *document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.docs[key]
}

// define creates the entry for id. The caller holds d.mu and has checked that
// id is not yet defined.
func (d *document) define(id, description string) *Entry {
	reserved := d.pending[id]
	delete(d.pending, id)

	e := &Entry{
		ID:          id,
		Description: description,
		Index:       len(d.order) + 1,
		RefCount:    reserved + 1,
		Reserved:    reserved,
	}
	d.entries[id] = e
	d.order = append(d.order, e)
	return e
}

// claim hands out the next anchor slot of e.
func (d *document) claim(e *Entry) int {
	e.RefCount++
	return e.RefCount
}
