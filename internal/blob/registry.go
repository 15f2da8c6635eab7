// Package blob implements the dialect's resource blob registry: a table
// of opaque byte payloads keyed by string, referenced from the IR by
// weak handles. The registry owns the bytes; a handle is a lookup key,
// never an owning pointer.
//
// The registry is dialect-scoped and single-owner. A host that wants
// concurrent compilation uses one IR context (and so one registry) per
// goroutine.
package blob

import (
	"sort"

	"github.com/google/uuid"
)

// Handle is a weak reference to a registry slot.
type Handle struct {
	Key string
}

// Entry is one key/payload pair emitted during serialization.
type Entry struct {
	Key  string
	Blob []byte
}

// Registry maps string keys to opaque binary blobs.
type Registry struct {
	blobs map[string][]byte
	order []string // insertion order, for deterministic emission
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string][]byte)}
}

// Insert creates or finds the slot for key and returns a stable handle.
// Inserting an existing key returns a handle to the same slot and does
// not disturb its contents.
func (r *Registry) Insert(key string) Handle {
	if _, ok := r.blobs[key]; !ok {
		r.blobs[key] = nil
		r.order = append(r.order, key)
	}
	return Handle{Key: key}
}

// InsertAnonymous creates a slot under a fresh UUIDv7 key, for payloads
// that arrive without a name.
func (r *Registry) InsertAnonymous() Handle {
	return r.Insert(uuid.Must(uuid.NewV7()).String())
}

// Update overwrites the blob contents for key, creating the slot if it
// does not exist. Used when parsing textual resource sections.
func (r *Registry) Update(key string, blob []byte) {
	if _, ok := r.blobs[key]; !ok {
		r.order = append(r.order, key)
	}
	r.blobs[key] = blob
}

// Lookup returns the blob stored under key, if the slot exists.
func (r *Registry) Lookup(key string) ([]byte, bool) {
	blob, ok := r.blobs[key]
	return blob, ok
}

// Len returns the number of slots, referenced or not.
func (r *Registry) Len() int {
	return len(r.blobs)
}

// BuildResources emits the key/blob pairs for exactly the referenced
// handles, in registry insertion order. Unreferenced blobs are silently
// dropped from the output; handles naming absent slots are skipped.
func (r *Registry) BuildResources(referenced []Handle) []Entry {
	want := make(map[string]bool, len(referenced))
	for _, h := range referenced {
		want[h.Key] = true
	}

	var out []Entry
	for _, key := range r.order {
		if !want[key] {
			continue
		}
		out = append(out, Entry{Key: key, Blob: r.blobs[key]})
	}
	return out
}

// Keys returns every slot key in lexical order. Diagnostic use only;
// serialization goes through BuildResources.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.blobs))
	for k := range r.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
