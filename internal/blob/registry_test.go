package blob

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertThenUpdateThenBuild(t *testing.T) {
	r := NewRegistry()
	h := r.Insert("blobA")
	assert.Equal(t, "blobA", h.Key)

	payload := []byte{1, 2, 3}
	r.Update("blobA", payload)

	out := r.BuildResources([]Handle{h})
	require.Len(t, out, 1)
	assert.Equal(t, "blobA", out[0].Key)
	assert.Equal(t, payload, out[0].Blob)
}

func TestBuildResourcesDropsUnreferenced(t *testing.T) {
	r := NewRegistry()
	r.Insert("blobA")
	r.Update("blobA", []byte("payload"))

	out := r.BuildResources(nil)
	assert.Empty(t, out, "unreferenced blobs are silently dropped")
	assert.Equal(t, 1, r.Len(), "the slot itself survives")
}

func TestInsertIsCreateOrFind(t *testing.T) {
	r := NewRegistry()
	r.Insert("k")
	r.Update("k", []byte("v"))

	// Re-inserting must not clobber the existing contents.
	h := r.Insert("k")
	got, ok := r.Lookup(h.Key)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, r.Len())
}

func TestBuildResourcesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"zulu", "alpha", "mike"} {
		r.Update(key, []byte(key))
	}

	out := r.BuildResources([]Handle{{Key: "alpha"}, {Key: "zulu"}, {Key: "mike"}})
	require.Len(t, out, 3)
	assert.Equal(t, "zulu", out[0].Key, "emission follows insertion order, not reference order")
	assert.Equal(t, "alpha", out[1].Key)
	assert.Equal(t, "mike", out[2].Key)
}

func TestBuildResourcesSkipsAbsentHandles(t *testing.T) {
	r := NewRegistry()
	r.Update("present", []byte("x"))

	out := r.BuildResources([]Handle{{Key: "present"}, {Key: "missing"}})
	require.Len(t, out, 1)
	assert.Equal(t, "present", out[0].Key)
}

func TestUpdateCreatesSlot(t *testing.T) {
	r := NewRegistry()
	r.Update("fresh", []byte("data"))

	got, ok := r.Lookup("fresh")
	require.True(t, ok)
	assert.Equal(t, []byte("data"), got)
}

func TestInsertAnonymous(t *testing.T) {
	r := NewRegistry()
	h1 := r.InsertAnonymous()
	h2 := r.InsertAnonymous()

	assert.NotEqual(t, h1.Key, h2.Key)
	parsed, err := uuid.Parse(h1.Key)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestKeysSorted(t *testing.T) {
	r := NewRegistry()
	r.Insert("b")
	r.Insert("a")
	r.Insert("c")
	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
}
