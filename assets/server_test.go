package assets

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textLoader(data []byte, path string) (text, error) {
	if len(data) == 0 {
		return text{}, errors.New("empty file")
	}

	return text{Value: string(data)}, nil
}

func newTestServer(t *testing.T) *Server {
	fsys := fstest.MapFS{
		"hello.txt": {Data: []byte("hello")},
		"empty.txt": {Data: nil},
	}

	server := NewServer(fsys, ServerOptions{MaxConcurrentLoads: 1})
	t.Cleanup(server.Close)

	RegisterLoader[text](server, textLoader, ".TXT")

	return server
}

func TestLoadInsertsOnApply(t *testing.T) {
	server := newTestServer(t)
	w := ecs.NewWorld()

	handle := Load[text](server, "hello.txt")
	assert.False(t, handle.IsZero())

	server.Wait()

	store := ecs.InitResource[Assets[text]](w)
	assert.False(t, store.Contains(handle), "value must only show up after Apply")

	server.Apply(w)

	value, ok := store.Get(handle)
	require.True(t, ok)
	assert.Equal(t, "hello", value.Value)
	assert.Equal(t, LoadStateLoaded, server.LoadState(handle.ID()))
	assert.Equal(t, []Event[text]{{Kind: EventCreated, Handle: handle}}, drain(store))
}

func TestLoadSamePathReturnsSameHandle(t *testing.T) {
	server := newTestServer(t)

	first := Load[text](server, "hello.txt")
	second := Load[text](server, "./hello.txt")

	assert.Equal(t, first, second)
}

func TestLoadFailures(t *testing.T) {
	server := newTestServer(t)
	w := ecs.NewWorld()

	missing := Load[text](server, "missing.txt")
	empty := Load[text](server, "empty.txt")
	unknown := Load[text](server, "hello.bin")

	assert.Equal(t, LoadStateFailed, server.LoadState(unknown.ID()))

	server.Wait()
	server.Apply(w)

	assert.Equal(t, LoadStateFailed, server.LoadState(missing.ID()))
	assert.Equal(t, LoadStateFailed, server.LoadState(empty.ID()))

	store := ecs.InitResource[Assets[text]](w)
	assert.Zero(t, store.Len())
}
