package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/oliverbestmann/dodgeball/ecs"
	"golang.org/x/sync/semaphore"
)

//go:generate go tool stringer -type=LoadState -trimprefix=LoadState

type LoadState uint8

const (
	LoadStateNotLoaded LoadState = iota
	LoadStateLoading
	LoadStateLoaded
	LoadStateFailed
)

// Loader decodes the raw bytes of an asset file into a value.
type Loader[T any] func(data []byte, path string) (T, error)

type loaderKey struct {
	typ       reflect.Type
	extension string
}

type pathKey struct {
	typ  reflect.Type
	path string
}

type ServerOptions struct {
	// maximum number of files loaded in parallel. Defaults to 4
	MaxConcurrentLoads int64
}

// Server loads assets in the background. Loading returns a handle
// immediately, the value is inserted into the Assets store on the main
// thread once Apply is called after loading finished.
type Server struct {
	fsys fs.FS

	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     sync.WaitGroup

	mu        sync.Mutex
	loaders   map[loaderKey]any
	handles   map[pathKey]uuid.UUID
	states    map[uuid.UUID]LoadState
	completed []func(w *ecs.World)
}

func NewServer(fsys fs.FS, opts ServerOptions) *Server {
	if opts.MaxConcurrentLoads <= 0 {
		opts.MaxConcurrentLoads = 4
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		fsys:    fsys,
		ctx:     ctx,
		cancel:  cancel,
		sem:     semaphore.NewWeighted(opts.MaxConcurrentLoads),
		loaders: map[loaderKey]any{},
		handles: map[pathKey]uuid.UUID{},
		states:  map[uuid.UUID]LoadState{},
	}
}

// RegisterLoader registers a loader for all files with one of the given extensions,
// e.g. "png". A loader registered later for the same extension replaces the previous one.
func RegisterLoader[T any](s *Server, loader Loader[T], extensions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ext := range extensions {
		key := loaderKey{typ: reflect.TypeFor[T](), extension: normalizeExtension(ext)}
		s.loaders[key] = loader
	}
}

// Load starts loading the asset at the given path. The returned handle is usable
// right away, the value shows up in Assets[T] once loading finished. Loading the
// same path again returns the same handle.
func Load[T any](s *Server, assetPath string) Handle[T] {
	key := pathKey{typ: reflect.TypeFor[T](), path: path.Clean(assetPath)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.handles[key]; ok {
		return Handle[T]{id: id}
	}

	handle := NewHandle[T]()
	s.handles[key] = handle.id
	s.states[handle.id] = LoadStateLoading

	loader, err := loaderFor[T](s, key.path)
	if err != nil {
		slog.Warn("Can not load asset", slog.String("path", key.path), slog.String("err", err.Error()))
		s.states[handle.id] = LoadStateFailed
		return handle
	}

	slog.Debug("Start loading asset", slog.String("path", key.path))

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		value, err := s.load(key.path, func(buf []byte) (any, error) {
			return loader(buf, key.path)
		})

		if err != nil {
			slog.Warn("Failed to load asset",
				slog.String("path", key.path),
				slog.String("err", err.Error()))

			s.complete(handle.id, LoadStateFailed, nil)
			return
		}

		s.complete(handle.id, LoadStateLoaded, func(w *ecs.World) {
			store := ecs.InitResource[Assets[T]](w)
			store.Insert(handle, value.(T))
		})
	}()

	return handle
}

// must be called with the lock held
func loaderFor[T any](s *Server, assetPath string) (Loader[T], error) {
	ext := normalizeExtension(path.Ext(assetPath))

	loader, ok := s.loaders[loaderKey{typ: reflect.TypeFor[T](), extension: ext}]
	if !ok {
		return nil, fmt.Errorf("no loader for %s files of type %s", ext, reflect.TypeFor[T]())
	}

	return loader.(Loader[T]), nil
}

func (s *Server) load(assetPath string, decode func(buf []byte) (any, error)) (any, error) {
	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for load slot: %w", err)
	}

	defer s.sem.Release(1)

	buf, err := fs.ReadFile(s.fsys, assetPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", assetPath, err)
	}

	value, err := decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", assetPath, err)
	}

	return value, nil
}

func (s *Server) complete(id uuid.UUID, state LoadState, apply func(w *ecs.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed = append(s.completed, func(w *ecs.World) {
		if apply != nil {
			apply(w)
		}

		s.mu.Lock()
		s.states[id] = state
		s.mu.Unlock()
	})
}

// Apply inserts all values that finished loading since the last call into
// their Assets store. Must be called from the thread that owns the world.
func (s *Server) Apply(w *ecs.World) {
	s.mu.Lock()
	completed := s.completed
	s.completed = nil
	s.mu.Unlock()

	for _, apply := range completed {
		apply(w)
	}
}

// LoadState returns the load state of the asset with the given id.
func (s *Server) LoadState(id uuid.UUID) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.states[id]
}

// Wait blocks until all loads that are currently in flight have finished.
// Finished loads still need to be applied using Apply.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close aborts all pending loads and waits for running loads to finish.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
