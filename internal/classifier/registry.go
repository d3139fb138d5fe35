package classifier

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// Loader produces a classifier, typically by reading an artifact
type Loader func() (Classifier, error)

// Registry loads each engine's classifier at most once per process and hands
// the same instance to every caller. A failed load is retried on the next Get
// so a model dropped in after startup is picked up.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	load Loader
	clf  Classifier
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register sets the loader for an engine, replacing any cached classifier
func (r *Registry) Register(engine string, load Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[engine] = &entry{load: load}
}

// RegisterFile registers an engine backed by a JSON artifact
func (r *Registry) RegisterFile(engine, path string, featureNames []string) {
	names := append([]string(nil), featureNames...)
	r.Register(engine, func() (Classifier, error) {
		return LoadFile(path, names)
	})
}

// Get returns the engine's classifier, loading it on first use
func (r *Registry) Get(engine string) (Classifier, error) {
	r.mu.RLock()
	e, ok := r.entries[engine]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clf != nil {
		return e.clf, nil
	}

	clf, err := e.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s model: %w", engine, err)
	}
	e.clf = clf
	log.Printf("Loaded %s model (%T)", engine, clf.BaseEstimator())
	return clf, nil
}

// Engines lists registered engine names in sorted order
func (r *Registry) Engines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
