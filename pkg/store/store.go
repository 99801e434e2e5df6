// Package store is the persistence layer vecs are registered with.
package store

import (
	"fmt"

	toolscache "k8s.io/client-go/tools/cache"

	"github.com/l7mp/frameops/pkg/frame"
)

// Store durably registers vecs under their key.
type Store interface {
	// Put registers a vec under its key, replacing any vec registered under the same key.
	Put(v *frame.Vec) error
	// Get returns the vec registered under a key.
	Get(key frame.Key) (*frame.Vec, bool, error)
	// Delete removes a vec.
	Delete(key frame.Key) error
	// List returns all registered vecs.
	List() []*frame.Vec
}

// VecKeyFunc is the key function of the underlying thread-safe store.
func VecKeyFunc(obj any) (string, error) {
	v, ok := obj.(*frame.Vec)
	if !ok {
		return "", fmt.Errorf("expected a vec, got %T", obj)
	}
	return v.Key().String(), nil
}

// memStore is an in-memory Store over toolscache.Store. Vecs are immutable so no copies are taken.
type memStore struct {
	store toolscache.Store
}

var _ Store = &memStore{}

// NewStore creates an empty in-memory store.
func NewStore() Store {
	return &memStore{store: toolscache.NewStore(VecKeyFunc)}
}

// Put adds the vec or replaces the vec registered under the same key.
func (s *memStore) Put(v *frame.Vec) error {
	if v == nil {
		return fmt.Errorf("cannot put a nil vec")
	}
	return s.store.Update(v)
}

// Get returns the vec registered under the given key.
func (s *memStore) Get(key frame.Key) (*frame.Vec, bool, error) {
	item, exists, err := s.store.GetByKey(key.String())
	if err != nil || item == nil {
		return nil, exists, err
	}
	return item.(*frame.Vec), exists, nil
}

// Delete removes the vec registered under the given key.
func (s *memStore) Delete(key frame.Key) error {
	v, exists, err := s.Get(key)
	if err != nil || !exists {
		return err
	}
	return s.store.Delete(v)
}

// List returns the currently registered vecs.
func (s *memStore) List() []*frame.Vec {
	res := s.store.List()
	ret := make([]*frame.Vec, len(res))
	for i := range res {
		ret[i] = res[i].(*frame.Vec)
	}
	return ret
}

// PutFrame registers every vec of a frame.
func PutFrame(s Store, f *frame.Frame) error {
	for i := 0; i < f.NumCols(); i++ {
		if err := s.Put(f.Vec(i)); err != nil {
			return fmt.Errorf("failed to register column %q: %w", f.Name(i), err)
		}
	}
	return nil
}
