package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
)

// MemoryStore is an in-process Store with the same semantics as the Mongo
// one. It backs tests and local runs without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]json.RawMessage{}}
}

func (s *MemoryStore) Get(_ context.Context, path string, dest any) (bool, error) {
	if err := ValidateDocPath(path); err != nil {
		return false, err
	}
	s.mu.RLock()
	raw, ok := s.docs[path]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *MemoryStore) Set(_ context.Context, path string, doc any) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[path] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.docs, path)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection string, dest any) error {
	if err := ValidateCollectionPath(collection); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeList(s.docs, collection, dest)
}

// RunTx holds the store lock for the whole callback and stages writes in
// an overlay, so fn sees its own writes and nothing lands on failure.
func (s *MemoryStore) RunTx(_ context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		base:    s.docs,
		staged:  map[string]json.RawMessage{},
		deleted: map[string]bool{},
	}
	if err := fn(tx); err != nil {
		return err
	}
	for path := range tx.deleted {
		delete(s.docs, path)
	}
	for path, raw := range tx.staged {
		s.docs[path] = raw
	}
	return nil
}

type memoryTx struct {
	base    map[string]json.RawMessage
	staged  map[string]json.RawMessage
	deleted map[string]bool
}

func (t *memoryTx) view() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(t.base)+len(t.staged))
	for p, raw := range t.base {
		if !t.deleted[p] {
			out[p] = raw
		}
	}
	for p, raw := range t.staged {
		out[p] = raw
	}
	return out
}

func (t *memoryTx) Get(_ context.Context, path string, dest any) (bool, error) {
	if err := ValidateDocPath(path); err != nil {
		return false, err
	}
	raw, ok := t.view()[path]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (t *memoryTx) Set(_ context.Context, path string, doc any) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	delete(t.deleted, path)
	t.staged[path] = raw
	return nil
}

func (t *memoryTx) Delete(_ context.Context, path string) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	delete(t.staged, path)
	t.deleted[path] = true
	return nil
}

func (t *memoryTx) List(_ context.Context, collection string, dest any) error {
	if err := ValidateCollectionPath(collection); err != nil {
		return err
	}
	return decodeList(t.view(), collection, dest)
}

func decodeList(docs map[string]json.RawMessage, collection string, dest any) error {
	slicev := reflect.ValueOf(dest).Elem()
	elemType := slicev.Type().Elem()
	for path, raw := range docs {
		if Parent(path) != collection {
			continue
		}
		elem := reflect.New(elemType)
		if err := json.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		slicev = reflect.Append(slicev, elem.Elem())
	}
	reflect.ValueOf(dest).Elem().Set(slicev)
	return nil
}
