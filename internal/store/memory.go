package store

import (
	"context"
	"sync"
)

// Store operation names recorded by MemoryStore
const (
	OpExists = "exists"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
)

// Call is one operation observed by MemoryStore
type Call struct {
	Op     string
	ID     string
	Fields map[string]any
}

// MemoryStore is an in-process Store for tests. It records
// every call so callers can assert on the writes made.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]map[string]any
	calls []Call
	errs  map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]any),
		errs: make(map[string]error),
	}
}

// Put seeds a document without recording a call
func (m *MemoryStore) Put(id string, doc map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = copyDoc(doc)
}

// FailOn makes every later call of op return err
func (m *MemoryStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = err
}

// Calls returns the operations recorded so far
func (m *MemoryStore) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Writes returns only the create and update calls
func (m *MemoryStore) Writes() []Call {
	var writes []Call
	for _, c := range m.Calls() {
		if c.Op == OpCreate || c.Op == OpUpdate {
			writes = append(writes, c)
		}
	}
	return writes
}

// Doc returns a copy of the stored document, or nil
func (m *MemoryStore) Doc(id string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.docs[id]; ok {
		return copyDoc(doc)
	}
	return nil
}

// Len returns the number of stored documents
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *MemoryStore) record(op, id string, fields map[string]any) error {
	m.calls = append(m.calls, Call{Op: op, ID: id, Fields: copyDoc(fields)})
	return m.errs[op]
}

func (m *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpExists, id, nil); err != nil {
		return false, err
	}
	_, ok := m.docs[id]
	return ok, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpGet, id, nil); err != nil {
		return nil, err
	}
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

func (m *MemoryStore) Create(_ context.Context, id string, doc map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpCreate, id, doc); err != nil {
		return err
	}
	if _, ok := m.docs[id]; ok {
		return ErrAlreadyExists
	}
	m.docs[id] = copyDoc(doc)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpUpdate, id, fields); err != nil {
		return err
	}
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func copyDoc(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
