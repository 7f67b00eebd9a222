package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Smartstaychur/smartstaychur-website/internal/db"
)

// memStore is an in-memory stand-in for the Redis store. Optional fn
// overrides inject failures per command.
type memStore struct {
	json map[string][]byte
	kv   map[string][]byte
	sets map[string]map[string]struct{}
	seq  map[string]int64

	jsonSetFn  func(key string) error
	jsonGetFn  func(key string) error
	smembersFn func(key string) error
}

func newMemStore() *memStore {
	return &memStore{
		json: map[string][]byte{},
		kv:   map[string][]byte{},
		sets: map[string]map[string]struct{}{},
		seq:  map[string]int64{},
	}
}

func (m *memStore) JSONSet(_ context.Context, key, _ string, data []byte) error {
	if m.jsonSetFn != nil {
		if err := m.jsonSetFn(key); err != nil {
			return err
		}
	}
	m.json[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		if err := m.jsonGetFn(key); err != nil {
			return nil, err
		}
	}
	data, ok := m.json[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	// JSON.GET with a $ path wraps the document in an array.
	out := make([]byte, 0, len(data)+2)
	out = append(out, '[')
	out = append(out, data...)
	out = append(out, ']')
	return out, nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	delete(m.json, key)
	delete(m.kv, key)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.kv[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Incr(_ context.Context, key string) (int64, error) {
	m.seq[key]++
	return m.seq[key], nil
}

func (m *memStore) SAdd(_ context.Context, key string, members ...string) error {
	s, ok := m.sets[key]
	if !ok {
		s = map[string]struct{}{}
		m.sets[key] = s
	}
	for _, member := range members {
		s[member] = struct{}{}
	}
	return nil
}

func (m *memStore) SRem(_ context.Context, key string, members ...string) error {
	s := m.sets[key]
	for _, member := range members {
		delete(s, member)
	}
	return nil
}

func (m *memStore) SMembers(_ context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		if err := m.smembersFn(key); err != nil {
			return nil, err
		}
	}
	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	return out, nil
}

var testClock = func() time.Time {
	return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms).WithClock(testClock), ms
}
