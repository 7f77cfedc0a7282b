// Package keylock provides a per-key mutex table for serializing work on
// string-keyed resources, plus ordered pair locking for two-key operations.
package keylock

import (
	"strings"
	"sync"
)

// Table maps keys to mutexes. Mutexes are created lazily on first use and
// live for the lifetime of the table; accounts are never deleted, so the
// table only grows with the account set.
type Table struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty lock table.
func New() *Table {
	return &Table{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it if needed.
func (t *Table) Lock(key string) {
	t.get(key).Lock()
}

// Unlock releases the mutex for key.
func (t *Table) Unlock(key string) {
	t.get(key).Unlock()
}

// LockPair acquires both keys' mutexes in lexicographic order. Ordering by
// the key values themselves gives every caller the same acquisition order
// for any pair, which rules out lock-order deadlock between concurrent
// callers. Equal keys lock once.
func (t *Table) LockPair(a, b string) {
	switch strings.Compare(a, b) {
	case -1:
		t.Lock(a)
		t.Lock(b)
	case 1:
		t.Lock(b)
		t.Lock(a)
	default:
		t.Lock(a)
	}
}

// UnlockPair releases both keys' mutexes acquired via LockPair.
func (t *Table) UnlockPair(a, b string) {
	switch strings.Compare(a, b) {
	case -1:
		t.Unlock(b)
		t.Unlock(a)
	case 1:
		t.Unlock(a)
		t.Unlock(b)
	default:
		t.Unlock(a)
	}
}

func (t *Table) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.locks[key]
	if !ok {
		m = &sync.Mutex{}
		t.locks[key] = m
	}
	return m
}
