// Package lock provides per-key mutual exclusion for ledger operations.
package lock

import "sync"

// keyLock is a single key's mutex with a waiter refcount.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex serializes operations per key while leaving distinct keys
// fully independent. Entries are created on demand and removed once the
// last holder releases, so the map stays bounded by the number of keys
// currently in use.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyLock),
	}
}

// Lock acquires exclusive access for the given key, blocking until any
// current holder releases it. The returned function releases the lock and
// must be called exactly once.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// Len returns the number of keys currently held or waited on.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
