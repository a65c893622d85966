// Package locks provides in-process mutual exclusion keyed by an arbitrary
// string. The dispatch handler uses it to serialize concurrent runs for the
// same (date, timeslot), and availability registration uses it to serialize
// concurrent register calls for the same (runner, date).
package locks

import "sync"

// KeyedMutex is a set of named mutexes. Lock entries are reference-counted and
// removed once the last holder releases them, so the internal map does not grow
// with the number of distinct keys seen over the process lifetime.
//
// The zero value is not usable; create instances with NewKeyedMutex.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*lockEntry),
	}
}

// Lock acquires the mutex for key, blocking until it is available.
// Locks for distinct keys are independent.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for key. Calling Unlock for a key that is not
// locked is a programming error and panics, mirroring sync.Mutex.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("locks: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
