package keyed

import "sync"

// Mutex serializes work per key, such as a tournament or channel ID.
// Entries are dropped once nobody holds or waits for them.
type Mutex struct {
	mu    sync.Mutex
	locks map[string]*lock
}

type lock struct {
	mu   sync.Mutex
	refs int
}

// New returns an empty Mutex
func New() *Mutex {
	return &Mutex{
		locks: make(map[string]*lock),
	}
}

// Lock blocks until key is free and returns the matching unlock
func (k *Mutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &lock{}
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
