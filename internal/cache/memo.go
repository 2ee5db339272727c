package cache

import "sync"

// Memo computes each key's value at most once.
//
// Memo is safe for concurrent use. A constructor may itself call
// GetOrCreate for a different key; calling it for its own key deadlocks.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*memoEntry[V]
}

type memoEntry[V any] struct {
	done  chan struct{}
	value V
}

// NewMemo creates an empty memo.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{entries: make(map[K]*memoEntry[V])}
}

// GetOrCreate returns the value for key, running create if this is the
// first request. created reports whether this call ran create.
// create runs outside the memo lock, so different keys build in parallel.
func (m *Memo[K, V]) GetOrCreate(key K, create func() V) (value V, created bool) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok {
		m.mu.Unlock()
		<-e.done
		return e.value, false
	}
	e := &memoEntry[V]{done: make(chan struct{})}
	m.entries[key] = e
	m.mu.Unlock()

	defer close(e.done)
	e.value = create()
	return e.value, true
}

// Get returns a finished value. It does not wait for an in-flight build.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		var zero V
		return zero, false
	}
	select {
	case <-e.done:
		return e.value, true
	default:
		var zero V
		return zero, false
	}
}

// Len returns the number of keys requested so far.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Reset forgets every entry. Builds still in flight complete but are dropped.
func (m *Memo[K, V]) Reset() {
	m.mu.Lock()
	m.entries = make(map[K]*memoEntry[V])
	m.mu.Unlock()
}
