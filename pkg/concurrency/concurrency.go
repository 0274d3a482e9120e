package concurrency

import "sync"

const (
	// DefaultMax default max
	DefaultMax = 256
)

// GoLimit bounds the number of goroutines running at once
type GoLimit struct {
	ch chan int
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan int, max),
	}
}

// Add add num
func (g *GoLimit) Add() {
	g.ch <- 1
}

// Done remove num
func (g *GoLimit) Done() {
	<-g.ch
}

// Close close chan
func (g *GoLimit) Close() {
	close(g.ch)
}

// KeyedLock per-key exclusive access. The ledger holds one of these so
// mutations on the same loan serialize while unrelated loans proceed.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[uint64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLock new keyed lock
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{
		locks: make(map[uint64]*entry),
	}
}

// Lock acquire the lock for key, blocking until it is free
func (l *KeyedLock) Lock(key uint64) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock release the lock for key
func (l *KeyedLock) Unlock(key uint64) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
	}
	l.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
