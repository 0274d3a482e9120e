package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLockSerializesSameKey(t *testing.T) {
	l := NewKeyedLock()

	var counter int
	wg := sync.WaitGroup{}
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock(7)
			counter++
			l.Unlock(7)
		}()
	}
	wg.Wait()

	assert.Equal(t, 64, counter)
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	l := NewKeyedLock()

	l.Lock(1)
	done := make(chan struct{})
	go func() {
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()

	// a different key must not block behind key 1
	<-done
	l.Unlock(1)
}

func TestGoLimit(t *testing.T) {
	limit := NewGoLimit(4)

	var mu sync.Mutex
	inflight, peak := 0, 0

	wg := sync.WaitGroup{}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		limit.Add()
		go func() {
			defer wg.Done()
			defer limit.Done()

			mu.Lock()
			inflight++
			if inflight > peak {
				peak = inflight
			}
			mu.Unlock()

			mu.Lock()
			inflight--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.True(t, peak <= 4, "peak %d", peak)
}
