package keyed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutex_SerializesPerKey(t *testing.T) {
	k := New()
	counts := map[string]int{}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		key := "a"
		if i%2 == 0 {
			key = "b"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(key)
			defer unlock()

			// separate read and write so a missing key lock loses updates
			k.mu.Lock()
			n := counts[key]
			k.mu.Unlock()

			k.mu.Lock()
			counts[key] = n + 1
			k.mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counts["a"])
	assert.Equal(t, 100, counts["b"])
	assert.Empty(t, k.locks)
}

func TestMutex_IndependentKeys(t *testing.T) {
	k := New()

	unlockA := k.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := k.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	assert.Empty(t, k.locks)
}
