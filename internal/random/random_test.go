package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}

	xs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	ys := []int{1, 2, 3, 4, 5, 6, 7, 8}
	a.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	b.Shuffle(len(ys), func(i, j int) { ys[i], ys[j] = ys[j], ys[i] })
	assert.Equal(t, xs, ys)
}

func TestIntnDegenerate(t *testing.T) {
	r := New(nil)
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
	r.Shuffle(1, func(i, j int) { t.Fatal("swap must not be called for a single element") })
}

func TestConcurrentUse(t *testing.T) {
	r := New(&Config{Seed: 1})

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			xs := make([]int, 16)
			for i := 0; i < 500; i++ {
				n := r.Intn(10)
				assert.GreaterOrEqual(t, n, 0)
				assert.Less(t, n, 10)
				r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
			}
		}()
	}
	wg.Wait()
}
