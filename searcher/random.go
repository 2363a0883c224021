package searcher

import (
	"sync"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Random picks tie-break and fallback columns. Intn returns a value in
// [0, n).
type Random interface {
	Intn(n int) int
}

type fastRandom struct{}

func (fastRandom) Intn(n int) int {
	return frand.Intn(n)
}

// NewRandom returns an unseeded source that is safe for concurrent use.
func NewRandom() Random {
	return fastRandom{}
}

// NewSeededRandom returns a reproducible source. It is not safe for
// concurrent use on its own.
func NewSeededRandom(seed uint64) Random {
	return rand.New(rand.NewSource(seed))
}

type lockedRandom struct {
	mu sync.Mutex
	r  Random
}

func (l *lockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// choose picks a uniformly random element of columns.
func choose(r Random, columns []int) int {
	return columns[r.Intn(len(columns))]
}
