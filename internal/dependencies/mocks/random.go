package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/ricotte-api/internal/dependencies/random"
)

// MockRandom replays queued values, safe for use from several goroutines
type MockRandom struct {
	mu       sync.Mutex
	ints     []int
	tokens   []string
	tokenSeq int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued value, or 0 when the queue is empty.
// Queued values are reduced modulo n so they always stay in range.
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// Token returns the next queued token, or a sequential one when the queue is empty
func (r *MockRandom) Token(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tokens) > 0 {
		t := r.tokens[0]
		r.tokens = r.tokens[1:]
		return t
	}
	r.tokenSeq++
	return fmt.Sprintf("token-%d", r.tokenSeq)
}

// QueueIntn adds values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	r.ints = append(r.ints, values...)
	r.mu.Unlock()
}

// QueueToken adds values to the Token queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	r.tokens = append(r.tokens, values...)
	r.mu.Unlock()
}

// Reset clears all queued values
func (r *MockRandom) Reset() {
	r.mu.Lock()
	r.ints = nil
	r.tokens = nil
	r.tokenSeq = 0
	r.mu.Unlock()
}
