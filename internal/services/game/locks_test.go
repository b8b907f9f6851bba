package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBattleLocks_ReleaseDropsEntry(t *testing.T) {
	locks := newBattleLocks()

	unlock := locks.lock("b1")
	assert.Equal(t, 1, locks.size())

	unlock()
	assert.Equal(t, 0, locks.size())
}

func TestBattleLocks_WaiterKeepsEntry(t *testing.T) {
	locks := newBattleLocks()
	unlock := locks.lock("b1")

	acquired := make(chan func())
	go func() {
		acquired <- locks.lock("b1")
	}()

	select {
	case <-acquired:
		t.Fatal("second caller acquired a held lock")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	var second func()
	select {
	case second = <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired the lock")
	}
	assert.Equal(t, 1, locks.size())

	second()
	assert.Equal(t, 0, locks.size())
}

func TestBattleLocks_DistinctBattlesDoNotBlock(t *testing.T) {
	locks := newBattleLocks()
	unlockA := locks.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		locks.lock("b")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another battle blocked")
	}
}

func TestBattleLocks_ConcurrentUseEndsEmpty(t *testing.T) {
	locks := newBattleLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("b1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.size())
}
