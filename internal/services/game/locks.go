package game

import (
	"sync"

	"github.com/mcoot/ricotte-api/internal/model"
)

// battleLocks hands out one mutex per battle while it is in use.
// Entries are dropped once no caller holds or waits on them.
type battleLocks struct {
	mu      sync.Mutex
	entries map[model.BattleID]*battleLock
}

type battleLock struct {
	mu   sync.Mutex
	refs int
}

func newBattleLocks() *battleLocks {
	return &battleLocks{entries: make(map[model.BattleID]*battleLock)}
}

// lock blocks until the caller owns the battle and returns its release func
func (l *battleLocks) lock(id model.BattleID) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &battleLock{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

// size reports how many battles currently have a lock entry
func (l *battleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
