package db

import "sync"

// userLocks serializes read-merge-write upserts per user. The aggregate
// tables are last-write-wins on the full row, so the single-writer assumption
// has to hold in-process; cross-process writers remain unprotected.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (set *userLocks) lock(userID string) func() {
	set.mu.Lock()
	userLock, exists := set.locks[userID]
	if !exists {
		userLock = &sync.Mutex{}
		set.locks[userID] = userLock
	}
	set.mu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
