package services

import "sync"

// UserLocks serializes read-modify-write sequences over one user's profile
// state. Cycle close, pain-pattern smoothing and plant spawning all race on
// shared profile fields otherwise.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[uint]*sync.Mutex),
	}
}

// Lock acquires the per-user mutex and returns its release function.
func (registry *UserLocks) Lock(userID uint) func() {
	registry.mu.Lock()
	lock, exists := registry.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		registry.locks[userID] = lock
	}
	registry.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
