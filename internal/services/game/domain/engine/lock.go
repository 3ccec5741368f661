package engine

import "sync"

// Locker serializes work per game id. Lock blocks until the game is free and
// returns the matching unlock function.
type Locker interface {
	Lock(gameID string) (unlock func())
}

// GameLocks is an in-process Locker. Different games never block each other.
type GameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu      sync.Mutex
	holders int
}

// NewGameLocks creates an empty lock table.
func NewGameLocks() *GameLocks {
	return &GameLocks{locks: make(map[string]*gameLock)}
}

// Lock acquires the lock for gameID.
func (l *GameLocks) Lock(gameID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*gameLock)
	}
	entry, ok := l.locks[gameID]
	if !ok {
		entry = &gameLock{}
		l.locks[gameID] = entry
	}
	entry.holders++
	l.mu.Unlock()

	entry.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()
			l.mu.Lock()
			entry.holders--
			if entry.holders == 0 {
				delete(l.locks, gameID)
			}
			l.mu.Unlock()
		})
	}
}

// size reports how many games currently hold or wait on a lock.
func (l *GameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
