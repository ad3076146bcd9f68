package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopops/backend/internal/domain/shared"
)

// InMemoryLockStore implements LockStore with a process-local map.
// Suitable for single-instance deployments and testing.
type InMemoryLockStore struct {
	mu        sync.Mutex
	locks     map[string]time.Time // key -> expiration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryLockStore creates a new in-memory lock store.
// It starts a background goroutine that drops expired locks.
func NewInMemoryLockStore() *InMemoryLockStore {
	s := &InMemoryLockStore{
		locks:    make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Acquire takes the lock unless an unexpired holder exists
func (s *InMemoryLockStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, held := s.locks[key]; held && now.Before(expiresAt) {
		return false, nil
	}

	s.locks[key] = now.Add(ttl)
	return true, nil
}

// Release drops the lock
func (s *InMemoryLockStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryLockStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of tracked locks, expired ones included
func (s *InMemoryLockStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *InMemoryLockStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryLockStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expiresAt := range s.locks {
		if !now.Before(expiresAt) {
			delete(s.locks, key)
		}
	}
}

var _ shared.LockStore = (*InMemoryLockStore)(nil)
