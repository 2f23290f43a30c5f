package budget

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// Locker serializes work on a key.
//
// Lock blocks until the key is free or ctx is done. The returned function
// releases the key and must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Key is the lock key for the budget of owner in month.
func Key(owner uuid.UUID, month types.Month) string {
	return owner.String() + ":" + month.String()
}

// LockMonths locks the budget keys of owner for all given months. Keys are
// acquired in sorted order so that two writers touching the same months can
// not deadlock.
//
// Failing to acquire a lock is logged and the caller proceeds without it.
func LockMonths(ctx context.Context, locker Locker, owner uuid.UUID, months ...types.Month) (unlock func()) {
	seen := make(map[string]bool, len(months))
	keys := make([]string, 0, len(months))
	for _, m := range months {
		k := Key(owner, m)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	unlocks := make([]func(), 0, len(keys))
	for _, k := range keys {
		u, err := locker.Lock(ctx, k)
		if err != nil {
			lockFailures.Inc()
			log.Error().Err(err).Str("key", k).Msg("could not acquire budget lock, proceeding without it")
			continue
		}
		unlocks = append(unlocks, u)
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// KeyedMutex is an in-process Locker. Entries are reference counted and
// removed once no goroutine holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			k.release(key, e)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}

// size returns the number of tracked keys.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
