package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockBusy is returned when another request keeps holding an employee's clock lock.
var ErrLockBusy = errors.New("clock lock is held by another request")

// ClockLocker serializes clock-in/clock-out per employee.
type ClockLocker interface {
	Lock(ctx context.Context, employeeID int64) (unlock func(), err error)
}

const (
	clockLockPrefix = "hospital:clock-lock:"
	lockRetryDelay  = 25 * time.Millisecond
)

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClockLocker holds a SET NX lock per employee so several API instances agree.
type RedisClockLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClockLocker returns a locker whose keys expire after ttl.
func NewRedisClockLocker(client *redis.Client, ttl time.Duration) *RedisClockLocker {
	return &RedisClockLocker{client: client, ttl: ttl}
}

func clockLockKey(employeeID int64) string {
	return fmt.Sprintf("%s%d", clockLockPrefix, employeeID)
}

// Lock retries for up to half the TTL, so a stuck holder's key cannot expire mid-wait
// and be taken over silently.
func (l *RedisClockLocker) Lock(ctx context.Context, employeeID int64) (func(), error) {
	key := clockLockKey(employeeID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.ttl / 2)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring clock lock: %w", err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// LocalClockLocker is an in-process keyed mutex for single-instance deployments.
type LocalClockLocker struct {
	mu    sync.Mutex
	locks map[int64]*keyLock
}

func NewLocalClockLocker() *LocalClockLocker {
	return &LocalClockLocker{locks: make(map[int64]*keyLock)}
}

func (l *LocalClockLocker) Lock(ctx context.Context, employeeID int64) (func(), error) {
	l.mu.Lock()
	k, ok := l.locks[employeeID]
	if !ok {
		k = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[employeeID] = k
	}
	k.refs++
	l.mu.Unlock()

	select {
	case k.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-k.ch
				l.release(employeeID, k)
			})
		}, nil
	case <-ctx.Done():
		l.release(employeeID, k)
		return nil, ctx.Err()
	}
}

func (l *LocalClockLocker) release(employeeID int64, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.locks, employeeID)
	}
}

// NoopClockLocker never blocks. With it the store's unique index is the only guard.
type NoopClockLocker struct{}

func (NoopClockLocker) Lock(context.Context, int64) (func(), error) {
	return func() {}, nil
}
