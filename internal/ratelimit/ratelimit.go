// Package ratelimit provides a keyed token-bucket rate limiter. Each key
// (typically a client IP) gets its own independent bucket.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// pruneInterval is how often the background sweep runs.
	pruneInterval = 5 * time.Minute
	// maxIdle is how long a key's bucket survives without being used.
	// Idle buckets are fully refilled anyway, so dropping them loses nothing.
	maxIdle = 10 * time.Minute
)

type keyedBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter manages per-key rate limiting. Keys that go unused are
// pruned in the background so the map stays bounded by the active client
// set; call Stop when the limiter is no longer needed.
type KeyedLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*keyedBucket
	limit    rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second per key with
// the given burst size.
func New(rps float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		buckets: make(map[string]*keyedBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go kl.sweep()
	return kl
}

// Allow reports whether a request for the key should proceed. It never
// blocks; use it for inbound request protection.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getLimiter(key).Allow()
}

// Wait blocks until a request for the key is allowed or the context is
// canceled.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return kl.getLimiter(key).Wait(ctx)
}

// Stop terminates the background pruning goroutine. Safe to call more
// than once. The limiter remains usable afterwards, it just stops
// reclaiming idle keys.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	b, exists := kl.buckets[key]
	if !exists {
		b = &keyedBucket{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

func (kl *KeyedLimiter) sweep() {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-kl.done:
			return
		case now := <-ticker.C:
			kl.prune(now.Add(-maxIdle))
		}
	}
}

// prune drops every bucket last used before the cutoff.
func (kl *KeyedLimiter) prune(cutoff time.Time) {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for key, b := range kl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(kl.buckets, key)
		}
	}
}
