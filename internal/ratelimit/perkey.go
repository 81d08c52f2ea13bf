package ratelimit

import (
	"sync"
	"time"
)

// PerKeyLimiterConfig configures a PerKeyLimiter instance.
type PerKeyLimiterConfig struct {
	MaxTokens     float64       // Maximum tokens per key (burst capacity)
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often to clean up inactive limiters
}

// PerKeyLimiter tracks rate limits per key (e.g., user ID, chat ID).
// It creates a separate token bucket for each key and automatically
// cleans up inactive buckets.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	config   PerKeyLimiterConfig
	onDrop   func() // Optional callback when request is dropped
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPerKeyLimiter creates a new per-key rate limiter.
//
// Example:
//
//	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
//	    MaxTokens:     15,
//	    RefillRate:    0.2, // 1 token per 5 seconds
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
func NewPerKeyLimiter(cfg PerKeyLimiterConfig) *PerKeyLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}

	pkl := &PerKeyLimiter{
		limiters: make(map[string]*Limiter),
		config:   cfg,
		stopCh:   make(chan struct{}),
	}

	go pkl.cleanupLoop()

	return pkl
}

// OnDrop sets a callback function that is called when a request is dropped
// due to rate limiting.
func (pkl *PerKeyLimiter) OnDrop(fn func()) {
	pkl.onDrop = fn
}

// Allow checks if a request for the given key is allowed.
// Returns true if allowed (token consumed), false if rate limit exceeded.
func (pkl *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	pkl.mu.RLock()
	limiter, exists := pkl.limiters[key]
	pkl.mu.RUnlock()

	if !exists {
		pkl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = pkl.limiters[key]
		if !exists {
			limiter = New(pkl.config.MaxTokens, pkl.config.RefillRate)
			pkl.limiters[key] = limiter
		}
		pkl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && pkl.onDrop != nil {
		pkl.onDrop()
	}
	return allowed
}

// Available returns the number of available tokens for a key.
// Returns MaxTokens if the key has no limiter yet.
func (pkl *PerKeyLimiter) Available(key string) float64 {
	if key == "" {
		return pkl.config.MaxTokens
	}

	pkl.mu.RLock()
	limiter, exists := pkl.limiters[key]
	pkl.mu.RUnlock()

	if !exists {
		return pkl.config.MaxTokens
	}

	return limiter.Available()
}

// ActiveCount returns the number of active limiters.
func (pkl *PerKeyLimiter) ActiveCount() int {
	pkl.mu.RLock()
	defer pkl.mu.RUnlock()
	return len(pkl.limiters)
}

// cleanupLoop periodically removes limiters whose buckets refilled completely.
func (pkl *PerKeyLimiter) cleanupLoop() {
	ticker := time.NewTicker(pkl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-pkl.stopCh:
			return
		case <-ticker.C:
			pkl.mu.Lock()
			for key, limiter := range pkl.limiters {
				if limiter.IsFull() {
					delete(pkl.limiters, key)
				}
			}
			pkl.mu.Unlock()
		}
	}
}

// Stop gracefully stops the cleanup goroutine.
// Safe to call multiple times.
func (pkl *PerKeyLimiter) Stop() {
	pkl.stopOnce.Do(func() {
		close(pkl.stopCh)
	})
}
