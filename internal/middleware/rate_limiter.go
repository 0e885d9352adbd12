package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== CooldownLimiter ====================

// CooldownLimiter enforces a minimum interval between two executions per key.
type CooldownLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewCooldownLimiter returns an empty limiter.
func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{now: time.Now}
}

// CheckResult is the outcome of a limiter check.
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// CheckOnly reports whether key may run now without recording anything.
func (r *CooldownLimiter) CheckOnly(key string, interval time.Duration) CheckResult {
	actual, ok := r.locks.Load(key)
	if !ok {
		return CheckResult{Allowed: true}
	}

	entry := actual.(*lockEntry)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	elapsed := r.now().Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}
	return CheckResult{Allowed: true}
}

// MarkExecuted records a run of key that already happened.
func (r *CooldownLimiter) MarkExecuted(key string) {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastTime = r.now()
}

// ==================== Keys ====================

// ActionType names a rate-limited user action.
type ActionType string

const (
	ActionPostAd ActionType = "post_ad"
	ActionReport ActionType = "report"
)

// UserActionKey is the limiter key of one user's action.
func UserActionKey(uid string, action ActionType) string {
	return fmt.Sprintf("user:%s:%s", uid, action)
}
