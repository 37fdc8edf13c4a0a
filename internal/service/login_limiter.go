package service

import (
	"sync"
	"time"
)

const (
	loginAttemptWindow = 15 * time.Minute
	maxLoginAttempts   = 5
)

type loginAttempt struct {
	count int
	last  time.Time
}

// LoginLimiter tracks failed login attempts per email in process memory.
// Entries older than the window are pruned lazily on each check; an email
// with maxLoginAttempts failures inside the window is locked regardless of
// password correctness until the window lapses or a login succeeds.
//
// The state lives only in this process: it resets on restart and is not
// shared across horizontally scaled instances.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt
	now      func() time.Time
}

// NewLoginLimiter creates an empty limiter
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		attempts: make(map[string]*loginAttempt),
		now:      time.Now,
	}
}

func (l *LoginLimiter) pruneLocked() {
	cutoff := l.now().Add(-loginAttemptWindow)
	for email, attempt := range l.attempts {
		if attempt.last.Before(cutoff) {
			delete(l.attempts, email)
		}
	}
}

// Blocked reports whether further login attempts for the email are rejected
func (l *LoginLimiter) Blocked(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked()
	attempt, ok := l.attempts[email]
	return ok && attempt.count >= maxLoginAttempts
}

// RecordFailure counts a failed login for the email
func (l *LoginLimiter) RecordFailure(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if attempt, ok := l.attempts[email]; ok {
		attempt.count++
		attempt.last = l.now()
		return
	}
	l.attempts[email] = &loginAttempt{count: 1, last: l.now()}
}

// Clear drops the email's failure count after a successful login
func (l *LoginLimiter) Clear(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, email)
}
