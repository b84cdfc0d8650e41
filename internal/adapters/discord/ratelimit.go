package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter: un comando por usuario cada window.
type userLimiter struct {
	mu     sync.Mutex
	byUser map[string]*rate.Limiter
	win    time.Duration
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{byUser: map[string]*rate.Limiter{}, win: window}
}

func (l *userLimiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.byUser[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.win), 1)
		l.byUser[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
