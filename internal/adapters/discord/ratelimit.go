package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter: un token bucket por usuario (1 click por ventana).
type userLimiter struct {
	mu    sync.Mutex
	users map[string]*userBucket
	win   time.Duration
}

type userBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// arriba de esto se barren los buckets viejos
const limiterSweepAt = 1024

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{users: map[string]*userBucket{}, win: window}
}

func (l *userLimiter) Allow(userID string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.users[userID]
	if !ok {
		if len(l.users) >= limiterSweepAt {
			l.sweep(now)
		}
		b = &userBucket{lim: rate.NewLimiter(rate.Every(l.win), 1)}
		l.users[userID] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

func (l *userLimiter) sweep(now time.Time) {
	for id, b := range l.users {
		if now.Sub(b.seen) > l.win {
			delete(l.users, id)
		}
	}
}
