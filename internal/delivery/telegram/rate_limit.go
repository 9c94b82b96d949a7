package telegram

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxRequestsPerSecond   = 3
	rateLimiterBurst       = 5
	rateLimiterMaxIdleTime = 10 * time.Minute
	maxRateLimitersInCache = 10000
)

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter foydalanuvchi bo'yicha token-bucket cheklov
type rateLimiter struct {
	mu     sync.Mutex
	users  map[int64]*userLimiter
	limit  rate.Limit
	burst  int
	maxLen int
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	return &rateLimiter{
		users:  make(map[int64]*userLimiter),
		limit:  rate.Limit(perSecond),
		burst:  burst,
		maxLen: maxRateLimitersInCache,
	}
}

func (rl *rateLimiter) allow(userID int64, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ul, ok := rl.users[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.users[userID] = ul
	}
	ul.lastSeen = now
	return ul.limiter.AllowN(now, 1)
}

// cleanup eski limiterlarni o'chiradi, kesh juda katta bo'lsa eng eskilarini ham
func (rl *rateLimiter) cleanup(now time.Time, maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for userID, ul := range rl.users {
		if now.Sub(ul.lastSeen) > maxIdle {
			delete(rl.users, userID)
			removed++
		}
	}
	if over := len(rl.users) - rl.maxLen; over > 0 {
		type userTime struct {
			userID   int64
			lastSeen time.Time
		}
		users := make([]userTime, 0, len(rl.users))
		for userID, ul := range rl.users {
			users = append(users, userTime{userID, ul.lastSeen})
		}
		sort.Slice(users, func(i, j int) bool { return users[i].lastSeen.Before(users[j].lastSeen) })
		for _, u := range users[:over] {
			delete(rl.users, u.userID)
			removed++
		}
	}
	return removed
}

func (rl *rateLimiter) len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.users)
}
