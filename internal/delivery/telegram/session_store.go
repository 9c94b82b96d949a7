package telegram

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

// chatSession bitta foydalanuvchining holati: qidiruv sessiyasi va oxirgi natijalar
type chatSession struct {
	search  entity.SearchSession
	results []entity.DisplayRecord
	page    int
	brand   string // natijalar brend ro'yxatidan bo'lsa sarlavha uchun

	// lastSeen har bir update da yangilanadi; cleanup shunga qaraydi.
	// search.UpdatedAt esa faqat tanlov muddati uchun.
	lastSeen time.Time
}

// sessionStore foydalanuvchi sessiyalari (mutex bilan himoyalangan)
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*chatSession
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*chatSession),
		now:      time.Now,
	}
}

// get returns a copy of the user's session, creating it on first use.
func (s *sessionStore) get(userID int64) chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.ensure(userID)
}

// update applies fn to the user's session under the lock.
func (s *sessionStore) update(userID int64, fn func(*chatSession)) chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.ensure(userID)
	fn(cs)
	cs.lastSeen = s.now()
	return *cs
}

func (s *sessionStore) ensure(userID int64) *chatSession {
	cs, ok := s.sessions[userID]
	if !ok {
		now := s.now()
		cs = &chatSession{search: entity.SearchSession{ID: uuid.NewString(), UpdatedAt: now}, lastSeen: now}
		s.sessions[userID] = cs
	}
	return cs
}

func (s *sessionStore) reset(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// cleanup maxIdle dan ko'p harakatsiz sessiyalarni o'chiradi
func (s *sessionStore) cleanup(maxIdle time.Duration) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, cs := range s.sessions {
		if now.Sub(cs.lastSeen) > maxIdle {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
