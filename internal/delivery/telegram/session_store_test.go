package telegram

import (
	"sync"
	"testing"
	"time"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

// TestSessionStoreConcurrency - parallel sessiyalar uchun race condition tekshirish
func TestSessionStoreConcurrency(t *testing.T) {
	store := newSessionStore()

	var wg sync.WaitGroup
	numGoroutines := 100
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			store.update(userID, func(cs *chatSession) { cs.search.Mode = entity.SearchModePrice })
			if store.get(userID).search.Mode != entity.SearchModePrice {
				t.Errorf("sessiya topilmadi: userID=%d", userID)
			}
		}(int64(i))
	}
	wg.Wait()

	if n := store.len(); n != numGoroutines {
		t.Errorf("kutilgan %d sessiya, lekin %d topildi", numGoroutines, n)
	}
}

func TestSessionStoreAssignsID(t *testing.T) {
	store := newSessionStore()

	first := store.get(1)
	if first.search.ID == "" {
		t.Fatal("sessiya ID bo'sh")
	}
	if again := store.get(1); again.search.ID != first.search.ID {
		t.Errorf("ID o'zgarmasligi kerak: %s != %s", again.search.ID, first.search.ID)
	}
	store.reset(1)
	if fresh := store.get(1); fresh.search.ID == first.search.ID {
		t.Error("reset dan keyin yangi ID kutilgan")
	}
}

func TestSessionStoreCleanup(t *testing.T) {
	store := newSessionStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store.now = func() time.Time { return now.Add(-3 * time.Hour) }
	store.update(1, func(cs *chatSession) { cs.search.Mode = entity.SearchModePrice })
	store.now = func() time.Time { return now.Add(-time.Minute) }
	store.update(2, func(cs *chatSession) { cs.search.Mode = entity.SearchModeName })
	store.now = func() time.Time { return now }

	if removed := store.cleanup(sessionMaxIdle); removed != 1 {
		t.Errorf("1 ta sessiya o'chirilishi kutilgan, natija %d", removed)
	}
	if store.len() != 1 {
		t.Errorf("1 ta sessiya qolishi kerak, natija %d", store.len())
	}
}

// TestSessionStoreUpdateKeepsSessionAlive paging kabi search ga tegmaydigan update ham sessiyani tirik saqlaydi
func TestSessionStoreUpdateKeepsSessionAlive(t *testing.T) {
	store := newSessionStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store.now = func() time.Time { return now.Add(-3 * time.Hour) }
	store.update(1, func(cs *chatSession) { cs.results = []entity.DisplayRecord{{DeviceName: "Galaxy S23"}} })

	// 3 soatdan keyin sahifalash: search.UpdatedAt eski, lekin sessiya ishlatilmoqda
	store.now = func() time.Time { return now }
	cs := store.update(1, func(cs *chatSession) { cs.page++ })
	if !cs.search.UpdatedAt.Equal(now.Add(-3 * time.Hour)) {
		t.Errorf("tanlov muddati o'zgarmasligi kerak, natija %v", cs.search.UpdatedAt)
	}

	if removed := store.cleanup(sessionMaxIdle); removed != 0 {
		t.Errorf("faol sessiya o'chirilmasligi kerak, o'chirildi %d", removed)
	}
	if got := store.get(1); got.page != 1 || len(got.results) != 1 {
		t.Errorf("sessiya saqlanishi kerak, natija page=%d results=%d", got.page, len(got.results))
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(maxRequestsPerSecond, rateLimiterBurst)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < rateLimiterBurst; i++ {
		if !rl.allow(1, now) {
			t.Fatalf("%d-so'rov ruxsat etilishi kerak", i+1)
		}
	}
	if rl.allow(1, now) {
		t.Error("burst tugagach rad etilishi kerak")
	}
	if !rl.allow(2, now) {
		t.Error("boshqa foydalanuvchi cheklanmasligi kerak")
	}
	if !rl.allow(1, now.Add(time.Second)) {
		t.Error("1 soniyadan keyin yana ruxsat kutilgan")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(maxRequestsPerSecond, rateLimiterBurst)
	rl.maxLen = 2
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	rl.allow(1, now.Add(-time.Hour))
	rl.allow(2, now.Add(-3*time.Second))
	rl.allow(3, now.Add(-2*time.Second))
	rl.allow(4, now.Add(-time.Second))

	removed := rl.cleanup(now, rateLimiterMaxIdleTime)
	if removed != 2 || rl.len() != 2 {
		t.Errorf("kutilgan 2 ta o'chirish va 2 ta qolgan, natija %d va %d", removed, rl.len())
	}
	if _, ok := rl.users[2]; ok {
		t.Error("eng eski limiter (2) o'chirilishi kerak edi")
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		data   string
		prefix string
		want   int
		ok     bool
	}{
		{"dev|3", cbDevice, 3, true},
		{"brand|0", cbBrand, 0, true},
		{"dev|-1", cbDevice, 0, false},
		{"dev|x", cbDevice, 0, false},
		{"store|1", cbDevice, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseIndex(tt.data, tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseIndex(%q): kutilgan (%d, %v), natija (%d, %v)", tt.data, tt.want, tt.ok, got, ok)
		}
	}
}

func TestPageBounds(t *testing.T) {
	start, end, more := pageBounds(25, 1)
	if start != 10 || end != 20 || !more {
		t.Errorf("kutilgan [10,20) more, natija [%d,%d) %v", start, end, more)
	}
	start, end, more = pageBounds(25, 2)
	if start != 20 || end != 25 || more {
		t.Errorf("kutilgan [20,25), natija [%d,%d) %v", start, end, more)
	}
	if start, end, _ = pageBounds(5, 4); start != end {
		t.Errorf("bo'sh sahifa kutilgan, natija [%d,%d)", start, end)
	}
}
