package entity

import "time"

// SearchMode foydalanuvchi qaysi bo'yicha qidiryapti
type SearchMode string

const (
	SearchModeName        SearchMode = "name"
	SearchModePrice       SearchMode = "price"
	SearchModeStore       SearchMode = "store"
	SearchModeBrand       SearchMode = "brand"
	SearchModeNameInStore SearchMode = "store_name"
)

// SessionState multi-turn disambiguation holati
type SessionState int

const (
	// StateAwaitingQuery yangi so'rov kutilmoqda
	StateAwaitingQuery SessionState = iota
	// StateAwaitingSelection takliflar berildi, tanlov yoki yangi so'rov kutilmoqda
	StateAwaitingSelection
)

func (s SessionState) String() string {
	if s == StateAwaitingSelection {
		return "awaiting_selection"
	}
	return "awaiting_query"
}

// SearchSession bitta foydalanuvchining qidiruv holati.
// Engine stateless: bu qiymatni transport qatlami saqlaydi va qaytarib beradi.
type SearchSession struct {
	ID        string
	Mode      SearchMode
	State     SessionState
	Store     string   // SearchModeNameInStore uchun tanlangan do'kon
	Options   []string // StateAwaitingSelection da taklif qilingan nomlar
	UpdatedAt time.Time
}

// Expired reports whether the session has been idle longer than timeout.
func (s SearchSession) Expired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 || s.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(s.UpdatedAt) > timeout
}

// Reset returns the session back in StateAwaitingQuery; mode and store are kept.
func (s SearchSession) Reset() SearchSession {
	s.State = StateAwaitingQuery
	s.Options = nil
	return s
}
