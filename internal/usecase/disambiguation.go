package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

// Advance sessiyani bitta foydalanuvchi kiritishi bilan oldinga suradi.
//
// AwaitingQuery holatida kiritish yangi so'rov sifatida qidiriladi; Suggest natijasi
// sessiyani AwaitingSelection ga o'tkazadi. AwaitingSelection holatida 1 dan boshlanuvchi
// raqam yoki taklif matni tanlov hisoblanadi, boshqa har qanday matn yangi so'rov.
// SessionTimeout dan uzoq kutgan sessiya AwaitingQuery ga qaytariladi.
func Advance(r CatalogResolver, s entity.SearchSession, input string, now time.Time) (entity.SearchSession, entity.Outcome, error) {
	if s.Expired(now, constants.SessionTimeout) {
		s = s.Reset()
	}
	if s.Mode == "" {
		s.Mode = entity.SearchModeName
	}
	s.UpdatedAt = now
	input = strings.TrimSpace(input)

	if s.State == entity.StateAwaitingSelection {
		if option, ok := pickOption(s.Options, input); ok {
			s.State = entity.StateAwaitingQuery
			s.Options = nil
			return s, selectOption(r, s, option), nil
		}
	}

	outcome, err := resolve(r, s, input)
	if err != nil || outcome.Kind != entity.OutcomeSuggest {
		s.State = entity.StateAwaitingQuery
		s.Options = nil
		return s, outcome, err
	}
	s.State = entity.StateAwaitingSelection
	s.Options = outcome.SuggestionNames()
	return s, outcome, nil
}

func resolve(r CatalogResolver, s entity.SearchSession, input string) (entity.Outcome, error) {
	switch s.Mode {
	case entity.SearchModePrice:
		return r.SearchByPrice(input)
	case entity.SearchModeStore:
		return r.SearchByStore(input), nil
	case entity.SearchModeBrand:
		return r.SearchByBrand(input), nil
	case entity.SearchModeNameInStore:
		return r.SearchByNameInStore(s.Store, input), nil
	default:
		return r.SearchByName(input), nil
	}
}

// selectOption taklif qilingan nom aniq bo'lgani uchun fuzzy qayta ishlatilmaydi
func selectOption(r CatalogResolver, s entity.SearchSession, option string) entity.Outcome {
	switch s.Mode {
	case entity.SearchModeStore:
		return entity.Confident(r.DevicesInStore(option))
	case entity.SearchModeBrand:
		return entity.Confident(r.DevicesByBrand(option))
	case entity.SearchModeNameInStore:
		return r.SearchByNameInStore(s.Store, option)
	default:
		return r.SearchByName(option)
	}
}

func pickOption(options []string, input string) (string, bool) {
	if len(options) == 0 || input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(strings.Map(entity.FoldDigit, input)); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}
