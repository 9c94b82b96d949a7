package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/usecase"
)

// Start botni ishga tushirish, ctx bekor bo'lguncha ishlaydi
func (h *BotHandler) Start(ctx context.Context) error {
	h.workerPool.start(ctx)
	go h.cleanupLoop(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			h.workerPool.shutdown()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.workerPool.shutdown()
				return nil
			}
			h.dispatch(ctx, update)
		}
	}
}

// dispatch update ni worker pool ga topshiradi
func (h *BotHandler) dispatch(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.From == nil || cb.Message == nil {
			return
		}
		h.workerPool.submit(&updateRequest{
			ctx:      ctx,
			userID:   cb.From.ID,
			chatID:   cb.Message.Chat.ID,
			callback: cb,
		})
		return
	}
	msg := update.Message
	if msg == nil || msg.From == nil || strings.TrimSpace(msg.Text) == "" {
		return
	}
	h.workerPool.submit(&updateRequest{
		ctx:    ctx,
		userID: msg.From.ID,
		chatID: msg.Chat.ID,
		text:   msg.Text,
	})
}

// cleanupLoop eski sessiyalar va rate limiterlarni tozalaydi
func (h *BotHandler) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions := h.sessions.cleanup(sessionMaxIdle)
			limiters := h.limiter.cleanup(h.now(), rateLimiterMaxIdleTime)
			if sessions > 0 || limiters > 0 {
				h.log.Info().Int("sessions", sessions).Int("limiters", limiters).Msg("🧹 tozalash bajarildi")
			}
		}
	}
}

// handleText matnli xabar: buyruq yoki qidiruv so'rovi
func (h *BotHandler) handleText(ctx context.Context, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "/start", "/menu":
		h.showMenu(chatID, userID)
		return
	}
	h.search(ctx, chatID, userID, text)
}

func (h *BotHandler) showMenu(chatID, userID int64) {
	h.sessions.reset(userID)
	h.sendMessage(chatID, msgWelcome, mainMenuKeyboard())
}

// search sessiyani usecase.Advance orqali oldinga suradi va natijani ko'rsatadi.
// Advance sessiya lock ostida ishlaydi: bir foydalanuvchining ikki xabari bir-birini bosib ketmaydi.
func (h *BotHandler) search(_ context.Context, chatID, userID int64, input string) {
	var (
		next entity.SearchSession
		out  entity.Outcome
		err  error
	)
	cs := h.sessions.update(userID, func(cs *chatSession) {
		next, out, err = usecase.Advance(h.resolver, cs.search, input, h.now())
		cs.search = next
		if err == nil && out.Kind == entity.OutcomeConfident {
			cs.results = h.formatter.Format(out.Entries)
			cs.page = 0
			cs.brand = ""
		}
	})

	if err != nil {
		if errors.Is(err, entity.ErrInvalidPrice) {
			h.sendMessage(chatID, msgInvalidPrice, backKeyboard())
			return
		}
		h.log.Error().Err(err).Int64("user_id", userID).Msg("qidiruv xatosi")
		h.sendMessage(chatID, msgInternal, backKeyboard())
		return
	}

	switch out.Kind {
	case entity.OutcomeConfident:
		h.sendPage(chatID, cs)
	case entity.OutcomeSuggest:
		h.sendMessage(chatID, msgDidYouMean, suggestionKeyboard(next.Options))
	default:
		h.sendMessage(chatID, msgNoMatch, backKeyboard())
	}
}

// sendPage joriy sahifadagi natijalarni tugmalar bilan yuboradi
func (h *BotHandler) sendPage(chatID int64, cs chatSession) {
	start, end, _ := pageBounds(len(cs.results), cs.page)
	if start >= end {
		h.sendMessage(chatID, msgNoResults, backKeyboard())
		return
	}
	title := fmt.Sprintf(msgResultsPage, cs.page+1)
	if cs.brand != "" {
		title = fmt.Sprintf(msgBrandPage, cs.brand, cs.page+1)
	}
	h.sendMessage(chatID, title, resultsKeyboard(cs.results, cs.page))
}

// handleCallback inline tugma bosilganda
func (h *BotHandler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	data := cb.Data

	switch {
	case data == cbMenu:
		h.showMenu(chatID, userID)

	case strings.HasPrefix(data, cbMode):
		h.selectMode(chatID, userID, entity.SearchMode(strings.TrimPrefix(data, cbMode)))

	case strings.HasPrefix(data, cbBrand):
		i, ok := parseIndex(data, cbBrand)
		brands := h.resolver.Brands()
		if !ok || i >= len(brands) {
			h.sendMessage(chatID, msgEmptyList, backKeyboard())
			return
		}
		brand := brands[i]
		records := h.formatter.Format(h.resolver.DevicesByBrand(brand))
		if len(records) == 0 {
			h.sendMessage(chatID, fmt.Sprintf(msgNoBrand, brand), backKeyboard())
			return
		}
		cs := h.sessions.update(userID, func(cs *chatSession) {
			cs.results = records
			cs.page = 0
			cs.brand = brand
		})
		h.sendPage(chatID, cs)

	case strings.HasPrefix(data, cbStore):
		i, ok := parseIndex(data, cbStore)
		stores := h.resolver.Stores()
		if !ok || i >= len(stores) {
			h.sendMessage(chatID, msgEmptyList, backKeyboard())
			return
		}
		store := stores[i]
		h.sessions.update(userID, func(cs *chatSession) {
			cs.search = cs.search.Reset()
			cs.search.Mode = entity.SearchModeNameInStore
			cs.search.Store = store
			cs.search.UpdatedAt = h.now()
		})
		h.sendMessage(chatID, fmt.Sprintf(msgStorePicked, store), backKeyboard())

	case data == cbMore:
		cs := h.sessions.update(userID, func(cs *chatSession) {
			if _, _, more := pageBounds(len(cs.results), cs.page); more {
				cs.page++
			}
		})
		h.sendPage(chatID, cs)

	case strings.HasPrefix(data, cbDevice):
		i, ok := parseIndex(data, cbDevice)
		cs := h.sessions.get(userID)
		if !ok || i >= len(cs.results) {
			h.sendMessage(chatID, msgNoResults, backKeyboard())
			return
		}
		rec := cs.results[i]
		h.sendMessage(chatID, formatDevice(rec), deviceKeyboard(rec))

	case strings.HasPrefix(data, cbSuggestion):
		n, ok := parseIndex(data, cbSuggestion)
		cs := h.sessions.get(userID)
		if !ok || cs.search.State != entity.StateAwaitingSelection {
			h.sendMessage(chatID, msgNoResults, backKeyboard())
			return
		}
		h.search(ctx, chatID, userID, strconv.Itoa(n))

	default:
		h.sendMessage(chatID, msgChooseFirst, mainMenuKeyboard())
	}
}

// selectMode qidiruv turini tanlash; brend va do'kon uchun ro'yxat ko'rsatiladi
func (h *BotHandler) selectMode(chatID, userID int64, mode entity.SearchMode) {
	h.sessions.update(userID, func(cs *chatSession) {
		cs.search = entity.SearchSession{ID: cs.search.ID, Mode: mode, UpdatedAt: h.now()}
	})

	switch mode {
	case entity.SearchModeName:
		h.sendMessage(chatID, msgAskName, backKeyboard())
	case entity.SearchModePrice:
		h.sendMessage(chatID, msgAskPrice, backKeyboard())
	case entity.SearchModeBrand:
		h.sendPicker(chatID, msgPickBrand, cbBrand, h.resolver.Brands())
	case entity.SearchModeStore:
		h.sendPicker(chatID, msgPickStore, cbStore, h.resolver.Stores())
	default:
		h.sendMessage(chatID, msgChooseFirst, mainMenuKeyboard())
	}
}

func (h *BotHandler) sendPicker(chatID int64, title, prefix string, items []string) {
	if len(items) == 0 {
		h.sendMessage(chatID, msgEmptyList, backKeyboard())
		return
	}
	h.sendMessage(chatID, title, pickerKeyboard(prefix, items))
}
