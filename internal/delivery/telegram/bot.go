package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/yourusername/phone-price-bot/internal/usecase"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

// TelegramAPI *tgbotapi.BotAPI ning bot ishlatadigan qismi
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UpdateObserver har bir qayta ishlangan update ni hisoblaydi (metrics)
type UpdateObserver interface {
	ObserveUpdate(transport, result string)
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot       TelegramAPI
	resolver  usecase.CatalogResolver
	formatter *usecase.Formatter
	observer  UpdateObserver

	sessions   *sessionStore
	limiter    *rateLimiter
	workerPool *workerPool

	log zerolog.Logger
	now func() time.Time
}

// Option BotHandler sozlamasi
type Option func(*BotHandler)

// WithObserver update metrikalari uchun kuzatuvchi
func WithObserver(observer UpdateObserver) Option {
	return func(h *BotHandler) { h.observer = observer }
}

// WithWorkers parallel ishlovchi worker soni
func WithWorkers(n int) Option {
	return func(h *BotHandler) { h.workerPool = newWorkerPool(h, n) }
}

// NewBotHandler yangi BotHandler yaratish
func NewBotHandler(bot TelegramAPI, resolver usecase.CatalogResolver, opts ...Option) *BotHandler {
	h := &BotHandler{
		bot:       bot,
		resolver:  resolver,
		formatter: usecase.NewFormatter(resolver),
		sessions:  newSessionStore(),
		limiter:   newRateLimiter(maxRequestsPerSecond, rateLimiterBurst),
		log:       logger.Component("telegram"),
		now:       time.Now,
	}
	h.workerPool = newWorkerPool(h, defaultWorkerCount)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BotHandler) observe(result string) {
	if h.observer != nil {
		h.observer.ObserveUpdate("telegram", result)
	}
}

// sendMessage oddiy matn yuborish, markup nil bo'lishi mumkin
func (h *BotHandler) sendMessage(chatID int64, text string, markup interface{}) {
	if h.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Warn().Err(err).Int64("chat_id", chatID).Msg("xabar yuborilmadi")
	}
}

func (h *BotHandler) answerCallback(id string) {
	if h.bot == nil || id == "" {
		return
	}
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.log.Debug().Err(err).Msg("callback javobi yuborilmadi")
	}
}
