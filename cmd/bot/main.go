package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/phone-price-bot/config"
	"github.com/yourusername/phone-price-bot/internal/app"
	"github.com/yourusername/phone-price-bot/internal/delivery/httpapi"
	"github.com/yourusername/phone-price-bot/internal/delivery/telegram"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/metrics"
	"github.com/yourusername/phone-price-bot/internal/usecase"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Konfiguratsiya yuklanmadi")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Msg("🚀 Ilova ishga tushmoqda...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 2. Katalog (qisman katalog bilan ishlanmaydi)
	catalog, err := app.LoadCatalog(ctx, cfg, app.NewSource(cfg), m)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Katalog yuklanmadi")
	}
	resolver := usecase.WithObserver(catalog.Resolver, m)

	// 3. HTTP API
	router := httpapi.NewRouter(resolver, httpapi.Options{
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Observer: m,
	})
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("🌐 HTTP API ishlayapti")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("❌ HTTP server xatosi")
			stop()
		}
	}()

	// 4. Telegram bot
	botDone := make(chan struct{})
	if cfg.BotEnabled() {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			logger.Fatal().Err(err).Msg("❌ Telegram bot yaratilmadi")
		}
		logger.Info().Str("username", api.Self.UserName).Msg("✅ Telegram bot tayyor")

		botHandler := telegram.NewBotHandler(api, resolver, telegram.WithObserver(m))
		go func() {
			defer close(botDone)
			if err := botHandler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("❌ Bot xatosi")
			}
		}()
	} else {
		logger.Warn().Msg("TELEGRAM_BOT_TOKEN berilmagan, faqat HTTP API ishlaydi")
		close(botDone)
	}

	logger.Info().Msg("🤖 Ishlayapti. To'xtatish uchun Ctrl+C ni bosing.")
	<-ctx.Done()
	logger.Info().Msg("⏳ To'xtatish signali qabul qilindi...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server to'xtatishda xato")
	}
	select {
	case <-botDone:
	case <-shutdownCtx.Done():
		logger.Warn().Msg("bot o'z vaqtida to'xtamadi")
	}
	logger.Info().Msg("✅ To'xtatildi.")
}

// initDefaultTimezone do'konlar Iroqda, vaqt Baghdad bo'yicha
func initDefaultTimezone() {
	const tzName = "Asia/Baghdad"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 3*60*60)
}
