package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// updateRequest bitta foydalanuvchi xabari yoki callback
type updateRequest struct {
	ctx      context.Context
	userID   int64
	chatID   int64
	text     string
	callback *tgbotapi.CallbackQuery
}

// workerPool manages parallel processing of updates
type workerPool struct {
	requestQueue chan *updateRequest
	workerCount  int
	handler      *BotHandler
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

const (
	requestQueueSize   = 100
	defaultWorkerCount = 8
	requestTimeout     = 10 * time.Second
	cleanupInterval    = 5 * time.Minute
	sessionMaxIdle     = 2 * time.Hour
)

func newWorkerPool(handler *BotHandler, workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &workerPool{
		requestQueue: make(chan *updateRequest, requestQueueSize),
		workerCount:  workerCount,
		handler:      handler,
	}
}

// start starts all workers
func (wp *workerPool) start(ctx context.Context) {
	wp.handler.log.Info().Int("workers", wp.workerCount).Msg("worker pool ishga tushdi")
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

func (wp *workerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-wp.requestQueue:
			if !ok {
				wp.handler.log.Debug().Int("worker", id).Msg("queue yopildi")
				return
			}
			if req == nil {
				continue
			}
			wp.process(req)
		}
	}
}

// process rate limit tekshiradi va so'rovni timeout bilan bajaradi
func (wp *workerPool) process(req *updateRequest) {
	h := wp.handler
	if req.callback != nil {
		h.answerCallback(req.callback.ID)
	}
	if !h.limiter.allow(req.userID, h.now()) {
		h.log.Warn().Int64("user_id", req.userID).Msg("rate limit oshib ketdi")
		h.observe("rate_limited")
		h.sendMessage(req.chatID, msgTooMany, nil)
		return
	}

	parent := req.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, requestTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Int64("user_id", req.userID).Str("panic", fmt.Sprint(r)).Msg("update qayta ishlashda panic")
			h.observe("panic")
			h.sendMessage(req.chatID, msgInternal, nil)
		}
	}()

	if req.callback != nil {
		h.handleCallback(ctx, req.callback)
		h.observe("callback")
		return
	}
	h.handleText(ctx, req.chatID, req.userID, req.text)
	h.observe("message")
}

// submit navbatga qo'yadi, navbat to'la bo'lsa foydalanuvchiga "band" deydi
func (wp *workerPool) submit(req *updateRequest) bool {
	select {
	case wp.requestQueue <- req:
		return true
	default:
		wp.handler.log.Warn().
			Int("queued", len(wp.requestQueue)).
			Int64("user_id", req.userID).
			Msg("worker pool navbati to'la, so'rov rad etildi")
		wp.handler.observe("rejected")
		wp.handler.sendMessage(req.chatID, msgBusy, nil)
		return false
	}
}

// shutdown navbatni yopib, workerlar tugashini kutadi
func (wp *workerPool) shutdown() {
	wp.closeOnce.Do(func() {
		wp.handler.log.Info().Int("queued", len(wp.requestQueue)).Msg("worker pool to'xtatilmoqda")
		close(wp.requestQueue)
	})
	wp.wg.Wait()
}
