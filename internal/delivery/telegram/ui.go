package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

// Callback data prefikslari. Telegram 64 baytdan uzun data qabul qilmaydi,
// shuning uchun nomlar o'rniga indekslar yuboriladi.
const (
	cbMenu       = "menu"
	cbMode       = "mode|"
	cbBrand      = "brand|"
	cbStore      = "store|"
	cbMore       = "more"
	cbDevice     = "dev|"
	cbSuggestion = "sug|"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnSearchByName, cbMode+string(entity.SearchModeName))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnSearchByBrand, cbMode+string(entity.SearchModeBrand))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnSearchByStore, cbMode+string(entity.SearchModeStore))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnSearchByPrice, cbMode+string(entity.SearchModePrice))),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnBackToMenu, cbMenu))
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow())
}

// pickerKeyboard brend yoki do'kon ro'yxati, birinchi MaxPickerButtons tasi
func pickerKeyboard(prefix string, items []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for i, item := range items {
		if i >= constants.MaxPickerButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(item, prefix+strconv.Itoa(i))))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// pageBounds returns the [start, end) window for page and whether more pages follow.
func pageBounds(total, page int) (start, end int, more bool) {
	if page < 0 {
		page = 0
	}
	start = page * constants.ResultsPerPage
	if start > total {
		start = total
	}
	end = start + constants.ResultsPerPage
	if end > total {
		end = total
	}
	return start, end, end < total
}

// resultsKeyboard natijalar sahifasi, keyingi sahifa bo'lsa "ko'proq" tugmasi bilan
func resultsKeyboard(records []entity.DisplayRecord, page int) tgbotapi.InlineKeyboardMarkup {
	start, end, more := pageBounds(len(records), page)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, end-start+2)
	for i := start; i < end; i++ {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(resultLabel(records[i]), cbDevice+strconv.Itoa(i)),
		))
	}
	if more {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnMore, cbMore)))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func suggestionKeyboard(options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)+1)
	for i, name := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📱 "+name, cbSuggestion+strconv.Itoa(i+1)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// deviceKeyboard havola http bo'lsa URL tugma, aks holda faqat orqaga
func deviceKeyboard(rec entity.DisplayRecord) tgbotapi.InlineKeyboardMarkup {
	if isLink(rec.SpecURL) {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(btnSpecs, rec.SpecURL)),
			backRow(),
		)
	}
	return backKeyboard()
}

func resultLabel(rec entity.DisplayRecord) string {
	label := "📱 " + rec.DeviceName
	if rec.Price != "" {
		label += " | " + rec.Price
	}
	if rec.Store != "" {
		label += " | " + rec.Store
	}
	return label
}

// formatDevice bitta qurilma haqida batafsil matn
func formatDevice(rec entity.DisplayRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📱 %s\n", rec.DeviceName)
	if rec.Brand != "" {
		fmt.Fprintf(&b, "🏷️ %s\n", rec.Brand)
	}
	price := rec.Price
	if rec.PriceValue > 0 {
		price = entity.FormatPrice(rec.PriceValue)
	}
	fmt.Fprintf(&b, "💰 %s\n", price)
	if rec.Store != "" {
		fmt.Fprintf(&b, "🏬 %s\n", rec.Store)
	}
	if rec.Address != "" {
		fmt.Fprintf(&b, "📍 %s\n", rec.Address)
	}
	if isLink(rec.SpecURL) {
		fmt.Fprintf(&b, "\n"+msgSpecLink, rec.SpecURL)
	} else {
		fmt.Fprintf(&b, "\n"+msgSpecLink, msgSpecNone)
	}
	return b.String()
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// parseIndex "prefix|N" dan N ni oladi
func parseIndex(data, prefix string) (int, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
