package messages

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// NewMessage builds a new message carrying the screen.
func NewMessage(chatID int64, s Screen) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, s.Text)
	msg.ParseMode = ParseMode
	msg.DisableWebPagePreview = true
	if len(s.Keyboard.InlineKeyboard) > 0 {
		msg.ReplyMarkup = s.Keyboard
	}
	return msg
}

// NewEdit replaces the text and keyboard of an existing message with the screen.
func NewEdit(chatID int64, messageID int, s Screen) tgbotapi.EditMessageTextConfig {
	kb := s.Keyboard
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, s.Text, kb)
	edit.ParseMode = ParseMode
	edit.DisableWebPagePreview = true
	return edit
}

// NewToast answers a callback query with a short notification. An empty text
// just stops the button spinner.
func NewToast(callbackID, text string) tgbotapi.CallbackConfig {
	return tgbotapi.NewCallback(callbackID, text)
}
