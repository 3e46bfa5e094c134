package browse

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/catalogue"
	"histobot/internal/stories/access"
	"histobot/internal/telegram/messages"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type accessChecker interface {
	Check(ctx context.Context, userID int64, section string) (access.Decision, error)
}

type contentSource interface {
	InfoSection() string
	Section(key string) (catalogue.Section, error)
	Item(key string, index int) (catalogue.Item, error)
}

type renderer interface {
	Section(lang string, s catalogue.Section) messages.Screen
	Info(lang string, s catalogue.Section) messages.Screen
	Leaf(lang, section string, it catalogue.Item) messages.Screen
	Denial(lang string, d access.Decision) string
	Text(lang, key string) string
}
