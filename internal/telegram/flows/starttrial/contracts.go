package starttrial

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/stories/trials"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type trialService interface {
	Get(ctx context.Context, userID int64) (*trials.Trial, error)
	Activate(ctx context.Context, userID int64) (bool, error)
}

type accessChecker interface {
	IsFullAccess(userID int64) bool
}

type mainMenu interface {
	Refresh(ctx context.Context, chatID int64, messageID int, user *tgbotapi.User, lang string) error
}

type localizer interface {
	Text(lang, key string) string
}
