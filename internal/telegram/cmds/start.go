package cmds

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/stories/access"
	"histobot/internal/telegram/messages"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type StatusProvider interface {
	Status(ctx context.Context, userID int64) (access.Status, error)
}

// StartCommand renders the main menu.
type StartCommand struct {
	bot      botApi
	access   StatusProvider
	renderer *messages.Renderer
}

func NewStartCommand(bot botApi, access StatusProvider, renderer *messages.Renderer) *StartCommand {
	return &StartCommand{
		bot:      bot,
		access:   access,
		renderer: renderer,
	}
}

// Execute sends a new main menu message.
func (c *StartCommand) Execute(ctx context.Context, chatID int64, user *tgbotapi.User, lang string) error {
	screen, err := c.render(ctx, user, lang)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, c.renderer.Text(lang, "errors.internal")))
		return err
	}

	_, err = c.bot.Send(messages.NewMessage(chatID, screen))
	return err
}

// Refresh turns an existing message back into the main menu.
func (c *StartCommand) Refresh(ctx context.Context, chatID int64, messageID int, user *tgbotapi.User, lang string) error {
	screen, err := c.render(ctx, user, lang)
	if err != nil {
		return err
	}

	_, err = c.bot.Send(messages.NewEdit(chatID, messageID, screen))
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (c *StartCommand) render(ctx context.Context, user *tgbotapi.User, lang string) (messages.Screen, error) {
	status, err := c.access.Status(ctx, user.ID)
	if err != nil {
		return messages.Screen{}, fmt.Errorf("get access status: %w", err)
	}
	return c.renderer.MainMenu(lang, user.FirstName, status), nil
}
