package starttrial

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/stories/trials"
)

// MockBotApi records everything sent through it.
type MockBotApi struct {
	Sent      []tgbotapi.Chattable
	Requested []tgbotapi.Chattable
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.Sent = append(m.Sent, c)
	return tgbotapi.Message{MessageID: len(m.Sent)}, nil
}

func (m *MockBotApi) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.Requested = append(m.Requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// Toasts returns the texts of every answered callback.
func (m *MockBotApi) Toasts() []string {
	var out []string
	for _, c := range m.Requested {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

type MockTrialService struct {
	Existing     *trials.Trial
	GetErr       error
	ActivateOK   bool
	ActivateErr  error
	ActivateCall int
}

func (m *MockTrialService) Get(ctx context.Context, userID int64) (*trials.Trial, error) {
	return m.Existing, m.GetErr
}

func (m *MockTrialService) Activate(ctx context.Context, userID int64) (bool, error) {
	m.ActivateCall++
	return m.ActivateOK, m.ActivateErr
}

type MockAccess struct {
	Full map[int64]bool
}

func (m *MockAccess) IsFullAccess(userID int64) bool {
	return m.Full[userID]
}

type MockMenu struct {
	Refreshed []int
	Err       error
}

func (m *MockMenu) Refresh(ctx context.Context, chatID int64, messageID int, user *tgbotapi.User, lang string) error {
	m.Refreshed = append(m.Refreshed, messageID)
	return m.Err
}

// MockLocalizer returns keys untranslated.
type MockLocalizer struct{}

func (MockLocalizer) Text(lang, key string) string {
	return key
}

var errStorage = errors.New("storage down")
