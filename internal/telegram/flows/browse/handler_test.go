package browse

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histobot/internal/catalogue"
	"histobot/internal/localization"
	"histobot/internal/stories/access"
	"histobot/internal/telegram/messages"
)

type mockBot struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	sendErr   error
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, m.sendErr
}

func (m *mockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.requested = append(m.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockBot) toasts() []string {
	var out []string
	for _, c := range m.requested {
		out = append(out, c.(tgbotapi.CallbackConfig).Text)
	}
	return out
}

type mockAccess struct {
	decision access.Decision
	err      error
	checked  []string
}

func (m *mockAccess) Check(ctx context.Context, userID int64, section string) (access.Decision, error) {
	m.checked = append(m.checked, section)
	return m.decision, m.err
}

func setup(t *testing.T, ac *mockAccess) (*Handler, *mockBot, *catalogue.Catalogue) {
	t.Helper()

	l10n, err := localization.NewService()
	require.NoError(t, err)
	c, err := catalogue.Load("")
	require.NoError(t, err)

	bot := &mockBot{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(bot, ac, c, messages.NewRenderer(l10n, c, "@support"), logger), bot, c
}

func query() *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: 5},
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: 5}},
	}
}

func TestShowSectionAllowed(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierTrial}}
	h, bot, c := setup(t, ac)

	d, err := h.ShowSection(context.Background(), query(), "topic_1", "ru")
	require.NoError(t, err)
	assert.Equal(t, access.TierTrial, d.Tier)
	assert.Equal(t, []string{""}, bot.toasts())

	require.Len(t, bot.sent, 1)
	edit, ok := bot.sent[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 9, edit.MessageID)

	s, err := c.Section("topic_1")
	require.NoError(t, err)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, len(s.Items)+1)
}

func TestShowSectionDenied(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierNone, Reason: access.ReasonExpired}}
	h, bot, _ := setup(t, ac)

	_, err := h.ShowSection(context.Background(), query(), "topic_1", "ru")
	require.NoError(t, err)
	assert.Empty(t, bot.sent, "denied section must not be shown")
	assert.Equal(t, []string{"❌ Пробный период истёк."}, bot.toasts())
}

func TestShowInfoIsNotGated(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierNone, Reason: access.ReasonNoTrial}}
	h, bot, c := setup(t, ac)

	_, err := h.ShowSection(context.Background(), query(), c.InfoSection(), "ru")
	require.NoError(t, err)
	assert.Empty(t, ac.checked)
	require.Len(t, bot.sent, 1)

	info, err := c.Section(c.InfoSection())
	require.NoError(t, err)
	assert.Equal(t, info.Content, bot.sent[0].(tgbotapi.EditMessageTextConfig).Text)
}

func TestShowSectionUnknown(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierFull}}
	h, bot, _ := setup(t, ac)

	_, err := h.ShowSection(context.Background(), query(), "topic_99", "ru")
	require.NoError(t, err)
	assert.Empty(t, bot.sent)
	assert.Equal(t, []string{"❌ Контент не найден"}, bot.toasts())
}

func TestShowContent(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierFull}}
	h, bot, c := setup(t, ac)

	_, err := h.ShowContent(context.Background(), query(), "topic_5", 27, "ru")
	require.NoError(t, err)
	require.Len(t, bot.sent, 1)

	it, err := c.Item("topic_5", 27)
	require.NoError(t, err)
	assert.Equal(t, it.Content, bot.sent[0].(tgbotapi.EditMessageTextConfig).Text)
	assert.Equal(t, []string{"topic_5"}, ac.checked)
}

func TestShowContentOutOfRange(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierFull}}
	h, bot, _ := setup(t, ac)

	_, err := h.ShowContent(context.Background(), query(), "topic_2", 10, "ru")
	require.NoError(t, err)
	assert.Empty(t, bot.sent)
	assert.Equal(t, []string{"❌ Контент не найден"}, bot.toasts())
}

func TestShowContentDeniedBeforeLookup(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierNone, Reason: access.ReasonSectionLocked}}
	h, bot, _ := setup(t, ac)

	_, err := h.ShowContent(context.Background(), query(), "topic_2", 1, "ru")
	require.NoError(t, err)
	assert.Empty(t, bot.sent)
	require.Len(t, bot.toasts(), 1)
	assert.Contains(t, bot.toasts()[0], "Эмбриология")
}

func TestAccessError(t *testing.T) {
	ac := &mockAccess{err: errors.New("db down")}
	h, bot, _ := setup(t, ac)

	_, err := h.ShowContent(context.Background(), query(), "topic_1", 1, "ru")
	require.Error(t, err)
	assert.Empty(t, bot.sent)
	assert.Len(t, bot.toasts(), 1)
}

func TestNotModifiedIsIgnored(t *testing.T) {
	ac := &mockAccess{decision: access.Decision{Tier: access.TierFull}}
	h, bot, _ := setup(t, ac)
	bot.sendErr = errors.New("Bad Request: message is not modified")

	_, err := h.ShowSection(context.Background(), query(), "topic_3", "ru")
	require.NoError(t, err)
}
