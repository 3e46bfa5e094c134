package starttrial

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/telegram/messages"
)

// Result of an activation attempt, used as a metrics label.
type Result string

const (
	ResultActivated   Result = "activated"
	ResultFullAccess  Result = "full_access"
	ResultAlreadyUsed Result = "already_used"
	ResultRejected    Result = "rejected"
	ResultError       Result = "error"
)

type Handler struct {
	bot          botApi
	trialService trialService
	access       accessChecker
	menu         mainMenu
	l10n         localizer
	logger       *slog.Logger
}

func NewHandler(
	bot botApi,
	ts trialService,
	ac accessChecker,
	menu mainMenu,
	l10n localizer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		trialService: ts,
		access:       ac,
		menu:         menu,
		l10n:         l10n,
		logger:       logger,
	}
}

// Handle processes an activate_trial button press. The callback is always
// answered; on success the pressed message becomes a fresh main menu.
func (h *Handler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, lang string) (Result, error) {
	userID := query.From.ID

	if h.access.IsFullAccess(userID) {
		return ResultFullAccess, h.toast(query, lang, "trial.already_full")
	}

	existing, err := h.trialService.Get(ctx, userID)
	if err != nil {
		_ = h.toast(query, lang, "errors.internal")
		return ResultError, fmt.Errorf("check existing trial: %w", err)
	}
	if existing != nil {
		return ResultAlreadyUsed, h.toast(query, lang, "trial.already_used")
	}

	activated, err := h.trialService.Activate(ctx, userID)
	if err != nil {
		_ = h.toast(query, lang, "trial.failed")
		return ResultError, fmt.Errorf("activate trial: %w", err)
	}
	if !activated {
		h.logger.Info("Trial activation lost to an existing record", slog.Int64("user_id", userID))
		return ResultRejected, h.toast(query, lang, "trial.failed")
	}

	h.logger.Info("Trial activated", slog.Int64("user_id", userID))

	if err := h.toast(query, lang, "trial.activated"); err != nil {
		h.logger.Warn("Failed to answer callback", slog.Any("error", err))
	}

	if query.Message == nil {
		return ResultActivated, nil
	}
	return ResultActivated, h.menu.Refresh(ctx, query.Message.Chat.ID, query.Message.MessageID, query.From, lang)
}

func (h *Handler) toast(query *tgbotapi.CallbackQuery, lang, key string) error {
	_, err := h.bot.Request(messages.NewToast(query.ID, h.l10n.Text(lang, key)))
	return err
}
