package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"histobot/internal/catalogue"
	"histobot/internal/stories/access"
	"histobot/internal/telegram/messages"
)

// Handler serves section and document screens. Every entry point answers the
// callback exactly once.
type Handler struct {
	bot       botApi
	access    accessChecker
	catalogue contentSource
	renderer  renderer
	logger    *slog.Logger
}

func NewHandler(bot botApi, ac accessChecker, c contentSource, r renderer, logger *slog.Logger) *Handler {
	return &Handler{
		bot:       bot,
		access:    ac,
		catalogue: c,
		renderer:  r,
		logger:    logger,
	}
}

// ShowSection edits the pressed message into the section's item list. The
// info section is shown to everyone.
func (h *Handler) ShowSection(ctx context.Context, query *tgbotapi.CallbackQuery, section, lang string) (access.Decision, error) {
	if section == h.catalogue.InfoSection() {
		s, err := h.catalogue.Section(section)
		if err != nil {
			return access.Decision{}, h.notFound(query, lang, err)
		}
		return access.Decision{}, h.show(query, h.renderer.Info(lang, s))
	}

	decision, ok, err := h.check(ctx, query, section, lang)
	if !ok {
		return decision, err
	}

	s, err := h.catalogue.Section(section)
	if err != nil {
		return decision, h.notFound(query, lang, err)
	}
	return decision, h.show(query, h.renderer.Section(lang, s))
}

// ShowContent edits the pressed message into a single document.
func (h *Handler) ShowContent(ctx context.Context, query *tgbotapi.CallbackQuery, section string, item int, lang string) (access.Decision, error) {
	decision, ok, err := h.check(ctx, query, section, lang)
	if !ok {
		return decision, err
	}

	it, err := h.catalogue.Item(section, item)
	if err != nil {
		return decision, h.notFound(query, lang, err)
	}
	return decision, h.show(query, h.renderer.Leaf(lang, section, it))
}

// check answers the callback itself when access is refused or cannot be evaluated.
func (h *Handler) check(ctx context.Context, query *tgbotapi.CallbackQuery, section, lang string) (access.Decision, bool, error) {
	decision, err := h.access.Check(ctx, query.From.ID, section)
	if err != nil {
		_ = h.answer(query, h.renderer.Text(lang, "errors.internal"))
		return decision, false, fmt.Errorf("check access to %s: %w", section, err)
	}
	if !decision.Allowed() {
		h.logger.Debug("Access denied",
			slog.Int64("user_id", query.From.ID),
			slog.String("section", section),
			slog.String("reason", string(decision.Reason)),
		)
		return decision, false, h.answer(query, h.renderer.Denial(lang, decision))
	}
	return decision, true, nil
}

func (h *Handler) notFound(query *tgbotapi.CallbackQuery, lang string, err error) error {
	if !errors.Is(err, catalogue.ErrNotFound) {
		_ = h.answer(query, h.renderer.Text(lang, "errors.internal"))
		return err
	}
	return h.answer(query, h.renderer.Text(lang, "errors.not_found"))
}

func (h *Handler) show(query *tgbotapi.CallbackQuery, screen messages.Screen) error {
	if err := h.answer(query, ""); err != nil {
		h.logger.Warn("Failed to answer callback", slog.Any("error", err))
	}
	if query.Message == nil {
		return nil
	}

	_, err := h.bot.Send(messages.NewEdit(query.Message.Chat.ID, query.Message.MessageID, screen))
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (h *Handler) answer(query *tgbotapi.CallbackQuery, text string) error {
	_, err := h.bot.Request(messages.NewToast(query.ID, text))
	return err
}
