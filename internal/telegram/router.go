package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"histobot/internal/stories/access"
	"histobot/internal/telegram/callbacks"
	"histobot/internal/telegram/cmds"
	"histobot/internal/telegram/flows/browse"
	"histobot/internal/telegram/flows/starttrial"
	"histobot/internal/telegram/messages"
)

const tracerName = "histobot/internal/telegram"

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type languageResolver interface {
	Language(code string) string
}

type Router struct {
	bot       botApi
	languages languageResolver
	renderer  *messages.Renderer
	logger    *slog.Logger
	tracer    trace.Tracer

	// Handlers
	startCommand      *cmds.StartCommand
	startTrialHandler *starttrial.Handler
	browseHandler     *browse.Handler
}

// NewRouter создает новый роутер с зависимостями
func NewRouter(
	bot botApi,
	languages languageResolver,
	renderer *messages.Renderer,
	startCommand *cmds.StartCommand,
	startTrialHandler *starttrial.Handler,
	browseHandler *browse.Handler,
	logger *slog.Logger,
) *Router {
	return &Router{
		bot:               bot,
		languages:         languages,
		renderer:          renderer,
		logger:            logger,
		tracer:            otel.Tracer(tracerName),
		startCommand:      startCommand,
		startTrialHandler: startTrialHandler,
		browseHandler:     browseHandler,
	}
}

// Route handles a single update. It is safe to call from many goroutines at once.
func (r *Router) Route(ctx context.Context, update *tgbotapi.Update) (err error) {
	kind := updateKind(update)
	updatesTotal.WithLabelValues(kind).Inc()

	ctx, span := r.tracer.Start(ctx, "telegram.route", trace.WithAttributes(
		attribute.Int("update_id", update.UpdateID),
		attribute.String("kind", kind),
	))
	defer func() {
		if err != nil {
			updateErrorsTotal.WithLabelValues(kind).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := r.logger.With(slog.String("request_id", uuid.NewString()))

	switch {
	case update.Message != nil:
		return r.handleMessage(ctx, update.Message, logger)
	case update.CallbackQuery != nil:
		return r.handleCallback(ctx, update.CallbackQuery, logger)
	default:
		return nil
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message, logger *slog.Logger) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	lang := r.languages.Language(msg.From.LanguageCode)

	logger.Info("Получено сообщение",
		slog.Int64("chat_id", msg.Chat.ID),
		slog.Int64("user_id", msg.From.ID),
		slog.String("text", msg.Text))

	if msg.IsCommand() && msg.Command() == "start" {
		return r.startCommand.Execute(ctx, msg.Chat.ID, msg.From, lang)
	}

	_, err := r.bot.Send(tgbotapi.NewMessage(msg.Chat.ID, r.renderer.Text(lang, "menu.help")))
	return err
}

func (r *Router) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery, logger *slog.Logger) error {
	if query.From == nil {
		return nil
	}
	lang := r.languages.Language(query.From.LanguageCode)

	logger = logger.With(
		slog.Int64("user_id", query.From.ID),
		slog.String("data", query.Data))
	logger.Info("Получен callback")

	cb, err := callbacks.Parse(query.Data)
	if err != nil || query.Message == nil {
		logger.Warn("Rejected callback", slog.Any("error", err))
		return r.answer(query, r.renderer.Text(lang, "errors.data"))
	}

	switch cb.Kind {
	case callbacks.KindActivateTrial:
		result, err := r.startTrialHandler.Handle(ctx, query, lang)
		trialActivationsTotal.WithLabelValues(string(result)).Inc()
		return err

	case callbacks.KindBackToMenu:
		if err := r.answer(query, ""); err != nil {
			logger.Warn("Failed to answer callback", slog.Any("error", err))
		}
		return r.startCommand.Refresh(ctx, query.Message.Chat.ID, query.Message.MessageID, query.From, lang)

	case callbacks.KindTopic:
		decision, err := r.browseHandler.ShowSection(ctx, query, cb.Section, lang)
		recordDecision(decision)
		return err

	case callbacks.KindContent:
		decision, err := r.browseHandler.ShowContent(ctx, query, cb.Section, cb.Item, lang)
		recordDecision(decision)
		return err

	default:
		return r.answer(query, r.renderer.Text(lang, "errors.data"))
	}
}

func (r *Router) answer(query *tgbotapi.CallbackQuery, text string) error {
	_, err := r.bot.Request(messages.NewToast(query.ID, text))
	return err
}

// SetupBotCommands устанавливает команды для меню бота
func (r *Router) SetupBotCommands() error {
	for _, lang := range []string{"ru", "en"} {
		cfg := tgbotapi.NewSetMyCommands(tgbotapi.BotCommand{
			Command:     "start",
			Description: r.renderer.Text(lang, "commands.start"),
		})
		if lang != "ru" {
			cfg.LanguageCode = lang
		}
		if _, err := r.bot.Request(cfg); err != nil {
			return fmt.Errorf("set %s commands: %w", lang, err)
		}
	}
	return nil
}

func recordDecision(d access.Decision) {
	if d.Tier == "" {
		return
	}
	accessDecisionsTotal.WithLabelValues(string(d.Tier), string(d.Reason)).Inc()
}

func updateKind(update *tgbotapi.Update) string {
	switch {
	case update.Message != nil:
		if update.Message.IsCommand() {
			return "command"
		}
		return "message"
	case update.CallbackQuery != nil:
		return "callback"
	default:
		return "other"
	}
}
