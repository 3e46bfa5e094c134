package environment

import (
	"context"
	"log/slog"
	"time"

	"histobot/internal/catalogue"
	"histobot/internal/config"
	"histobot/internal/localization"
	"histobot/internal/storage"
	"histobot/internal/stories/access"
	"histobot/internal/stories/trials"
	"histobot/internal/telegram"
	"histobot/internal/telegram/callbacks"
	"histobot/internal/telegram/cmds"
	"histobot/internal/telegram/flows/browse"
	"histobot/internal/telegram/flows/starttrial"
	"histobot/internal/telegram/messages"

	"github.com/pkg/errors"
)

type Services struct {
	TelegramRouter *telegram.Router
	TrialService   *trials.Service
}

func newServices(_ context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	if clients.TelegramBot == nil {
		return nil, errors.New("telegram bot не инициализирован")
	}

	menu, err := catalogue.Load(cfg.Catalogue.Path)
	if err != nil {
		return nil, errors.Wrap(err, "load catalogue")
	}
	if err := validateSectionKeys(menu); err != nil {
		return nil, err
	}

	l10n, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "load translations")
	}

	storageImpl := storage.New(clients.DB.DB, clients.DB.Placeholder())

	trialService := trials.NewService(storageImpl, time.Now)
	s.TrialService = trialService

	allow := access.NewAllowList(cfg.Telegram.FullAccessIDs)
	accessService := access.NewService(trialService, allow, menu.TrialSection(), time.Now)
	logger.Info("Access configured",
		slog.Int("full_access_users", allow.Len()),
		slog.String("trial_section", menu.TrialSection()))

	renderer := messages.NewRenderer(l10n, menu, cfg.SupportContact)

	startCommand := cmds.NewStartCommand(clients.TelegramBot, accessService, renderer)

	startTrialHandler := starttrial.NewHandler(
		clients.TelegramBot,
		trialService,
		accessService,
		startCommand,
		renderer,
		logger.With(slog.String("flow", "starttrial")),
	)

	browseHandler := browse.NewHandler(
		clients.TelegramBot,
		accessService,
		menu,
		renderer,
		logger.With(slog.String("flow", "browse")),
	)

	s.TelegramRouter = telegram.NewRouter(
		clients.TelegramBot,
		l10n,
		renderer,
		startCommand,
		startTrialHandler,
		browseHandler,
		logger,
	)

	return &s, nil
}

// Section keys double as callback payloads, so they must parse back as topics.
func validateSectionKeys(menu *catalogue.Catalogue) error {
	for _, s := range menu.Sections() {
		if !callbacks.IsSectionKey(s.Key) {
			return errors.Errorf("catalogue section key %q is not a topic_<N> key", s.Key)
		}
	}
	return nil
}
