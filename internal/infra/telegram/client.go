package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

type Client struct {
	api           *tgbotapi.BotAPI
	logger        *slog.Logger
	limiter       *rate.Limiter
	updateTimeout time.Duration
	updates       tgbotapi.UpdatesChannel
	ctx           context.Context
	cancel        context.CancelFunc
}

type Option func(*Client)

// WithRateLimit caps outgoing API calls per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUpdateTimeout sets the long polling timeout.
func WithUpdateTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.updateTimeout = timeout
		}
	}
}

func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("создание telegram бота: %w", err)
	}

	c := &Client{
		api:    bot,
		logger: logger,
		// Rate limiting - 30 сообщений в секунду
		limiter:       rate.NewLimiter(30, 1),
		updateTimeout: 60 * time.Second,
	}
	c.bind(context.Background())
	for _, opt := range opts {
		opt(c)
	}

	logger.Info("Telegram bot authorized", slog.String("username", bot.Self.UserName))
	return c, nil
}

// Start начинает получение обновлений (long polling). Cancelling ctx does not
// abort outgoing calls: in-flight updates keep answering until Close.
func (c *Client) Start(ctx context.Context) error {
	c.bind(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(c.updateTimeout / time.Second)
	u.AllowedUpdates = []string{"message", "callback_query"}

	c.updates = c.api.GetUpdatesChan(u)

	c.logger.Info("Telegram бот запущен")
	return nil
}

// Stop останавливает получение обновлений. Send and Request keep working.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
	c.logger.Info("Telegram бот остановлен")
}

// Close aborts outgoing calls still waiting on the rate limiter. Call it
// after in-flight updates are drained.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) bind(ctx context.Context) {
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(context.WithoutCancel(ctx))
}

func (c *Client) wait() error {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}
	return nil
}

// GetUpdates возвращает канал с обновлениями
func (c *Client) GetUpdates() tgbotapi.UpdatesChannel {
	return c.updates
}

// Send отправляет любое сообщение с rate limiting (для интерфейса botApi)
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := c.wait(); err != nil {
		return tgbotapi.Message{}, err
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.logger.Debug("ошибка отправки", slog.Any("error", err))
		return tgbotapi.Message{}, fmt.Errorf("отправка: %w", err)
	}

	return message, nil
}

// Request отправляет запрос к API (для интерфейса botApi)
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := c.wait(); err != nil {
		return nil, err
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.logger.Error("ошибка запроса к API", slog.Any("error", err))
		return nil, fmt.Errorf("запрос к API: %w", err)
	}

	return resp, nil
}
