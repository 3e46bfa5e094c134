package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               DBConfig                `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	Catalogue        CatalogueConfig         `env:",prefix=CATALOGUE_"`
	Tracing          TracingConfig           `env:",prefix=OTEL_"`
	SupportContact   string                  `env:"SUPPORT_CONTACT,default=@histology_support"`
}

type TelegramConfig struct {
	BotToken       string        `env:"BOT_TOKEN,required"`
	FullAccessIDs  []int64       `env:"FULL_ACCESS_IDS"`
	UpdateTimeout  time.Duration `env:"UPDATE_TIMEOUT,default=60s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS,default=30"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST,default=1"`
}

type CatalogueConfig struct {
	// Path overrides the embedded catalogue when set.
	Path string `env:"PATH"`
}

// TracingConfig enables OTLP/HTTP trace export. Tracing stays off while Endpoint is empty.
type TracingConfig struct {
	Enabled     bool   `env:"ENABLED,default=true"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME,default=histobot"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type DBConfig struct {
	Driver       string        `env:"DRIVER,default=sqlite3"`
	DSN          string        `env:"DSN,default=./data/histobot.db"`
	MaxOpenConns int           `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int           `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  time.Duration `env:"MAX_LIFETIME,default=5m"`
	ConnTimeout  time.Duration `env:"CONN_TIMEOUT,default=5s"`
}
