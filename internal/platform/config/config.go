package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config reúne toda la configuración del servicio desde variables de entorno.
// Sin ADMIN_TOKEN el servicio arranca en modo dev (headers X-Debug-*).
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"pet-tag-registry"`
	Port    string `env:"PORT" envDefault:"8080"`

	DBDSN string `env:"DB_DSN"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	AdminToken string `env:"ADMIN_TOKEN"`

	// Webhook opcional para eventos del ciclo de vida (notificaciones a clientes).
	NotifyWebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
