package config

import "github.com/kelseyhightower/envconfig"

// Configはアプリ全体の設定。環境変数から読む。
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// DATABASE_URL があれば個別のPOSTGRES_*より優先
	DatabaseURL      string `envconfig:"DATABASE_URL" default:""`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"app"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev_secret_change_me"`

	// セッションcookieをSecure属性付きで配るか
	CookieSecure bool `envconfig:"COOKIE_SECURE" default:"false"`

	GoEnv string `envconfig:"GO_ENV" default:"dev"`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
