package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DBConfig — параметры подключения к Postgres и пула соединений.
type DBConfig struct {
	Host            string `mapstructure:"DB_HOST"`
	Port            int    `mapstructure:"DB_PORT"`
	User            string `mapstructure:"DB_USER"`
	Password        string `mapstructure:"DB_PASSWORD"`
	Name            string `mapstructure:"DB_NAME"`
	SSLMode         string `mapstructure:"DB_SSLMODE"`
	TimeZone        string `mapstructure:"DB_TIMEZONE"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifeTime int    `mapstructure:"DB_CONN_MAX_LIFETIME_MIN"` // минут
}

// RedisConfig — параметры кэша доступности. Пустой Addr отключает Redis,
// сервис работает на внутрипроцессном кэше.
type RedisConfig struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// Config — вся конфигурация сервиса. Источники: config.yaml рядом с бинарём
// и переменные окружения, окружение приоритетнее.
type Config struct {
	Env      string `mapstructure:"ENV"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// Минимальный горизонт записи: слоты раньше now+LeadMinutes не отдаются.
	LeadMinutes int `mapstructure:"LEAD_MINUTES"`
	// TTL кэша проверок занятости дней, в секундах.
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`

	DB    DBConfig    `mapstructure:",squash"`
	Redis RedisConfig `mapstructure:",squash"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("LEAD_MINUTES", 60)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)

	viper.SetDefault("DB_HOST", "postgres")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "booking")
	viper.SetDefault("DB_PASSWORD", "booking")
	viper.SetDefault("DB_NAME", "booking_db")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 30)

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Файл опционален, окружения достаточно.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}
	if cfg.LeadMinutes < 0 {
		return nil, fmt.Errorf("invalid LEAD_MINUTES: %d", cfg.LeadMinutes)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
