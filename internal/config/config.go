package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config — настройки сервера и виджета. Источники по приоритету:
// переменные окружения, .env, config.yaml, значения по умолчанию.
type Config struct {
	Env      string
	LogLevel string

	HTTPAddr           string
	GRPCAddr           string
	CORSAllowedOrigins []string

	DB     DBConfig
	Widget WidgetConfig
}

// WidgetConfig — настройки терминального виджета.
type WidgetConfig struct {
	CalendarConfigPath string
	SubmitTransport    string
	SubmitURL          string
	SubmitGRPCTarget   string
	LogFile            string
}

// Load читает конфигурацию. Отсутствие .env и config.yaml не ошибка.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GRPC_ADDR", ":50051")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("CALENDAR_CONFIG", "configs/calendar.yaml")
	v.SetDefault("SUBMIT_TRANSPORT", TransportHTTP)
	v.SetDefault("SUBMIT_URL", "http://localhost:8080/bookings")
	v.SetDefault("SUBMIT_GRPC_TARGET", "localhost:50051")
	v.SetDefault("WIDGET_LOG_FILE", "calendar-widget.log")

	setDBDefaults(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	db, err := loadDBConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                v.GetString("ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		GRPCAddr:           v.GetString("GRPC_ADDR"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DB:                 db,
		Widget: WidgetConfig{
			CalendarConfigPath: v.GetString("CALENDAR_CONFIG"),
			SubmitTransport:    NormalizeTransport(v.GetString("SUBMIT_TRANSPORT")),
			SubmitURL:          v.GetString("SUBMIT_URL"),
			SubmitGRPCTarget:   v.GetString("SUBMIT_GRPC_TARGET"),
			LogFile:            v.GetString("WIDGET_LOG_FILE"),
		},
	}

	switch cfg.Widget.SubmitTransport {
	case TransportHTTP, TransportGRPC:
	default:
		return nil, fmt.Errorf("invalid config: unknown submit transport %q", cfg.Widget.SubmitTransport)
	}

	return cfg, nil
}

// IsProduction — включает продовый формат логов.
// NormalizeTransport приводит имя транспорта к виду констант Transport*.
func NormalizeTransport(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
