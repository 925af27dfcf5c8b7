package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string
	SQLitePath      string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

func setDBDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "calendar.db")
	v.SetDefault("DB_HOST", "postgres")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "booking")
	v.SetDefault("DB_PASSWORD", "booking")
	v.SetDefault("DB_NAME", "booking_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 30)
}

func loadDBConfig(v *viper.Viper) (DBConfig, error) {
	cfg := DBConfig{
		Driver:          v.GetString("DB_DRIVER"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Name:            v.GetString("DB_NAME"),
		SSLMode:         v.GetString("DB_SSLMODE"),
		TimeZone:        v.GetString("DB_TIMEZONE"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifeTime: v.GetInt("DB_CONN_MAX_LIFETIME_MIN"),
	}

	// минимальная валидация
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
			return DBConfig{}, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return DBConfig{}, fmt.Errorf("invalid DB config: sqlite path must not be empty")
		}
	default:
		return DBConfig{}, fmt.Errorf("invalid DB config: unknown driver %q", cfg.Driver)
	}

	return cfg, nil
}
