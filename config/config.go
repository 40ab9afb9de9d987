package config

import (
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type StoreConfig struct {
	Path string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig

	// AdminPIN seeds the first admin user on an empty database.
	AdminPIN string
}

// Load reads configuration from the environment and an optional app.env
// file next to the binary.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "127.0.0.1")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("STORE_PATH", "station.db")
	v.SetDefault("ADMIN_PIN", "1234")

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			CORSOrigins: splitList(v.GetString("HTTP_CORS_ORIGINS")),
		},
		Store: StoreConfig{
			Path: v.GetString("STORE_PATH"),
		},
		AdminPIN: v.GetString("ADMIN_PIN"),
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
