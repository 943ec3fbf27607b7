package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	PIN          string
	AccessSecret string
}

type BusinessConfig struct {
	Name       string
	FooterName string
	FooterNote string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Business    BusinessConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Auth: AuthConfig{
			PIN:          v.GetString("AUTH_PIN"),
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Business: BusinessConfig{
			Name:       v.GetString("BUSINESS_NAME"),
			FooterName: v.GetString("BUSINESS_FOOTER_NAME"),
			FooterNote: v.GetString("BUSINESS_FOOTER_NOTE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Business.Name == "" {
		cfg.Business.Name = "Kharjul Milk Service"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.PIN == "" {
		return fmt.Errorf("AUTH_PIN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
