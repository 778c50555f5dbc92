package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"stocktracker_api/config/values"
)

type Config interface {
}

type PanelConfig struct {
	BaseURL string `yaml:"base_url"`
}

// PlatformConfig -- настройки двух панелей внешней платформы.
type PlatformConfig struct {
	Retail    PanelConfig           `yaml:"retail"`
	Warehouse PanelConfig           `yaml:"warehouse"`
	Values    values.PlatformValues `yaml:"default_values"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// CatalogConfig -- источник файла каталога товаров магазина.
type CatalogConfig struct {
	InfURL string `yaml:"inf_url"`
	CSVURL string `yaml:"csv_url"`
}

type AppConfig struct {
	Platform PlatformConfig `yaml:"platform"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Telegram TelegramConfig `yaml:"telegram"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
