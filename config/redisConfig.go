package config

import "strconv"

// RedisConfig describes the connection to the key-value store that keeps
// the barcode index and the supplier-return-day cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GetRedisConfig возвращает конфигурацию Redis: env поверх значений по умолчанию.
func GetRedisConfig() *RedisConfig {
	cfg := &RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	}
	if dbStr := getEnv("REDIS_DB", "0"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			cfg.DB = n
		}
	}
	return cfg
}
