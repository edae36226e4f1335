package config

import (
	"os"
	"time"
)

// Config 应用配置
type Config struct {
	Port         string
	BaseURL      string
	UserAgent    string
	FetchTimeout time.Duration // 0 表示不设置超时
	LogLevel     string
	LogFormat    string
}

// Load 从环境变量加载配置
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		BaseURL:      getEnv("SCHOLAR_BASE_URL", "https://scholar.google.com"),
		UserAgent:    getEnv("SCHOLAR_USER_AGENT", "Mozilla/5.0 (compatible; scholar-metrics/1.0)"),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 0),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
