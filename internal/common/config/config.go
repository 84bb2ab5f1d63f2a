package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `yaml:"port"`
	Environment  string `yaml:"env"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`

	// Dashboard
	DBPath string `yaml:"dbPath"`

	// Gateway upstreams
	RendererURL  string `yaml:"rendererUrl"`
	DashboardURL string `yaml:"dashboardUrl"`
}

// Load загружает конфигурацию из .env, переменных окружения и,
// если задан CONFIG_FILE, из YAML-файла поверх них.
func Load(defaultPort string) *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[CONFIG] loaded .env")
	}

	cfg := &Config{
		Port:         getEnv("PORT", defaultPort),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("DB_PATH", "./data/dashboard.db"),
		RendererURL:  getEnv("RENDERER_URL", "http://localhost:3001"),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3002"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			log.Printf("[CONFIG] %v", err)
		}
	}
	return cfg
}

// LoadFile накладывает значения из YAML-файла на cfg. Отсутствующие в
// файле поля не меняются.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
