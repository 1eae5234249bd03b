package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kadro-api/internal/orgchart"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	// RankingProfile - путь к YAML с профилем ранжирования; пусто - профиль по умолчанию
	RankingProfile string `env:"RANKING_PROFILE"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"kadro"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"kadro.db"`
}

// ImportConfig - ограничения импорта
type ImportConfig struct {
	PreviewLimit   int   `env:"IMPORT_PREVIEW_LIMIT" envDefault:"5"`
	MaxUploadBytes int64 `env:"IMPORT_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Dialect возвращает диалект goose для выбранного драйвера
func (c *DatabaseConfig) Dialect() string {
	if c.Driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

// LoadEnv подгружает существующие из перечисленных .env файлов; отсутствующие пропускаются
func LoadEnv(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	if err := LoadEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// LoadProfile читает профиль ранжирования. Поля, не указанные в файле,
// берутся из профиля по умолчанию.
func LoadProfile(path string) (orgchart.Profile, error) {
	profile := orgchart.DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read ranking profile: %w", err)
	}

	var override orgchart.Profile
	if err := yaml.Unmarshal(data, &override); err != nil {
		return profile, fmt.Errorf("failed to parse ranking profile: %w", err)
	}

	if override.TopTitle != "" {
		profile.TopTitle = override.TopTitle
	}
	if override.DeputyTitle != "" {
		profile.DeputyTitle = override.DeputyTitle
	}
	if override.OversightDepartment != "" {
		profile.OversightDepartment = override.OversightDepartment
	}
	if override.FinanceDepartment != "" {
		profile.FinanceDepartment = override.FinanceDepartment
	}
	if len(override.TitleRanks) > 0 {
		profile.TitleRanks = override.TitleRanks
	}
	if profile.TopTitle == "" {
		return profile, errors.New("ranking profile has no top title")
	}
	return profile, nil
}
