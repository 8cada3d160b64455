package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const digestOff = "off"

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken     string
	DatabaseURL       string
	HTTPAddr          string
	DigestSchedule    string
	Location          *time.Location
	IncomeCategories  []string
	ExpenseCategories []string
}

// Load reads configuration from a .env file (when present) and environment variables
// with sane defaults. Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		TelegramToken:     strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DigestSchedule:    getEnv("DIGEST_SCHEDULE", "0 0 10 1 * *"),
		IncomeCategories:  parseList(getEnv("STANDARD_INCOME_CATEGORIES", "Зарплата,Подработка,Подарки")),
		ExpenseCategories: parseList(getEnv("STANDARD_EXPENSE_CATEGORIES", "Продукты,Транспорт,Жильё,Развлечения")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "finance_bot.db"
	}

	if strings.EqualFold(cfg.DigestSchedule, digestOff) {
		cfg.DigestSchedule = ""
	}

	loc, err := parseLocation(strings.TrimSpace(os.Getenv("TIMEZONE")))
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

// DigestEnabled reports whether the monthly digest should be scheduled.
func (c Config) DigestEnabled() bool {
	return c.DigestSchedule != ""
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(value)
}

func parseLocation(raw string) (*time.Location, error) {
	if raw == "" || strings.EqualFold(raw, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", raw, err)
	}
	return loc, nil
}

func parseList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
