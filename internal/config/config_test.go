package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "DATABASE_URL", "HTTP_ADDR", "DIGEST_SCHEDULE", "TIMEZONE",
		"STANDARD_INCOME_CATEGORIES", "STANDARD_EXPENSE_CATEGORIES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "finance_bot.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if !cfg.DigestEnabled() || cfg.DigestSchedule != "0 0 10 1 * *" {
		t.Errorf("DigestSchedule = %q", cfg.DigestSchedule)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want Local", cfg.Location)
	}
	if len(cfg.IncomeCategories) == 0 || len(cfg.ExpenseCategories) == 0 {
		t.Errorf("expected default standard categories")
	}
}

func TestLoadRequiresToken(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error without TELEGRAM_TOKEN")
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	content := "TELEGRAM_TOKEN=from-file\nDATABASE_URL=data/bot.db\nDIGEST_SCHEDULE=off\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DATABASE_URL", "override.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramToken != "from-file" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
	if cfg.DatabaseURL != "override.db" {
		t.Errorf("DatabaseURL = %q, want env value", cfg.DatabaseURL)
	}
	if cfg.DigestEnabled() {
		t.Errorf("digest should be disabled")
	}
}

func TestLoadCategoriesAndTimezone(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("STANDARD_EXPENSE_CATEGORIES", " Такси , ,Кафе")
	t.Setenv("STANDARD_INCOME_CATEGORIES", "")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []string{"Такси", "Кафе"}; !reflect.DeepEqual(cfg.ExpenseCategories, want) {
		t.Errorf("ExpenseCategories = %v, want %v", cfg.ExpenseCategories, want)
	}
	if len(cfg.IncomeCategories) != 0 {
		t.Errorf("IncomeCategories = %v, want empty", cfg.IncomeCategories)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v", cfg.Location)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
