package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"personal-finance-bot/internal/bot"
	"personal-finance-bot/internal/command"
	"personal-finance-bot/internal/config"
	"personal-finance-bot/internal/httpserver"
	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/repository"
	"personal-finance-bot/internal/service"
	"personal-finance-bot/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config: load failed", "err", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Error("db: open failed", "err", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("db: unwrap failed", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	store := repository.NewStore(db)
	if err := seedCategories(ctx, store, cfg, log); err != nil {
		log.Error("db: seed standard categories failed", "err", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	clock := func() time.Time { return time.Now().In(cfg.Location) }
	dispatcher := command.NewDispatcher(store,
		command.WithClock(clock),
		command.WithLogger(log.With("component", "dispatcher")),
		command.WithMetrics(command.NewMetrics(registry)),
	)

	telegramBot, err := bot.New(cfg.TelegramToken, dispatcher, log.With("component", "bot"))
	if err != nil {
		log.Error("bot: init failed", "err", err)
		os.Exit(1)
	}

	if cfg.DigestEnabled() {
		scheduler := service.NewSchedulerService(cfg.Location)
		id, err := scheduler.Schedule(cfg.DigestSchedule, func() {
			jobCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := telegramBot.SendMonthlyDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("digest: send failed", "err", err)
			}
		})
		if err != nil {
			log.Error("digest: schedule failed", "err", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("digest: scheduled", "next", scheduler.Next(id))
	}

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = httpserver.New(cfg.HTTPAddr, httpserver.NewRouter(sqlDB, registry, log.With("component", "http")))
		go func() {
			log.Info("http: listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http: server failed", "addr", srv.Addr, "err", err)
				stop()
			}
		}()
	}

	log.Info("finance bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot: stopped with error", "err", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http: graceful shutdown failed", "err", err)
		}
	}
	log.Info("shutdown complete")
}

// seedCategories makes sure the configured standard categories exist.
func seedCategories(ctx context.Context, store service.Store, cfg config.Config, log logger.Logger) error {
	return store.Transaction(ctx, func(tx service.Store) error {
		categories := service.New(tx, nil).Categories
		seeds := []struct {
			categoryType model.CategoryType
			names        []string
		}{
			{model.CategoryIncome, cfg.IncomeCategories},
			{model.CategoryExpense, cfg.ExpenseCategories},
		}
		for _, seed := range seeds {
			created, err := categories.SeedStandard(ctx, seed.categoryType, seed.names...)
			if err != nil {
				return err
			}
			if created > 0 {
				log.Info("db: standard categories created", "type", seed.categoryType.String(), "count", created)
			}
		}
		return nil
	})
}
