package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"DormPower/internal/collector"
	"DormPower/internal/config"
	"DormPower/internal/metrics"
	"DormPower/internal/notifier"
	"DormPower/internal/recorder"
	"DormPower/internal/scheduler"
	"DormPower/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Info("DormPower starting...")

	// Load config
	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("config validation")
	}
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}

	// Init balance collector
	provider := collector.NewECardProvider(cfg.ECard.BaseURL, cfg.Proxy)
	col := collector.NewCollector(provider, collector.Credentials{
		Account:         cfg.Account.Username,
		Password:        cfg.Account.Password,
		LightingRoom:    cfg.Rooms.Lighting,
		AirConditioning: cfg.Rooms.AirConditioning,
	}, logger)

	m := metrics.New()

	// Init notification channels
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIBase, cfg.Proxy)
	sc := notifier.NewServerChanNotifiers(cfg.ServerChan.Keys, cfg.ServerChan.APIBase, cfg.Proxy)
	dispatcher := notifier.NewDispatcher(sc, tn, m, logger)

	st := store.New(cfg.Storage.DataDir, cfg.Storage.IndexFile, logger)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, dispatcher, st, rec, m, logger)
	sched.TextfilePath = cfg.Metrics.TextfilePath

	if cfg.Schedule.Cron == "" {
		if err := sched.RunOnce(ctx); err != nil {
			rec.Close()
			logger.WithError(err).Fatal("balance check failed")
		}
		logger.Info("DormPower finished")
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		logger.WithError(err).Fatal("register cron task")
	}
	sched.Start()

	if cfg.Schedule.RunOnStart {
		logger.Info("run_on_start enabled, executing balance check now")
		go sched.Trigger()
	}

	logger.WithField("schedule", cfg.Schedule.Cron).Info("DormPower is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	logger.Info("shutdown signal received, stopping...")
	sched.Stop()
	logger.Info("DormPower stopped")
}
