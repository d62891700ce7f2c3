package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on minimal images too

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/infra/backends"
	"birthday_reminder/internal/infra/clock"
	"birthday_reminder/internal/infra/config"
	"birthday_reminder/internal/infra/logger"
	"birthday_reminder/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
)

// Upper bound for a single scheduled run; each remote call has its own REQUEST_TIMEOUT.
const scheduledRunTimeout = 10 * time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("reminder", flag.ContinueOnError)
	dateFlag := flags.String("date", "", "run as if today were this date (YYYY-MM-DD in TIMEZONE); single run only")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}
	// No network call happens before the secrets are known to be present.
	if err := cfg.ValidateJob(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"timezone":      cfg.Timezone,
		"record_store":  cfg.RecordStore,
		"chat_platform": cfg.ChatPlatform,
		"environment":   cfg.Environment,
	}).Info("Configuration loaded")

	location := cfg.Location()
	var clk clock.Clock = clock.NewRealClock()
	if *dateFlag != "" {
		if cfg.Schedule != "" {
			fmt.Println("ERROR: -date cannot be combined with SCHEDULE")
			return 1
		}
		day, err := time.ParseInLocation("2006-01-02", *dateFlag, location)
		if err != nil {
			fmt.Printf("ERROR: invalid -date %q: %v\n", *dateFlag, err)
			return 1
		}
		clk = clock.NewFixedClock(day.Add(12 * time.Hour))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := backends.NewRepository(ctx, cfg)
	if err != nil {
		mainLogger.WithError(err).Error("Could not initialize record store")
		return 1
	}
	defer closeRepo()

	chat, err := backends.NewNotifier(cfg)
	if err != nil {
		mainLogger.WithError(err).Error("Could not initialize chat client")
		return 1
	}

	reminderService := app.NewReminderServiceImpl(repo, chat, clk, location, logger.Component("reminder_service"))

	if cfg.Schedule == "" {
		if _, err := reminderService.RunDaily(ctx); err != nil {
			mainLogger.WithError(err).Error("Daily birthday reminder run failed")
			return 1
		}
		return 0
	}

	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		logger.Component("scheduler"),
		location,
		cfg.Schedule,
		scheduledRunTimeout,
	)
	if err := reminderScheduler.Start(ctx); err != nil {
		mainLogger.WithError(err).Error("Could not start scheduler")
		return 1
	}

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down reminder daemon...")
	reminderScheduler.Stop()
	mainLogger.Info("Reminder daemon shut down gracefully.")
	return 0
}
