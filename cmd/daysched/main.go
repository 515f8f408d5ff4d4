// Command daysched runs the schedule daemon: the HTTP API, the reminder
// scanner, and the desktop notification pipeline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandeepkv93/daysched/internal/config"
	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/notify"
	"github.com/sandeepkv93/daysched/internal/registry"
	"github.com/sandeepkv93/daysched/internal/scheduler"
	"github.com/sandeepkv93/daysched/internal/server"
	"github.com/sandeepkv93/daysched/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daysched failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		listenAddr = flag.String("listen", "", "listen address (overrides config)")
		dbPath     = flag.String("db", "", "sqlite database path (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	log := newLogger(cfg.LogLevel)

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New(store, log)
	if err := ensureTodaySchedule(ctx, store); err != nil {
		return err
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	scanner := scheduler.NewScanner(store, engine, log, scheduler.ScannerConfig{
		DefaultLead: cfg.ReminderLeadMinutes,
		Interval:    cfg.ScanInterval(),
	})
	go scanner.Run(ctx)

	var sink notify.Notifier = notify.Noop{}
	if cfg.DesktopNotifications {
		player := notify.NewSoundPlayer(cfg.SoundDir, cfg.SoundWorkers, cfg.SoundQueue, log)
		go player.Run(ctx)
		sink = notify.Desktop{Player: player}
	}
	go notify.Dispatch(ctx, engine.C(), sink, log)

	handler := server.New(reg, log)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.Routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureTodaySchedule creates today's (possibly empty) schedule document so
// clients always find a day to render on first launch.
func ensureTodaySchedule(ctx context.Context, store storage.Store) error {
	today := time.Now().Format(model.DateLayout)
	sched, err := store.LoadDay(ctx, today)
	if err != nil {
		return err
	}
	if len(sched) > 0 {
		return nil
	}
	return store.SaveDay(ctx, today, model.Schedule{})
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
