package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/filmoteka/watchsync/internal/client/api"
	"github.com/filmoteka/watchsync/internal/client/broadcast"
	"github.com/filmoteka/watchsync/internal/client/connectivity"
	"github.com/filmoteka/watchsync/internal/client/identity"
	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/client/storage/boltdb"
	"github.com/filmoteka/watchsync/internal/client/storage/sqlite"
	clientsync "github.com/filmoteka/watchsync/internal/client/sync"
	"github.com/filmoteka/watchsync/internal/client/watchlist"
	"github.com/filmoteka/watchsync/internal/config"
	"github.com/filmoteka/watchsync/internal/models"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// clientStorage объединяет оба интерфейса хранилища, которые реализуют
// оба бэкенда
type clientStorage interface {
	storage.WatchlistStorage
	storage.MetadataStorage
}

// app держит собранные зависимости для выполнения команд
type app struct {
	cfg       *config.Config
	storage   clientStorage
	bus       broadcast.Broadcaster
	apiClient *api.Client
	syncSvc   clientsync.Service
	trigger   *clientsync.Trigger
	svc       watchlist.Service
	logger    *slog.Logger
}

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "watchsync.yaml", "Path to config file")
	serverURL := flag.String("server", "", "Server URL (overrides config)")
	dbPath := flag.String("db", "", "Path to local database (overrides config)")
	driver := flag.String("driver", "", "Storage driver: bolt or sqlite (overrides config)")
	natsURL := flag.String("nats", "", "NATS URL for cross-context broadcast (overrides config)")
	userID := flag.String("user", "", "User ID (overrides config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Флаги перекрывают конфиг
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *driver != "" {
		cfg.Storage.Driver = *driver
	}
	if *natsURL != "" {
		cfg.NATS.URL = *natsURL
	}
	if *userID != "" {
		cfg.User.ID = *userID
	}
	if cfg.User.ID == "" {
		fmt.Fprintln(os.Stderr, "Error: user id is required (set -user or user.id in config)")
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp собирает все зависимости: хранилище, идентичность реплики,
// API-клиент, broadcaster, движок синхронизации и сервис мутаций.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	var (
		st  clientStorage
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		st, err = sqlite.New(ctx, cfg.Storage.Path)
	default:
		st, err = boltdb.New(ctx, cfg.Storage.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Идентичность реплики загружается один раз и передается дальше
	replicaID, err := identity.Ensure(ctx, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	var bus broadcast.Broadcaster
	if cfg.NATS.URL != "" {
		bus, err = broadcast.NewNATS(cfg.NATS.URL, cfg.User.ID, logger)
		if err != nil {
			// Широковещание не источник истины,
			// без брокера продолжаем в пределах процесса
			logger.Warn("falling back to in-process broadcast", "error", err)
			bus = broadcast.NewInProcess()
		}
	} else {
		bus = broadcast.NewInProcess()
	}

	apiClient := api.NewClient(cfg.Server.URL)
	syncSvc := clientsync.NewService(apiClient, st, st, bus, nil, logger)
	trigger := clientsync.NewTrigger(syncSvc, cfg.User.ID, logger)
	svc := watchlist.NewService(st, bus, trigger, replicaID, logger)

	return &app{
		cfg:       cfg,
		storage:   st,
		bus:       bus,
		apiClient: apiClient,
		syncSvc:   syncSvc,
		trigger:   trigger,
		svc:       svc,
		logger:    logger,
	}, nil
}

func (a *app) close() {
	if err := a.bus.Close(); err != nil {
		a.logger.Error("failed to close broadcaster", "error", err)
	}
	if err := a.storage.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return a.runAdd(ctx, args)
	case "list":
		return a.runList(ctx)
	case "remove":
		return a.runRemove(ctx, args)
	case "watched":
		return a.runWatched(ctx, args)
	case "note":
		return a.runNote(ctx, args)
	case "priority":
		return a.runPriority(ctx, args)
	case "sync":
		return a.runSync(ctx)
	case "status":
		return a.runStatus(ctx)
	case "run":
		return a.runResident(ctx)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	notes := fs.String("notes", "", "Notes for the item")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: add <movie-id> [-notes text]")
	}

	item, err := a.svc.AddItem(ctx, a.cfg.User.ID, fs.Arg(0), *notes)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (id %s)\n", item.MovieID, item.ID)

	a.waitForSync(ctx)
	return nil
}

func (a *app) runList(ctx context.Context) error {
	items, err := a.svc.ListItems(ctx, a.cfg.User.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Watchlist is empty")
		return nil
	}
	for _, item := range items {
		mark := " "
		if item.Watched {
			mark = "x"
		}
		fmt.Printf("[%s] %s  priority=%d  %s\n", mark, item.MovieID, item.Priority, item.Notes)
	}
	return nil
}

func (a *app) runRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: remove <movie-id>")
	}

	item, err := a.storage.GetItemByMovie(ctx, a.cfg.User.ID, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("movie %s is not in the watchlist", args[0])
		}
		return err
	}

	if err := a.svc.RemoveItem(ctx, item.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", args[0])

	a.waitForSync(ctx)
	return nil
}

func (a *app) runWatched(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: watched <movie-id>")
	}

	item, err := a.storage.GetItemByMovie(ctx, a.cfg.User.ID, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("movie %s is not in the watchlist", args[0])
		}
		return err
	}

	watched := !item.Watched
	updated, err := a.svc.UpdateItem(ctx, item.ID, models.ItemUpdate{Watched: &watched})
	if err != nil {
		return err
	}
	if updated.Watched {
		fmt.Printf("Marked %s as watched\n", args[0])
	} else {
		fmt.Printf("Marked %s as unwatched\n", args[0])
	}

	a.waitForSync(ctx)
	return nil
}

func (a *app) runNote(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: note <movie-id> <text>")
	}

	item, err := a.storage.GetItemByMovie(ctx, a.cfg.User.ID, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("movie %s is not in the watchlist", args[0])
		}
		return err
	}

	if _, err := a.svc.UpdateItem(ctx, item.ID, models.ItemUpdate{Notes: &args[1]}); err != nil {
		return err
	}
	fmt.Printf("Updated notes for %s\n", args[0])

	a.waitForSync(ctx)
	return nil
}

func (a *app) runPriority(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: priority <movie-id> <n>")
	}

	priority, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("priority must be an integer: %w", err)
	}

	item, err := a.storage.GetItemByMovie(ctx, a.cfg.User.ID, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("movie %s is not in the watchlist", args[0])
		}
		return err
	}

	if _, err := a.svc.UpdateItem(ctx, item.ID, models.ItemUpdate{Priority: &priority}); err != nil {
		return err
	}
	fmt.Printf("Set priority of %s to %d\n", args[0], priority)

	a.waitForSync(ctx)
	return nil
}

func (a *app) runSync(ctx context.Context) error {
	result, err := a.syncSvc.Reconcile(ctx, a.cfg.User.ID)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Printf("Sync complete: adopted=%d overwritten=%d conflicts=%d pushed=%d drained=%d rejected=%d\n",
		result.Adopted, result.Overwritten, result.Conflicts,
		result.Pushed, result.Drained, result.Rejected)
	return nil
}

func (a *app) runStatus(ctx context.Context) error {
	online := a.apiClient.Ping(ctx) == nil

	pending, err := a.syncSvc.PendingCount(ctx)
	if err != nil {
		return err
	}

	lastSync, err := a.storage.GetLastSyncAt(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Server:       %s\n", a.cfg.Server.URL)
	fmt.Printf("Online:       %v\n", online)
	fmt.Printf("Pending ops:  %d\n", pending)
	if lastSync.IsZero() {
		fmt.Println("Last sync:    never")
	} else {
		fmt.Printf("Last sync:    %s\n", lastSync.Format(time.RFC3339))
	}
	return nil
}

// runResident запускает резидентный режим: монитор связи, подписку на
// broadcast-события и периодическую синхронизацию. Завершается по
// SIGINT/SIGTERM.
func (a *app) runResident(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := connectivity.NewMonitor(func(ctx context.Context) bool {
		return a.apiClient.Ping(ctx) == nil
	}, a.cfg.Sync.ProbeInterval.Duration(), a.logger)
	go monitor.Run(ctx)

	events := a.bus.Subscribe()
	ticker := time.NewTicker(a.cfg.Sync.Interval.Duration())
	defer ticker.Stop()

	// Стартовый проход подберет мутации, накопленные offline
	a.trigger.Request()

	a.logger.Info("watchsync resident mode started", "user_id", a.cfg.User.ID)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("shutting down")
			return nil

		case <-monitor.Online():
			// Возврат в online: сливаем накопленный outbox
			a.trigger.Request()

		case <-ticker.C:
			a.trigger.Request()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case broadcast.EventSyncRequest:
				// Доверяем сигналу только как триггеру, данных он не несет
				a.trigger.Request()
			case broadcast.EventUpdate:
				if ev.Item != nil {
					a.logger.Info("watchlist updated elsewhere", "item_id", ev.Item.ID)
				}
			case broadcast.EventConflicts:
				a.logger.Info("concurrent edits resolved", "count", len(ev.Items))
			}
		}
	}
}

// waitForSync коротко ждет фоновую синхронизацию, чтобы одноразовый
// запуск CLI при живой сети оставил сервер актуальным. Неуспех не
// фатален: мутация уже надежно лежит в outbox.
func (a *app) waitForSync(ctx context.Context) {
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.trigger.Wait(waitCtx); err != nil {
		a.logger.Warn("sync still running, changes remain queued", "error", err)
	}
}

func printVersion() {
	fmt.Printf("watchsync %s\n", Version)
	fmt.Printf("  build date: %s\n", BuildDate)
	fmt.Printf("  git commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`watchsync - offline-first watchlist client

Usage:
  watchsync [flags] <command> [args]

Commands:
  add <movie-id> [-notes text]   Add a movie to the watchlist
  list                           List watchlist items
  remove <movie-id>              Remove a movie from the watchlist
  watched <movie-id>             Toggle watched state
  note <movie-id> <text>         Set notes for a movie
  priority <movie-id> <n>        Set priority for a movie
  sync                           Reconcile with the server now
  status                         Show connectivity and pending operations
  run                            Resident mode: watch, broadcast, periodic sync

Flags:
  -config path   Config file (default watchsync.yaml)
  -server url    Server URL
  -db path       Local database path
  -driver name   Storage driver: bolt or sqlite
  -nats url      NATS URL for cross-context broadcast
  -user id       User ID
  -version       Show version`)
}
