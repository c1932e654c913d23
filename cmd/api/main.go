package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-flightstats/internal/aggregator"
	"backend-flightstats/internal/config"
	"backend-flightstats/internal/db"
	"backend-flightstats/internal/eventsource"
	"backend-flightstats/internal/server"
	"backend-flightstats/internal/stats"
	"backend-flightstats/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	var pg *pgxpool.Pool
	if cfg.StoreBackend == "postgres" {
		var err error
		pg, err = deps.connectPostgres(cfg)
		if err != nil {
			log.Printf("postgres connection failed: %v", err)
		}
	}

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// newStore picks the statistics backend from configuration, falling back to
// the file store when the requested backend is unavailable.
func newStore(cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client) stats.Store {
	switch cfg.StoreBackend {
	case "postgres":
		if pg != nil {
			return stats.NewPostgresStore(pg)
		}
		log.Printf("postgres store requested but unavailable, using file store")
	case "redis":
		if rdb != nil {
			return stats.NewRedisStore(rdb)
		}
		log.Printf("redis store requested but unavailable, using file store")
	}
	return stats.NewFileStore(cfg.StatsFile)
}

// Run wires the service together, starts the aggregation scheduler and the
// HTTP listener, and waits for termination.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	store := newStore(cfg, pg, rdb)

	var hub *stream.Hub
	var pub aggregator.Publisher
	if rdb != nil {
		hub = stream.NewHub(rdb)
		pub = hub
	}

	agg := aggregator.New(store, eventsource.NewClient(cfg), pub)
	sched := aggregator.NewScheduler(agg, cfg.AggregationInterval)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.NewServer(cfg, store, hub)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
