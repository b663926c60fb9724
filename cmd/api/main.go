package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ariefcatur/reservation-calendar/internal/config"
	"github.com/ariefcatur/reservation-calendar/internal/httpx"
	kafkax "github.com/ariefcatur/reservation-calendar/internal/kafka"
	"github.com/ariefcatur/reservation-calendar/internal/logx"
	"github.com/ariefcatur/reservation-calendar/internal/metrics"
	"github.com/ariefcatur/reservation-calendar/internal/migrations"
	"github.com/ariefcatur/reservation-calendar/internal/naver"
	"github.com/ariefcatur/reservation-calendar/internal/poller"
	"github.com/ariefcatur/reservation-calendar/internal/postgres"
	"github.com/ariefcatur/reservation-calendar/internal/redisx"
	"github.com/ariefcatur/reservation-calendar/internal/reservations"
	"github.com/ariefcatur/reservation-calendar/internal/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.New("info").Error("load config", logx.Err(err))
		os.Exit(1)
	}
	log := logx.New(cfg.LogLevel).With(slog.String("service", cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("open store", logx.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	svc := &poller.Service{
		Fetcher: naver.NewClient(
			naver.UserAuth{Aut: cfg.NIDAut, Ses: cfg.NIDSes},
			naver.WithEndpoint(cfg.UpstreamEndpoint),
			naver.WithTimeout(cfg.UpstreamTimeout),
		),
		Store:       store,
		Log:         log,
		PageSize:    cfg.FetchPageSize,
		ServiceName: cfg.ServiceName,
	}
	handler := &httpx.CalendarHandler{
		Store:        store,
		Syncer:       svc,
		Log:          log,
		FetchTimeout: 2 * cfg.UpstreamTimeout,
	}

	// Redis (optional)
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis not reachable, run status may be stale", logx.Err(err))
		}
		runs := &redisx.RunStore{Redis: rdb}
		svc.Runs = runs
		handler.Runs = runs
	}

	// Kafka producer (optional)
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 1024, log)
		prod.Start()
		svc.Publisher = prod
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(reg)

	router := httpx.NewRouter(reg)
	handler.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Info("http listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", logx.Err(err))
			os.Exit(1)
		}
	}()

	// Periodic fetch (optional)
	stopSchedule := func() {}
	if cfg.FetchSchedule != "" {
		c, err := poller.Schedule(cfg.FetchSchedule, svc, 2*cfg.UpstreamTimeout, log)
		if err != nil {
			log.Error("fetch schedule", logx.Err(err))
			os.Exit(1)
		}
		c.Start()
		log.Info("fetch scheduled", slog.String("schedule", cfg.FetchSchedule))
		stopSchedule = func() { <-c.Stop().Done() }
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	stopSchedule()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("http shutdown", logx.Err(err))
	}
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}

// openStore migrates the configured database and returns its Store.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (reservations.Store, func(), error) {
	if _, err := migrate(cfg.StorageDriver, cfg.Target(), log); err != nil {
		return nil, nil, err
	}
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return &reservations.PGRepo{DB: pool}, pool.Close, nil
	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return &reservations.SQLiteRepo{DB: db}, func() { _ = db.Close() }, nil
	}
}

func migrate(driver, target string, log *slog.Logger) (bool, error) {
	applied, err := migrations.Up(driver, target)
	if err != nil {
		return false, err
	}
	if applied {
		log.Info("migrations applied", slog.String("driver", driver))
	}
	return applied, nil
}
