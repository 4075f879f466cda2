package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_residents/internal/adapters/contacts"
	server "hotel_residents/internal/adapters/http_server"
	"hotel_residents/internal/adapters/observability"
	redisad "hotel_residents/internal/adapters/redis"
	"hotel_residents/internal/app"
	"hotel_residents/internal/domain"
	"hotel_residents/internal/hotel"
	"hotel_residents/internal/shared"
	mysqlrepo "hotel_residents/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	if cfg.DotEnv {
		log.Debug().Msg("loaded .env")
	}
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, closeDir := contactDirectory(ctx, cfg)
	defer closeDir()

	// optional contact cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("contact cache enabled")
	}

	// the one hotel instance, owned here and handed to the handlers
	model := hotel.New()
	if cfg.SeedFile != "" {
		seed, err := hotel.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load seed failed")
		}
		if err := model.Apply(ctx, seed, dir); err != nil {
			log.Fatal().Err(err).Msg("apply seed failed")
		}
		st := model.Stats()
		log.Info().Int("rooms", st.Rooms).Int("residents", st.Residents).Msg("seed applied")
	}

	cs := app.NewContactService(dir, cache, cfg.CacheTTL)
	overview := app.NewOverviewService(model, cs, cfg.DumpWorkers)

	// metrics
	reg := observability.InitRegistry()
	observability.RegisterHotelStats(reg, model.Stats)
	observability.Serve(cfg.MetricsAddr, reg)

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Hotel: model, Contacts: cs, Overview: overview})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("contacts", cfg.ContactsBackend).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}

// contactDirectory builds the configured backend and a func releasing it.
func contactDirectory(ctx context.Context, cfg shared.Config) (domain.ContactDirectory, func()) {
	switch cfg.ContactsBackend {
	case shared.BackendHTTP:
		client, err := contacts.New(cfg.ContactsBaseURL, cfg.ContactsAPIKey, cfg.ContactsRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize contacts client")
		}
		log.Info().Str("base", cfg.ContactsBaseURL).Msg("using remote contacts service")
		return client, func() {}

	case shared.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		if err := mysqlrepo.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("contacts migration failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }

	case shared.BackendMemory:
		log.Info().Msg("using in-memory contacts")
		return contacts.NewMemory(), func() {}

	default:
		log.Fatal().Str("backend", cfg.ContactsBackend).Msg("unknown CONTACTS_BACKEND")
		return nil, nil
	}
}
