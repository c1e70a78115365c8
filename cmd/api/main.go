package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"pagecore/internal/config"
	"pagecore/internal/core/sweep"
	"pagecore/internal/cursorstore"
	httpx "pagecore/internal/http"
	"pagecore/internal/pagination"
	"pagecore/internal/services/listing"
	tenantsvc "pagecore/internal/services/tenant"
	"pagecore/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	records := postgres.NewRecordRepository(pool)
	tenants := postgres.NewTenantRepository(pool)

	// Cursor store: redis when configured, in-process otherwise
	store := openCursorStore(ctx, cfg)
	defer store.Close()

	codec, err := pagination.NewCodec(pagination.CodecOptions{
		Key:   cfg.Sec.AESKey,
		TTL:   cfg.Page.CursorTTL,
		Store: store,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token codec init failed")
	}

	listingService := listing.NewService(listing.Options{
		Codec:           codec,
		Lister:          records,
		Records:         records,
		DefaultPageSize: cfg.Page.DefaultSize,
		MaxPageSize:     cfg.Page.MaxSize,
		ListerTimeout:   cfg.Page.ListerTimeout,
	})
	tenantService := tenantsvc.NewService(tenants)

	// Start cursor expiry sweep
	worker := sweep.NewWorker(store)
	go worker.Run(ctx)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:         cfg,
		TenantService:  tenantService,
		ListingService: listingService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("pagecore API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}

func openCursorStore(ctx context.Context, cfg config.Cfg) cursorstore.Store {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("cursor store: in-memory")
		return cursorstore.NewMemory(cfg.Page.CursorTTL, nil)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connect fail")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("cursor store: redis")
	return cursorstore.NewRedis(client, cfg.Page.CursorTTL)
}
