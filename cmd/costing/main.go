package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/production-costing/docs"
	"github.com/tair/production-costing/internal/config"
	"github.com/tair/production-costing/internal/inventory"
	invhttp "github.com/tair/production-costing/internal/inventory/delivery/http"
	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/pricing"
	"github.com/tair/production-costing/internal/production"
	"github.com/tair/production-costing/internal/purchasing"
	"github.com/tair/production-costing/internal/sales"
	salescmd "github.com/tair/production-costing/internal/sales/usecase/command"
	"github.com/tair/production-costing/kafka"
	"github.com/tair/production-costing/pkg/auth"
	"github.com/tair/production-costing/pkg/cache"
	"github.com/tair/production-costing/pkg/logger"
	"github.com/tair/production-costing/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the yaml config file")
	issueToken := flag.String("issue-token", "", "print a bearer token for this username and exit")
	role := flag.String("role", "admin", "role claim for -issue-token")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Name, cfg.IsDevelopment())
	logger.SetLevel(cfg.App.LogLevel)

	authn := auth.NewAuthenticator(cfg.Auth.JWTSecret, 0)
	if *issueToken != "" {
		printToken(authn, *issueToken, *role)
		return
	}

	logger.Logger.Info().
		Str("service", cfg.App.Name).
		Str("environment", cfg.App.Env).
		Str("log_level", cfg.App.LogLevel).
		Str("database_driver", cfg.Database.Driver).
		Msg("Starting costing service")

	tracing.InstallPropagator()
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.App.Name, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	be, err := openBackend(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() { _ = be.close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pricingCache := openCache(ctx, cfg)

	var publisher *kafka.Publisher
	var salePublisher salescmd.SalePublisher
	if cfg.Kafka.Enabled {
		publisher, err = kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher; sale events disabled")
		} else {
			defer publisher.Close()
			salePublisher = publisher
		}
	}

	inv, err := inventory.InitializeModule(be.stock, be.tx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory")
	}
	priced, err := pricing.InitializeModule(be.finals, pricingCache, cfg.Redis.PricingTTL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize pricing")
	}
	prod, err := production.InitializeHTTPHandler(be.subproducts, be.finals, inv.Ledger, be.sales, be.tx, priced.Query)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize production")
	}
	purch, err := purchasing.InitializeModule(be.purchases, inv.Ledger, be.tx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize purchasing")
	}
	sold, err := sales.InitializeHTTPHandler(be.clients, be.sales, be.finals, be.tx, salePublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize sales")
	}

	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{kafka.TopicPurchaseRecorded})
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer; purchase intake is HTTP only")
		} else {
			defer consumer.Close()
			purch.Listener.Register(consumer)
			if err := consumer.Start(ctx); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
			}
		}
	}

	router := mux.NewRouter()
	mwConfig := httpx.DefaultMiddlewareConfig()
	mwConfig.TimeoutDuration = cfg.HTTP.Timeout
	httpx.RegisterMiddlewares(router, mwConfig)

	inv.HTTP.RegisterRoutes(router, authn)
	prod.RegisterRoutes(router, authn)
	priced.HTTP.RegisterRoutes(router)
	purch.HTTP.RegisterRoutes(router, authn)
	sold.RegisterRoutes(router, authn)
	invhttp.RegisterHealthCheck(router, be.pinger)
	invhttp.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           httpx.WrapCORS(router, mwConfig),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Bool("auth", authn.Enabled()).
			Bool("kafka", cfg.Kafka.Enabled).
			Bool("redis", cfg.Redis.Enabled).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func openCache(ctx context.Context, cfg config.Config) cache.Cache {
	if !cfg.Redis.Enabled {
		return cache.NewMemory()
	}
	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Redis unavailable; pricing cache kept in memory")
		return cache.NewMemory()
	}
	return cache.NewRedisCache(client)
}

func printToken(authn *auth.Authenticator, username, role string) {
	if !authn.Enabled() {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret is not configured")
		os.Exit(1)
	}
	token, err := authn.GenerateToken(username, role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
