package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"account_search/internal/app/service"
	"account_search/internal/domain/risk"
	"account_search/internal/infrastructure/configloader"
	"account_search/internal/infrastructure/marginfi"
	"account_search/internal/infrastructure/nameservice"
	"account_search/internal/infrastructure/registry"
	"account_search/internal/infrastructure/restapi"
	"account_search/internal/pkg/logger"
	"account_search/internal/pkg/metrics"
	"account_search/internal/pkg/utils"
)

func main() {
	// Bootstrap logger, used until the configured zap logger is up.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Route stdlib slog users (gin dependencies and friends) through zap.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	registryTimeout := time.Duration(cfg.Registry.RequestTimeoutMillis) * time.Millisecond
	registryTTL := time.Duration(cfg.Registry.CacheTTLMinutes) * time.Minute
	groupClient := registry.NewGroupClient(cfg.Registry.GroupsURL, registryTimeout, registryTTL, zapLogger)
	tokenClient := registry.NewTokenClient(cfg.Registry.TokenMetadataURL, cfg.Registry.TokenIconBaseURL,
		registryTimeout, registryTTL, zapLogger)
	zapLogger.Info("Registry clients initialized",
		zap.String("groups", cfg.Registry.GroupsURL),
		zap.String("tokens", cfg.Registry.TokenMetadataURL))

	rpcTimeout := time.Duration(cfg.RPC.RequestTimeoutMillis) * time.Millisecond
	chainClient, err := marginfi.NewClient(cfg.RPC.URL, cfg.Program.LendingProgramID,
		cfg.RPC.RateLimit, cfg.RPC.BurstLimit, rpcTimeout, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize chain client", zap.Error(err))
	}

	resolver := nameservice.NewResolver(cfg.RPC.URL, rpcTimeout, zapLogger)

	dustThreshold, err := decimal.NewFromString(cfg.Engine.DustThresholdUsd)
	if err != nil {
		zapLogger.Fatal("Invalid dust threshold", zap.String("value", cfg.Engine.DustThresholdUsd), zap.Error(err))
	}
	engine := risk.NewEngine(dustThreshold)

	searchService := service.NewSearchService(groupClient, tokenClient, chainClient, engine,
		logger.NewZapAdapter(zapLogger), cfg.Engine.MaxConcurrentGroups)
	zapLogger.Info("SearchService initialized")

	searchHandler := restapi.NewSearchHandler(resolver, searchService, zapLogger)
	gin.SetMode(gin.ReleaseMode)
	router := restapi.SetupRouter(searchHandler, zapLogger)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
