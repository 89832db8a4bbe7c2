package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"casino-bot-backend/internal/bonus"
	"casino-bot-backend/internal/config"
	"casino-bot-backend/internal/events"
	"casino-bot-backend/internal/games"
	"casino-bot-backend/internal/handlers"
	"casino-bot-backend/internal/jackpot"
	"casino-bot-backend/internal/ledger"
	"casino-bot-backend/internal/limiter"
	"casino-bot-backend/internal/logging"
	"casino-bot-backend/internal/middleware"
	"casino-bot-backend/internal/services"
	"casino-bot-backend/internal/store"

	authsvc "casino-bot-backend/internal/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	var cfg *config.Config
	var err error
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	logger := logging.New(cfg.Logging)
	logger.Info().Str("environment", cfg.Environment).Msg("starting casino bot backend")

	st, err := store.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer st.Close()

	creditLedger := ledger.New(st, logger)
	rateLimiter := limiter.New(st, logger)
	jackpotPool := jackpot.New(st, cfg.Economy.JackpotContributionRate, logger)
	bonusTracker := bonus.New(st, creditLedger, cfg.Economy.DailyBonusAmount, logger)

	catalog := games.NewCatalog(cfg.Games)
	engine := games.NewEngine()

	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.SettlementTopic, logger)
	defer producer.Close()

	hub := handlers.NewHub(logger)

	session := services.NewGameSession(services.Deps{
		Catalog:     catalog,
		Engine:      engine,
		Limiter:     rateLimiter,
		Ledger:      creditLedger,
		Jackpot:     jackpotPool,
		Bonus:       bonusTracker,
		Store:       st,
		Producer:    producer,
		Broadcaster: hub,
		Economy:     cfg.Economy,
	}, logger)

	tokens := authsvc.NewTokenService(cfg.JWT)
	authHandler := handlers.NewAuthHandler(tokens, cfg.JWT.FrontendKey, logger)
	gameHandler := handlers.NewGameHandler(session, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/auth/token", authHandler.IssueToken)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/ws", hub.HandleWebSocket)

		gamesGroup := protected.Group("/games")
		{
			gamesGroup.GET("", gameHandler.GetCatalog)
			gamesGroup.POST("/play", gameHandler.Play)
			gamesGroup.GET("/balance", gameHandler.GetBalance)
			gamesGroup.GET("/history", gameHandler.GetHistory)
		}

		protected.POST("/bonus/daily", gameHandler.ClaimDailyBonus)
		protected.GET("/jackpot", gameHandler.GetJackpot)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens))
	{
		admin.POST("/jackpot/drain", gameHandler.DrainJackpot)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
