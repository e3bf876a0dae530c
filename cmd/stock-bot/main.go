package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-bot/internal/bot/config"
	delivery "golang-stock-bot/internal/bot/delivery/http"
	_ "golang-stock-bot/internal/bot/docs"
	"golang-stock-bot/internal/bot/repository"
	"golang-stock-bot/internal/bot/service"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/redis"
	"golang-stock-bot/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stock-bot",
	Short: "Posts daily share price moves to a Telegram chat",
	Long: `stock-bot reads ticker symbols from the chat description, fetches the
latest quotes from the configured provider and posts one message per symbol
every weekday after the close.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the scheduler until interrupted",
	Run:   runServe,
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Runs a single update cycle and exits",
	Run:   runOnce,
}

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	updateSvc service.UpdateService
	locker    repository.SlotLocker
	closers   []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	_ = a.log.Sync()
}

func newApp() *app {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	a := &app{cfg: cfg, log: appLogger}

	if cfg.App.TestMode {
		appLogger.Warn("Test mode")
	}

	// Initialize market data provider
	repo, err := repository.NewFromConfig(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize provider", logger.ErrorField(err), logger.StringField("provider", cfg.Provider.Name))
	}

	// Initialize chat client
	var notifier telegram.Notifier
	if cfg.App.TestMode {
		notifier = telegram.NewDummyClient(appLogger)
	} else {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
		}
	}

	// Initialize slot lock
	a.locker = repository.NewNoopSlotLocker()
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		a.closers = append(a.closers, redisClient.Close)
		a.locker = repository.NewRedisSlotLocker(redisClient.Client, cfg.Redis.LockTTL)
	}

	a.updateSvc = service.NewUpdateService(cfg, repo, notifier, appLogger)
	return a
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	defer a.Close()

	a.log.Info("Starting Stock Bot",
		logger.Field("name", a.cfg.App.Name),
		logger.StringField("provider", a.cfg.Provider.Name),
		logger.StringField("time", a.cfg.Schedule.Time))

	schedulerSvc, err := service.NewSchedulerService(a.cfg, a.updateSvc, a.locker, a.log)
	if err != nil {
		a.log.Fatal("Failed to initialize scheduler", logger.ErrorField(err))
	}

	var e *echo.Echo
	if a.cfg.API.Port > 0 {
		e = echo.New()
		e.HideBanner = true
		delivery.NewStatusHandler(schedulerSvc, a.log).RegisterRoutes(e, e.Group("/api/v1"))
		e.GET("/swagger/*", swagger.WrapHandler)

		go func() {
			addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
			a.log.Info("HTTP server starting", logger.Field("address", addr))
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("HTTP server failed to start", logger.ErrorField(err))
				stop() // trigger shutdown
			}
		}()
	}

	// Blocks until the signal context is done
	schedulerSvc.Start(ctx)

	a.log.Info("Shutting down...")

	if e != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Server forced to shutdown", logger.ErrorField(err))
		}
	}

	a.log.Info("Stock Bot exiting")
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	defer a.Close()

	result, err := a.updateSvc.Run(ctx)
	if err != nil {
		a.log.Error("Update failed", logger.ErrorField(err))
		a.Close()
		os.Exit(1)
	}
	a.log.Info("Update done", logger.Field("result", result))
}

//go:generate swag init -d ../../ -g cmd/stock-bot/main.go -o ../../internal/bot/docs

// @title Stock Bot API
// @version 1.0
// @description Liveness and scheduler state of the stock bot.
// @BasePath /
func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, onceCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing stock-bot CLI: %s\n", err)
		os.Exit(1)
	}
}
