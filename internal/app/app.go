package app

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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "weddinginvite/docs"
	"weddinginvite/internal/config"
	"weddinginvite/internal/countdown"
	"weddinginvite/internal/handlers"
	"weddinginvite/internal/pdf"
	"weddinginvite/internal/routes"
	"weddinginvite/internal/rsvp"
	"weddinginvite/internal/services"
	"weddinginvite/internal/utils"
	"weddinginvite/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg        *config.Config
	log        *zap.Logger
	router     *gin.Engine
	rsvp       *services.RSVPService
	httpServer *http.Server
}

// Run loads configuration from configPath and serves until SIGINT/SIGTERM.
func Run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	a, err := New(cfg, log)
	if err != nil {
		return err
	}
	return a.Run()
}

// New wires every component from an already validated config.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	target, err := cfg.TargetTime()
	if err != nil {
		return nil, err
	}

	// === Countdown ===
	engine, err := countdown.New(target, countdown.WithInterval(cfg.TickInterval()))
	if err != nil {
		return nil, err
	}

	// === RSVP ===
	gateway := utils.NewConfirmClientWithOptions(
		cfg.RSVP.Endpoint,
		cfg.RSVP.Mode,
		cfg.RSVPTimeout(),
		cfg.RSVP.DryRun,
		log,
	)
	if gateway.DryRun || gateway.Endpoint == "" {
		log.Warn("rsvp endpoint not configured, confirmations run in dry-run mode")
	}
	rsvpLog := logger.WithComponent(log, "rsvp")
	client := rsvp.NewClient(gateway,
		rsvp.WithBurstDelay(cfg.BurstDelay()),
		rsvp.WithObserver(func(code string, s rsvp.State) {
			rsvpLog.Debug("state", zap.String("code", code), zap.Stringer("state", s))
		}),
	)

	var passes *services.PassService
	if cfg.Pass.Enabled {
		passes = services.NewPassService(cfg.Pass.Secret, target)
	}

	rsvpService := services.NewRSVPService(client, passes, cfg.Pass.BaseURL, log, notifiers(cfg, log)...)

	// === Handlers ===
	countdownHandler := handlers.NewCountdownHandler(engine)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService)
	invitationHandler := handlers.NewInvitationHandler(cfg.Wedding)
	passHandler := handlers.NewPassHandler(passes, pdf.NewPassGenerator(cfg.Pass.FontPath), cfg.Wedding)

	// === Gin ===
	if cfg.Log.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.RecoveryMiddleware(log))
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, countdownHandler, rsvpHandler, invitationHandler, passHandler)

	return &App{
		cfg:    cfg,
		log:    log,
		router: router,
		rsvp:   rsvpService,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (a *App) Handler() http.Handler { return a.router }

// Run serves HTTP until a shutdown signal or a server error.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.log.Info("Starting HTTP server", zap.String("address", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case runErr = <-errChan:
		a.log.Error("Server error, initiating shutdown", zap.Error(runErr))
	case sig := <-quit:
		a.log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// open SSE streams end with their request context
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("HTTP server shutdown error", zap.Error(err))
		if runErr == nil {
			runErr = fmt.Errorf("http server shutdown: %w", err)
		}
	}
	a.rsvp.Wait()
	a.log.Info("Shutdown complete")
	return runErr
}

// notifiers returns the couple's configured notification channels.
// A channel that fails to initialise is logged and skipped.
func notifiers(cfg *config.Config, log *zap.Logger) []services.Notifier {
	var out []services.Notifier

	if cfg.Email.SMTPHost != "" {
		out = append(out, services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.NotifyEmail,
			cfg.Wedding.Couple,
		))
	}

	if cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
		if err != nil {
			log.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			out = append(out, tg)
		}
	}
	return out
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
