package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/auth"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/config"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/mailer"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/messaging"
	pgRepo "github.com/SAHICA-Code/NovaBank/internal/infrastructure/persistence/postgres"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/scheduler"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/spreadsheet"
	"github.com/SAHICA-Code/NovaBank/internal/kafka"
	"github.com/SAHICA-Code/NovaBank/internal/observability"
	"github.com/SAHICA-Code/NovaBank/internal/postgres"
	"github.com/SAHICA-Code/NovaBank/internal/presentation/rest"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	logger.Info("starting ledger service",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	pgCfg := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := postgres.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Observability ------------------------------------------------------
	metrics, err := observability.InitMetrics("novabank")
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// --- Messaging ----------------------------------------------------------
	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, metrics, logger)

	// --- Auth ---------------------------------------------------------------
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	}
	if cfg.JWT.PrivateKeyPath != "" {
		key, err := auth.LoadKeyFromFile(cfg.JWT.PrivateKeyPath)
		if err != nil {
			logger.Error("failed to load private key", "error", err)
			os.Exit(1)
		}
		jwtCfg.PrivateKeyPEM = string(key)
	}
	if cfg.JWT.PublicKeyPath != "" {
		key, err := auth.LoadKeyFromFile(cfg.JWT.PublicKeyPath)
		if err != nil {
			logger.Error("failed to load public key", "error", err)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(key)
	}
	jwtService, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to init jwt service", "error", err)
		os.Exit(1)
	}

	// --- Infrastructure adapters --------------------------------------------
	loanRepo := pgRepo.NewLoanRepo(pool)
	installmentRepo := pgRepo.NewInstallmentRepo(pool)
	clientRepo := pgRepo.NewClientRepo(pool)
	userRepo := pgRepo.NewUserRepo(pool)
	tokenRepo := pgRepo.NewResetTokenRepo(pool)
	trackerRepo := pgRepo.NewTrackerLoanRepo(pool)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, logger)

	waterfall := model.Waterfall{TrackPartial: cfg.TrackPartialPayments}

	// --- Use cases ----------------------------------------------------------
	registerUC := usecase.NewRegisterUserUseCase(userRepo, jwtService)
	loginUC := usecase.NewLoginUseCase(userRepo, jwtService)
	changePasswordUC := usecase.NewChangePasswordUseCase(userRepo)
	forgotPasswordUC := usecase.NewForgotPasswordUseCase(userRepo, tokenRepo, smtpMailer, cfg.ResetURL)
	resetPasswordUC := usecase.NewResetPasswordUseCase(userRepo, tokenRepo)
	deleteAccountUC := usecase.NewDeleteAccountUseCase(userRepo)

	createClientUC := usecase.NewCreateClientUseCase(clientRepo, publisher)
	updateClientUC := usecase.NewUpdateClientUseCase(clientRepo)
	getClientUC := usecase.NewGetClientUseCase(clientRepo)
	listClientsUC := usecase.NewListClientsUseCase(clientRepo)
	deleteClientUC := usecase.NewDeleteClientUseCase(clientRepo, loanRepo)

	createLoanUC := usecase.NewCreateLoanUseCase(loanRepo, clientRepo, publisher)
	updateLoanUC := usecase.NewUpdateLoanUseCase(loanRepo, clientRepo, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	listLoansUC := usecase.NewListLoansUseCase(loanRepo)
	deleteLoanUC := usecase.NewDeleteLoanUseCase(loanRepo, publisher)
	listInstallmentsUC := usecase.NewListInstallmentsUseCase(loanRepo, installmentRepo)

	applyPaymentUC := usecase.NewApplyPaymentUseCase(installmentRepo, loanRepo, publisher, waterfall)
	markPaidUC := usecase.NewMarkInstallmentPaidUseCase(installmentRepo, loanRepo, publisher)
	listPaymentsUC := usecase.NewListPaymentsUseCase(installmentRepo)

	createTrackerUC := usecase.NewCreateTrackerLoanUseCase(trackerRepo, publisher)
	listTrackerUC := usecase.NewListTrackerLoansUseCase(trackerRepo)
	markTrackerPaidUC := usecase.NewMarkTrackerInstallmentPaidUseCase(trackerRepo)

	dashboardUC := usecase.NewGetDashboardUseCase(loanRepo, installmentRepo)
	exportUC := usecase.NewExportWorkbookUseCase(userRepo, loanRepo, clientRepo, installmentRepo)
	importUC := usecase.NewImportWorkbookUseCase(clientRepo, loanRepo, publisher)

	// --- HTTP server --------------------------------------------------------
	handlers := rest.Handlers{
		Auth:      rest.NewAuthHandler(registerUC, loginUC, changePasswordUC, forgotPasswordUC, resetPasswordUC, deleteAccountUC, logger),
		Clients:   rest.NewClientHandler(createClientUC, updateClientUC, getClientUC, listClientsUC, deleteClientUC, logger),
		Loans:     rest.NewLoanHandler(createLoanUC, updateLoanUC, getLoanUC, listLoansUC, deleteLoanUC, listInstallmentsUC, logger),
		Payments:  rest.NewPaymentHandler(applyPaymentUC, markPaidUC, listPaymentsUC, logger),
		Tracker:   rest.NewTrackerHandler(createTrackerUC, listTrackerUC, markTrackerPaidUC, logger),
		Portfolio: rest.NewPortfolioHandler(dashboardUC, exportUC, importUC, spreadsheet.Codec{}, logger),
		Ready: func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		},
	}

	mux := http.NewServeMux()
	rest.RegisterRoutes(mux, handlers)

	var handler http.Handler = mux
	handler = auth.Middleware(jwtService, rest.PublicPaths())(handler)
	handler = rest.RateLimitMiddleware(rest.NewRateLimiter(100))(handler)
	handler = rest.LoggingMiddleware(logger)(handler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Metrics server -----------------------------------------------------
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler)
	metricsServer := &http.Server{Addr: cfg.MetricsAddr(), Handler: metricsMux}

	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr())
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// --- Overdue sweep ------------------------------------------------------
	sweeper := scheduler.NewOverdueSweeper(installmentRepo, publisher, metrics, logger)
	if err := sweeper.Start(cfg.OverdueSweepSchedule); err != nil {
		logger.Error("failed to schedule overdue sweep", "error", err)
		os.Exit(1)
	}

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("ledger service stopped")
}
