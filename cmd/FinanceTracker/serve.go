package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		migrate, _ := cmd.Flags().GetBool("migrate")

		log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, cfg, migrate, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
}

func runServer(ctx context.Context, cfg *config.Config, migrate bool, log *logrus.Logger) error {
	if migrate {
		log.Info("Applying migrations")
		if err := database.MigrateUp(cfg.DBConnectionString); err != nil {
			return err
		}
	}

	dbService, err := database.NewDBService(ctx, database.Options{
		ConnectionString: cfg.DBConnectionString,
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetime:  cfg.DBConnMaxLifetime,
		QueryTimeout:     cfg.DBQueryTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer dbService.Close()

	if err := dbService.StartPoolMonitor(cfg.PoolStatsInterval); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	transactionRepo := infrastructure.NewPersonalTransactionRepository(dbService)
	categoryRepo := infrastructure.NewCategoryRepository(dbService)
	summaryRepo := infrastructure.NewSummaryRepository(dbService)
	userRepo := user.NewUserRepository(dbService)

	categoryService := application.NewCategoryService(categoryRepo)
	transactionService := application.NewPersonalTransactionService(transactionRepo, categoryService, cfg.PageSize, log)
	dashboardService := application.NewDashboardService(summaryRepo, transactionRepo, log)
	userService := user.NewUserService(userRepo, log)

	server := NewServer(
		jwtManager,
		dbService,
		user.NewHandler(userService, log),
		interfaces.NewPersonalTransactionHandler(transactionService, interfaces.RespondJSON, interfaces.RespondError, log),
		interfaces.NewCategoryHandler(categoryService, interfaces.RespondJSON, interfaces.RespondError, log),
		interfaces.NewDashboardHandler(dashboardService, interfaces.RespondJSON, interfaces.RespondError, log),
		log,
	)
	server.RegisterRoutes()

	httpServer := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: server.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
