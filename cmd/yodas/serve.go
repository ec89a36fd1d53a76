package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yodaslang/yodas-api/internal/api"
	"github.com/yodaslang/yodas-api/internal/api/middleware"
	"github.com/yodaslang/yodas-api/internal/maintenance"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
	"golang.org/x/sync/errgroup"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM. Pending migrations are applied
first unless --migrate=false. The orphan sweeper runs alongside the server
when maintenance.orphan_sweep_enabled is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := loadApplication(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	if serveMigrate {
		if err := sqlstore.Migrate(ctx, app.db, app.dialect, sqlstore.MigrateUp, app.logger); err != nil {
			return err
		}
	}

	return app.serve(ctx)
}

// serve runs the HTTP server, and the sweeper when enabled, until ctx is
// canceled or one of them fails.
func (app *application) serve(ctx context.Context) error {
	sessions := middleware.NewSessionManager(app.db, app.dialect, app.config.Auth)
	defer sessions.Close()

	router := api.NewRouter(api.RouterConfig{
		Terms:          app.termService,
		Sets:           app.setService,
		Associations:   app.associationService,
		Hierarchy:      app.hierarchyService,
		Auth:           app.authService,
		Sessions:       sessions,
		AuthEnabled:    app.config.Auth.Enabled,
		AllowedOrigins: app.config.Server.AllowedOrigins,
		QueryTimeout:   app.config.Database.QueryTimeout,
		Logger:         app.logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if app.config.Maintenance.OrphanSweepEnabled {
		sweeper, err := maintenance.NewOrphanSweeper(
			app.linkageStore,
			app.config.Maintenance.OrphanSweepSchedule,
			app.logger.With(slog.String("component", "orphan_sweeper")),
		)
		if err != nil {
			return fmt.Errorf("failed to create orphan sweeper: %w", err)
		}
		eg.Go(func() error {
			return sweeper.Run(egCtx, app.config.Server.ShutdownTimeout)
		})
	}

	if err := eg.Wait(); err != nil {
		app.logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}

	app.logger.Info("server shutdown completed")
	return nil
}
