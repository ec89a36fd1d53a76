package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yodaslang/yodas-api/internal/config"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
	"github.com/yodaslang/yodas-api/internal/redact"
	"github.com/yodaslang/yodas-api/internal/service"
	"github.com/yodaslang/yodas-api/internal/store"
)

// application holds the shared dependencies of every subcommand so they
// can be built once and released together.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	dialect sqlstore.Dialect

	setStore     store.SetStore
	termStore    store.TermStore
	linkageStore store.LinkageStore
	userStore    store.UserStore

	termService        service.TermService
	setService         service.SetService
	associationService service.AssociationService
	hierarchyService   *service.HierarchyService
	authService        service.AuthService
}

// loadApplication reads configuration, installs the logger and opens the
// database. The caller owns the returned application and must close it.
func loadApplication(ctx context.Context) (*application, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("opening database",
		slog.String("driver", cfg.Database.Driver),
		slog.String("url", redact.DSN(cfg.Database.URL)))

	db, dialect, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app, err := newApplication(cfg, log, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB, dialect sqlstore.Dialect) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  log,
		db:      db,
		dialect: dialect,
	}

	app.setStore = sqlstore.NewSetStore(db, dialect, log)
	app.termStore = sqlstore.NewTermStore(db, dialect, log)
	app.linkageStore = sqlstore.NewLinkageStore(db, dialect, log)
	app.userStore = sqlstore.NewUserStore(db, dialect, log)

	var err error
	app.termService, err = service.NewTermService(app.termStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create term service: %w", err)
	}

	app.associationService, err = service.NewAssociationService(db, app.setStore, app.termStore, app.linkageStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create association service: %w", err)
	}

	app.setService, err = service.NewSetService(db, app.setStore, app.linkageStore, app.associationService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create set service: %w", err)
	}

	app.hierarchyService, err = service.NewHierarchyService(app.setStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create hierarchy service: %w", err)
	}

	app.authService, err = service.NewAuthService(app.userStore, cfg.Auth.BcryptCost, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	return app, nil
}

func (app *application) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}
