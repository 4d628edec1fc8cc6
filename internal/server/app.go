// Package server initializes and runs the account service. It wires the
// Postgres repositories, the token manager, the authentication schemes and
// the HTTP server, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mlukins/accountd/internal/logging"
	"github.com/mlukins/accountd/internal/server/accounts"
	"github.com/mlukins/accountd/internal/server/auth"
	"github.com/mlukins/accountd/internal/server/config"
	"github.com/mlukins/accountd/internal/server/httpapi"
	sharedb "github.com/mlukins/accountd/internal/server/shared/db"
	"github.com/mlukins/accountd/internal/server/tokens"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rm     sharedb.RepositoryManager
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sharedb.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := sharedb.NewPostgresRepositoryManager()

	tm := tokens.NewManager(db, rm.Tokens, rm.Users)
	svc := accounts.NewService(db, rm, tm, cfg)

	bearer := auth.NewBearerScheme(tm)
	basic := auth.NewBasicScheme(rm.Users(db))

	handlers := httpapi.NewHandlers(
		svc,
		auth.NewResolver(bearer),
		auth.NewResolver(bearer, basic),
		basic,
		cfg,
	)

	server := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, handlers, cfg.ShutdownTimeout)

	return &App{config: cfg, logger: logger, db: db, rm: rm, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}
