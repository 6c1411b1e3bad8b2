// Package server initializes and runs the main application server.
// It loads the signing secret, connects storage, runs migrations, handles
// graceful shutdown, and starts the HTTP server for the auth API.
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

	"github.com/fluxpad/fluxpad/internal/logging"
	"github.com/fluxpad/fluxpad/internal/server/auth"
	"github.com/fluxpad/fluxpad/internal/server/config"
	"github.com/fluxpad/fluxpad/internal/server/httpapi"
	"github.com/fluxpad/fluxpad/internal/server/repositories/repomanager"
	"github.com/fluxpad/fluxpad/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	jwtSecret      []byte
	userService    *services.UserService
	datasetService *services.DatasetService
	queryService   *services.QueryService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	secret, err := auth.LoadOrCreateSecret(c.SecretKey, c.SecretKeyFile)
	if err != nil {
		return nil, fmt.Errorf("secret init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repomanager init error: %w", err)
	}

	us := services.NewUserService(db, m, c, secret)
	ds := services.NewDatasetService(db, m)
	qs := services.NewQueryService(db, m)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		repomanager:    m,
		jwtSecret:      secret,
		userService:    us,
		datasetService: ds,
		queryService:   qs,
	}, nil
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

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.datasetService, app.queryService,
		app.jwtSecret, app.config.AllowedOrigins)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
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
}
