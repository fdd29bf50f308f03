// Package server initializes and runs the gophauth server: it opens the
// credential store, applies migrations, and serves the HTTP and gRPC APIs
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/rest"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

// runner is a server that serves until its context is cancelled.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	servers     map[string]runner
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)

	app := &App{config: c, logger: logger, db: db, userService: us}
	app.servers = map[string]runner{
		"http": rest.NewHTTPServer(c.HTTPAddr, logger, us, c.SecretKey, c.CORSAllowedOrigins),
		"grpc": gs.NewGRPCServer(c.GRPCAddr, logger, us, c.SecretKey),
	}

	return app, nil
}

// notifyContext is replaced in tests.
var notifyContext = signal.NotifyContext

// withSignals returns a context cancelled on SIGINT, SIGTERM or SIGQUIT.
// The returned stop func releases the signal registration.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return notifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// startServer runs one server; a failure stops the whole app.
func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, stop := withSignals(ctx)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	for name, s := range app.servers {
		name, s := name, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startServer(ctx, cancelFunc, name, s)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
