package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fluxpad/fluxpad/internal/client/client"
	"github.com/fluxpad/fluxpad/internal/client/config"
	"github.com/fluxpad/fluxpad/internal/client/guard"
	"github.com/fluxpad/fluxpad/internal/client/session"
	"github.com/fluxpad/fluxpad/internal/filex"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	api    client.Client
	guard  *guard.Guard
	reader *bufio.Reader

	// deleteInFlight blocks a second delete confirmation while one
	// request is still running.
	deleteInFlight bool
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	dbPath := c.SessionDBPath
	if filepath.Dir(dbPath) == "." {
		// Bare file names go into a dedicated subdirectory so the
		// session database does not litter the working directory.
		dir, err := filex.EnsureSubDir(".fluxpad")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := session.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing session database: %s", err.Error())
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	api := client.NewHTTPClient(c.ServerEndpointURL, c.RequestTimeout, store)

	if err := api.RestoreSession(ctx); err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    api,
		guard:  guard.New(api),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.guard.State() == guard.StateAuthenticated
}
