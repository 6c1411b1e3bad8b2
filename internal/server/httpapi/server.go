// Package httpapi binds the auth and dataset services to network-reachable
// HTTP/JSON operations: routing, CORS, bearer authentication, and the
// translation of service errors into client-visible status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fluxpad/fluxpad/internal/logging"
	"github.com/fluxpad/fluxpad/internal/server/models"
	"github.com/fluxpad/fluxpad/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type userSvc interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshAccessToken(refreshToken string) (string, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	AccessTokenTTL() time.Duration
}

type datasetSvc interface {
	Create(ctx context.Context, dataset *models.Dataset) (*models.Dataset, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Dataset, error)
	GetByID(ctx context.Context, userID, id string) (*models.Dataset, error)
}

type querySvc interface {
	Record(ctx context.Context, record *models.QueryRecord) (*models.QueryRecord, error)
	History(ctx context.Context, userID string) ([]*models.QueryRecord, error)
}

type Server struct {
	address        string
	logger         logging.Logger
	users          userSvc
	datasets       datasetSvc
	queries        querySvc
	jwtSecret      []byte
	allowedOrigins []string
}

func NewServer(addr string, l logging.Logger, us *services.UserService, ds *services.DatasetService, qs *services.QueryService, jwtSecret []byte, allowedOrigins []string) (*Server, error) {
	return &Server{
		address:        addr,
		logger:         l.With("module", "http_server"),
		users:          us,
		datasets:       ds,
		queries:        qs,
		jwtSecret:      jwtSecret,
		allowedOrigins: allowedOrigins,
	}, nil
}

// Routes assembles the chi router. Cross-origin access is allow-listed by
// origin; protected routes sit behind the bearer middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/ping", s.handlePing)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.accessTokenMiddleware)
			r.Get("/me", s.handleMe)
			r.Delete("/delete", s.handleDelete)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.accessTokenMiddleware)
		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", s.handleListDatasets)
			r.Post("/", s.handleCreateDataset)
			r.Get("/{id}", s.handleGetDataset)
		})
		r.Route("/queries", func(r chi.Router) {
			r.Get("/", s.handleQueryHistory)
			r.Post("/", s.handleRecordQuery)
		})
	})

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
