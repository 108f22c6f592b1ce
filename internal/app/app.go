package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-daily/internal/config"
	"github.com/vancomm/minesweeper-daily/internal/daily"
	"github.com/vancomm/minesweeper-daily/internal/database"
	"github.com/vancomm/minesweeper-daily/internal/middleware"
	"github.com/vancomm/minesweeper-daily/internal/store"
	"github.com/vancomm/minesweeper-daily/migrations"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log     logrus.FieldLogger
	cfg     *config.Config
	router  *http.ServeMux
	store   store.Store
	deriver *daily.Deriver
	ws      *config.WebSocket
	jwt     *config.JWT
}

// New builds the session store and every dependency the routes need. The
// caller owns the returned App and must call Close.
func New(ctx context.Context, log logrus.FieldLogger, cfg *config.Config) (*App, error) {
	s, err := openStore(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:     log,
		cfg:     cfg,
		router:  http.NewServeMux(),
		store:   s,
		deriver: daily.NewDeriver(cfg.Daily.Salt),
		ws:      config.NewWebSocket(cfg.WebSocket, cfg.AllowedOrigins),
	}

	if a.deriver.DefaultSalt() {
		log.Warn("daily puzzles use the built-in salt, set DAILY_SEED_SALT to make them unpredictable")
	}

	if cfg.Development && cfg.JWT.Configured() {
		a.jwt, err = config.NewJWT(cfg.JWT)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("unable to load jwt keys: %w", err)
		}
	}

	a.loadRoutes()

	return a, nil
}

func openStore(ctx context.Context, log logrus.FieldLogger, cfg *config.Config) (store.Store, error) {
	ttl := cfg.Session.TTL.Duration
	switch cfg.Session.Store {
	case config.StorePostgres:
		pool, err := database.ConnectAndMigrate(ctx, cfg.Database, migrations.FS)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		return store.NewPostgres(pool, ttl, log), nil
	default:
		return store.NewMemory(cfg.Session.Capacity, ttl, log), nil
	}
}

// Handler is the router wrapped in the shared middleware.
func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := strings.TrimRight(a.cfg.BasePath, "/"); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Cors(a.cfg.AllowedOrigins),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        a.cfg.Addr,
		Handler:     a.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(sCtx)
	})

	if p, ok := a.store.(store.Purger); ok && a.cfg.Session.PurgeInterval.Duration > 0 {
		g.Go(func() error {
			a.purgeLoop(ctx, p, a.cfg.Session.PurgeInterval.Duration)
			return nil
		})
	}

	return g.Wait()
}

func (a *App) purgeLoop(ctx context.Context, p store.Purger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.Purge(ctx); err != nil && ctx.Err() == nil {
				a.log.WithError(err).Error("unable to purge expired sessions")
			}
		}
	}
}

func (a *App) Close() {
	a.store.Close()
}
