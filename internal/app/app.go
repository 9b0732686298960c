package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ostapk/minefield-server/internal/config"
	"github.com/ostapk/minefield-server/internal/database"
	"github.com/ostapk/minefield-server/internal/middleware"
)

type App struct {
	log     *logrus.Logger
	cfg     config.Config
	router  *http.ServeMux
	db      *pgxpool.Pool
	cookies *config.Cookies
	jwt     *config.JWT
	ws      *config.WebSocket
}

func New(log *logrus.Logger, cfg config.Config) *App {
	return &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
	}
}

// Start connects to the database, wires the routes and serves until ctx is
// cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	db, err := database.Connect(ctx, a.cfg.Postgres.DbUrl())
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.db = db

	jwt, err := config.NewJWT(a.cfg.Jwt)
	if err != nil {
		return err
	}
	a.jwt = jwt
	a.cookies = config.NewCookies(a.cfg, jwt)
	a.ws = config.NewWebSocket()

	a.loadRoutes()

	server := &http.Server{
		Addr:         a.cfg.Addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(a.cookies),
			middleware.Cors(),
			middleware.Logging(a.log),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithFields(a.cfg.Fields()).Infof("server listening at %s", a.cfg.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
