// Package cli is a small interactive shell standing in for the mobile screen
// layer. It wires the stores, the auth controller, and the profile aggregator
// together and drives them from a terminal.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/proyectoforocine/forocore/internal/auth"
	"github.com/proyectoforocine/forocore/internal/config"
	"github.com/proyectoforocine/forocore/internal/logging"
	"github.com/proyectoforocine/forocore/internal/profile"
	"github.com/proyectoforocine/forocore/internal/repository"
	"github.com/proyectoforocine/forocore/internal/repositories/session"
	"github.com/proyectoforocine/forocore/internal/watch"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	forum    *repository.Forum
	sessions session.Repository
	ctrl     *auth.Controller
	agg      *profile.Aggregator
	reader   *bufio.Reader

	// profileCancel tears down the aggregator subscriptions of the current
	// login; replaced on each successful login.
	profileCancel context.CancelFunc
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := repository.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	verifier, err := auth.NewVerifier(cfg.CredentialScheme, cfg.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tracker := watch.NewTracker()
	forum := repository.NewForum(db, tracker)
	sessions := session.NewSQLiteRepository(db, tracker)
	ctrl := auth.NewController(ctx, forum, sessions, verifier, log)
	agg := profile.NewAggregator(forum, log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		forum:    forum,
		sessions: sessions,
		ctrl:     ctrl,
		agg:      agg,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.profileCancel != nil {
		a.profileCancel()
	}
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.CurrentUserID().Get() != nil
}

// startProfile begins following the given user's profile, replacing any
// previous subscription.
func (a *App) startProfile(ctx context.Context, userID int64) {
	if a.profileCancel != nil {
		a.profileCancel()
	}
	pctx, cancel := context.WithCancel(ctx)
	a.profileCancel = cancel
	a.agg.Load(pctx, userID)
}
