package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/config"
	"github.com/samterminal/samclient/internal/client/imagecache"
	"github.com/samterminal/samclient/internal/client/services"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/client/store"
	"github.com/samterminal/samclient/internal/logging"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	game   services.GameService
	admin  services.AdminService
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	closers []func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(os.Stderr, cfg.LogLevel)

	db, err := store.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	sessions := session.NewStore(db, cfg.SessionPassphrase)

	gw := client.NewHTTPClient(cfg.APIBase,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)

	loader, err := newImageLoader(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	cache := imagecache.New(loader, imagecache.WithLogger(log))

	auth := services.NewAuthService(gw, sessions, log)
	return &App{
		config:  cfg,
		auth:    auth,
		game:    services.NewGameService(gw, auth, sessions, cache, cfg.PreloadParallelism, log),
		admin:   services.NewAdminService(gw, gw, auth),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []func() error{db.Close},
	}, nil
}

// newImageLoader fetches over HTTP, adding s3:// support when an object
// store is configured.
func newImageLoader(ctx context.Context, cfg *config.Config) (imagecache.Loader, error) {
	httpLoader := imagecache.NewHTTPLoader(nil)
	if !cfg.S3Enabled() {
		return httpLoader, nil
	}

	s3, err := imagecache.NewS3Fetcher(ctx, imagecache.S3Options{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 image store: %w", err)
	}
	return &imagecache.SchemeLoader{S3: s3, Fallback: httpLoader}, nil
}

// Run resumes a stored session if there is one and then serves the REPL
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "shutdown", "error", err)
		}
	}()

	fmt.Fprintf(a.out, "SAM terminal connected to %s (type 'help' for commands)\n", a.config.APIBase)

	a.resume(ctx)

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// resume greets a returning user and re-enters the game. It reports
// false when there is no usable stored session.
func (a *App) resume(ctx context.Context) bool {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return false
	}

	msg := fmt.Sprintf("Welcome back, %s.", s.Username)
	if at, err := a.auth.SessionSavedAt(ctx); err == nil {
		msg = fmt.Sprintf("Welcome back, %s (session from %s).", s.Username, humanize.Time(at))
	}
	fmt.Fprintln(a.out, msg)

	if err := a.bootstrap(ctx); err != nil {
		printlnFn("Error:", describe(err))
	}
	return true
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.auth.Current(ctx)
	return err == nil
}

func (a *App) status(ctx context.Context) string {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return "guest"
	}
	if s.IsAdmin() {
		return s.Username + " admin"
	}
	return s.Username
}
