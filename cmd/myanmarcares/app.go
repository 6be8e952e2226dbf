package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	sdk "github.com/myanmarcares/myanmarcares/sdk/go"
	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
	"github.com/myanmarcares/myanmarcares/sdk/go/config"
)

// rootOptions carries the persistent flags into the fx graph.
type rootOptions struct {
	configPath string
	token      string
	baseURL    string
}

// deps is everything a command needs. It is filled from the fx graph.
type deps struct {
	fx.In

	Config  config.Config
	Logger  zerolog.Logger
	Tokens  *auth.TokenStore
	Client  *sdk.Client
	Session *sdk.Session
}

func newConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.token != "" {
		cfg.APIToken = opts.token
	}
	if opts.baseURL != "" {
		cfg.APIURL = opts.baseURL
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (zerolog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), err
	}
	var logger zerolog.Logger
	if cfg.LogFormat == config.LogFormatJSON {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Str("component", "myanmarcares").Logger(), nil
}

func newTokenStore(cfg config.Config) *auth.TokenStore {
	return auth.NewTokenStore(cfg.APIToken)
}

func newClient(cfg config.Config, logger zerolog.Logger, tokens *auth.TokenStore) (*sdk.Client, error) {
	return sdk.NewClient(cfg.ClientConfig(tokens, sdk.ZerologHooks(logger)))
}

func newSession(client *sdk.Client, tokens *auth.TokenStore) (*sdk.Session, error) {
	return sdk.NewSession(client, tokens)
}

// run resolves the dependency graph and calls fn with it.
func run(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, d deps) error) error {
	var resolved deps
	app := fx.New(
		fx.NopLogger,
		fx.Supply(opts),
		fx.Provide(
			newConfig,
			newLogger,
			newTokenStore,
			newClient,
			newSession,
		),
		fx.Invoke(func(d deps) { resolved = d }),
	)
	if err := app.Err(); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, resolved)
}
