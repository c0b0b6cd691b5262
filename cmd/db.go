package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mysqlexport/config"
	"mysqlexport/dbexport"
)

// connect is a package-level variable to allow test injection.
var connect = dbexport.Connect

// loadConfig resolves the connection parameters: config file, then
// environment, then flags. Defaults are applied by dbexport.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if FlagConfig != "" {
		cfg, err = config.LoadFile(FlagConfig)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return config.Config{}, err
	}
	cfg, err = config.FromEnv(cfg)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Merge(config.Config{
		Host:     FlagHost,
		Port:     FlagPort,
		User:     FlagUser,
		Password: FlagPassword,
	}), nil
}

// withDB opens the session used by one command invocation, sets up signal
// handling, and closes the session once fn returns.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, s *dbexport.Session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Debug("error closing connection", zap.Error(err))
		}
	}()
	if err := fn(ctx, s); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("interrupted: %w", err)
		}
		return err
	}
	return nil
}
