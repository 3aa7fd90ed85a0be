package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"vivero/config"
	"vivero/pkg/logger"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg      config.AppConfig
	envFiles []string
	dbPath   string
	debug    bool
	cleanup  func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Producers, farms, nurseries and labor records over SQLite",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "env files to load before the environment; must exist (default optional .env)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite path, overrides DB_PATH")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "debug logging with source locations")

	cmd.AddCommand(serveCmd(a), migrateCmd(a), importCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.dbPath != "" {
		a.cfg.DBPath = a.dbPath
	}
	if cmd.Flags().Changed("debug") {
		a.cfg.Debug = a.debug
	}

	cleanup, err := logger.Setup(logger.Config{Path: a.cfg.LogPath, Debug: a.cfg.Debug})
	if err != nil {
		return err
	}
	a.cleanup = cleanup
	logger.L().Info("config.loaded", "config", a.cfg)

	if loc, err := time.LoadLocation(a.cfg.Timezone); err != nil {
		logger.L().Warn("config.bad_timezone", "tz", a.cfg.Timezone, "err", err)
	} else {
		time.Local = loc
	}
	return nil
}
