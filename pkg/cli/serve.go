package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vivero/database"
	"vivero/pkg/logger"
	"vivero/router"
)

func serveCmd(a *app) *cobra.Command {
	var port string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			db, err := database.OpenAndMigrate(a.cfg.DBPath)
			if err != nil {
				return err
			}
			e := router.Build(db, a.cfg.ImportMaxBytes)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.L().Info("server.listening", "addr", ":"+port, "db_path", a.cfg.DBPath)
				errc <- e.Start(":" + port)
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.L().Info("server.stopping")
			return e.Shutdown(shutdownCtx)
		},
	}

	c.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides PORT")
	return c
}
