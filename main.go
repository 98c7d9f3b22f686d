package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/volunteermatch/volunteer-server-go/config"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/router"
	"github.com/volunteermatch/volunteer-server-go/sentrylog"
	"github.com/volunteermatch/volunteer-server-go/session"
	"go.uber.org/zap"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "volunteer-server",
		Short: "Volunteer matching API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			sentrylog.Flush()
			log.Sync()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, Sentry and the database.
func initApp() error {
	var err error

	cfg, err = config.Load()
	if err != nil {
		return err
	}

	if _, err := log.Init(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		return err
	}

	if err := sentrylog.InitSentry(cfg.SentryDSN); err != nil {
		return err
	}

	if err := database.InitDatabase(cfg); err != nil {
		return err
	}

	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := router.AutoMigrate(); err != nil {
				return err
			}

			log.L().Info("Migration complete")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipMigrate {
				if err := router.AutoMigrate(); err != nil {
					return err
				}
			}

			session.Init(session.Config{
				Expiration:   cfg.SessionExpiry,
				CookieSecure: cfg.SessionCookieSecure,
			})

			app := router.NewApp(router.Config{
				CorsOrigins:  cfg.CorsOrigins,
				PingDatabase: true,
			})

			// We can signal to stop using SIGINT or SIGTERM.
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)

			serverShutdown := make(chan struct{})

			go func() {
				_ = <-c
				log.L().Info("Gracefully shutting down...")
				_ = app.Shutdown()
				serverShutdown <- struct{}{}
			}()

			log.L().Info("Listening", zap.String("addr", cfg.ListenAddr))

			if err := app.Listen(cfg.ListenAddr); err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			<-serverShutdown

			log.L().Info("...exiting")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Don't run AutoMigrate on start-up")

	return cmd
}
