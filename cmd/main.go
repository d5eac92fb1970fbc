package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angelofallars/sharebill/app"
	"github.com/angelofallars/sharebill/internal/config"
	"github.com/angelofallars/sharebill/internal/service"
	"github.com/angelofallars/sharebill/internal/storage"
)

// skipConfig marks commands that run without loading the config.
const skipConfig = "skip-config"

type rootOptions struct {
	configPath string
	debug      bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "sharebill",
		Short:         "Invoice editor with shareable links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.debug {
				cfg.Log.Level = "debug"
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newShareCmd(opts),
		newOpenCmd(opts),
		newKeymapCmd(),
	)

	return rootCmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		host string
		port uint
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := cfg.Logger(os.Stderr)

			db, err := storage.OpenSQLite(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			svcInvoice := service.NewInvoice(storage.NewRepository(db), log)

			server := app.New(log, svcInvoice).
				WithHost(cfg.Server.Host).
				WithPort(cfg.Server.Port).
				WithPublicURL(cfg.Server.PublicURL)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Address to listen on (overrides config)")
	cmd.Flags().UintVar(&port, "port", 0, "Port to listen on (overrides config)")

	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
