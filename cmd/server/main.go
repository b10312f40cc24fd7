// Package main - Entry point for the quantity-editor HTTP server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quantity-editor/adapters/presets"
	"quantity-editor/api"
	"quantity-editor/internal/config"
	"quantity-editor/internal/logging"
	"quantity-editor/internal/version"
)

var (
	cfgFile     string
	addr        string
	presetsFile string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:          "quantity-editor-server",
	Short:        "Serve the quantity fields over HTTP",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quantity-editor.json)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.Flags().StringVar(&presetsFile, "presets", "", "HCL, YAML, TOML or JSON file with extra fields")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every request")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Logging.Level = "info"
	if err := logging.Initialize(cfg.Logging.WithVerbose(verbose)); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()

	preset := presetsFile
	if preset == "" {
		preset = cfg.Fields.PresetFile
	}
	fields, err := presets.Registry(preset)
	if err != nil {
		return err
	}

	serverCfg := api.DefaultConfig()
	serverCfg.Addr = cfg.Server.Addr
	if addr != "" {
		serverCfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("starting server",
		zap.String("version", version.Version),
		zap.Strings("fields", fields.Names()))
	return api.NewServer(version.Version, fields, serverCfg).ListenAndServe(ctx)
}
