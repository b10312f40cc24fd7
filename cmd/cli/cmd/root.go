// Package cmd provides the CLI commands for quantity-editor.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quantity-editor/adapters/presets"
	"quantity-editor/core/field"
	"quantity-editor/core/output"
	"quantity-editor/internal/config"
	"quantity-editor/internal/logging"
	"quantity-editor/internal/version"
)

var (
	cfgFile     string
	verbose     bool
	fieldName   string
	formatName  string
	presetsFile string
	noColor     bool

	// registry is built once per invocation from the built-ins and presets
	registry *field.Registry
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quantity-editor",
	Short: "Parse, step and convert unit-aware quantities",
	Long: `quantity-editor drives the quantity fields used for memory and CPU inputs.

Text is parsed the way the input widget parses it, stepping carries across
units, and every result is checked against the field's bounds.

Examples:
  quantity-editor parse "1.5 GiB" 512 "2 parsecs"
  quantity-editor step --times 3 "960 MiB"
  quantity-editor convert "2048 MiB" GiB
  quantity-editor --field cpu step --down 500m
  quantity-editor --presets fields.hcl fields
  quantity-editor repl`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quantity-editor.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&fieldName, "field", "", "field to use (default from config, memory)")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "", "output format (cli, json)")
	rootCmd.PersistentFlags().StringVar(&presetsFile, "presets", "", "HCL, YAML, TOML or JSON file with extra fields")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging.WithVerbose(verbose)); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	preset := presetsFile
	if preset == "" {
		preset = cfg.Fields.PresetFile
	}
	registry, err = presets.Registry(preset)
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}
	return nil
}

func activeField() (*field.Field, error) {
	name := fieldName
	if name == "" {
		name = config.Get().Fields.Default
	}
	return registry.Get(name)
}

func formatter() (output.Formatter, error) {
	format := output.Format(formatName)
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	return output.Get(format, noColor)
}

func render(cmd *cobra.Command, report *output.Report) error {
	f, err := formatter()
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quantity-editor version %s\n", version.Version)
	},
}
