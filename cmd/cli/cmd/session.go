// Package cmd - fields, repl and config commands
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quantity-editor/adapters/repl"
	"quantity-editor/core/output"
	"quantity-editor/core/ui"
	"quantity-editor/internal/config"
	"quantity-editor/internal/version"
)

var configInitForce bool

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the configured fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := formatter()
		if err != nil {
			return err
		}

		var summaries []output.FieldSummary
		for _, fld := range registry.All() {
			summaries = append(summaries, output.Summarize(fld))
		}
		return f.RenderFields(cmd.OutOrStdout(), summaries)
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Edit a field interactively",
	Long: `Start an interactive session on a field. Type quantities, press + and - to
step, and use :unit to switch units. Type :help for all commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := activeField()
		if err != nil {
			return err
		}
		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		if verbose {
			w.SetVerbosity(2)
		}
		session, err := repl.NewSession(registry, f.Name(), w)
		if err != nil {
			return err
		}
		return repl.Run(session, cmd.OutOrStdout(), version.Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		if !configInitForce && fileExists(path) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
