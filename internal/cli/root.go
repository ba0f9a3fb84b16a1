// Package cli provides the fishlist command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fishlist/internal/config"
	"github.com/goliatone/go-fishlist/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:   "fishlist",
		Short: "Render fish collections into HTML",
		Long: `fishlist renders an ordered collection of fish records into an HTML
list and appends it to a host page. Records come from a JSON/YAML file, a URL
or a local SQLite store.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}

			res, err := config.Load(config.LoadOptions{
				File:    cfgFile,
				EnvFile: envFile,
				Flags:   cmd.Flags(),
			})
			if err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), res.Config.LogLevel, res.Config.LogFormat)
			if err != nil {
				return err
			}
			if res.File != "" {
				logger.Debug("using config file", "path", res.File)
			}
			if res.EnvFile != "" {
				logger.Debug("using env file", "path", res.EnvFile)
			}

			ctx := logging.WithLogger(cmd.Context(), logger)
			ctx = context.WithValue(ctx, configKey{}, res.Config)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./fishlist.yaml)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file (default: ./.env when present)")
	flags.String("source", "", "record source: file or store")
	flags.String("data", "", "JSON/YAML file or URL holding the records")
	flags.String("database", "", "SQLite database path")
	flags.Bool("allow-http", false, "allow loading records from http(s) URLs")
	flags.Duration("http-timeout", 0, "timeout for remote record documents")
	flags.String("renderer", "", "renderer name")
	flags.String("key-strategy", "", "element id key: name or id")
	flags.String("trigger-prefix", "", "prefix for toggle control ids")
	flags.String("detail-prefix", "", "prefix for detail panel ids")
	flags.String("food-separator", "", "separator used to join food items")
	flags.String("list-id", "", "id of the wrapping list element")
	flags.Bool("strict-keys", false, "fail when records derive identical element ids")
	flags.String("theme-file", "", "theme manifest (YAML)")
	flags.String("theme-variant", "", "theme variant")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("key-strategy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"name", "id"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("source", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.SourceFile, config.SourceStore}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

func configFrom(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return nil, errors.New("cli: configuration not loaded")
}
