package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"toolbox/internal/config"
	"toolbox/internal/logger"
	"toolbox/pkg/tool"
	"toolbox/pkg/tools"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string

	cfg *config.Config

	registry     *tool.Registry
	registryOnce sync.Once
	registryErr  error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Toolbox - offline data transformation tools",
	Long: `Toolbox is a collection of offline data transformation tools:
formatters, encoders, hashes, diffs, cron parsing, archives, and image
operations. Every tool runs locally and writes results to stdout or a file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.NewLoader(cfgFile).Load()
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Logging.Level
		if cmd.Flags().Changed("log-level") || level == "" {
			level = logLevel
		}
		_, err = logger.New(logger.Config{
			Level:   level,
			File:    cfg.Logging.File,
			Console: cfg.Logging.Console,
			Pretty:  cfg.Logging.Pretty,
		})
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.toolbox/toolbox.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// getRegistry builds the tool registry once, on first use
func getRegistry() (*tool.Registry, error) {
	registryOnce.Do(func() {
		registry = tool.NewRegistry()
		registryErr = tools.RegisterBuiltin(registry)
	})
	if registryErr != nil {
		return nil, fmt.Errorf("failed to initialize tools: %w", registryErr)
	}
	return registry, nil
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
