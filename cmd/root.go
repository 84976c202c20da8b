// Package cmd provides the command-line interface for exnew with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --log-level, etc.) - highest priority
//	2. EXNEW_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (EXNEW_LOG_LEVEL, etc.)
//	4. Configuration files (.exnew.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/exkit/exnew/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "exnew",
	Short: "A project scaffolding generator for Elixir applications",
	Long: `Exnew generates new Elixir application skeletons: it validates the
proposed application and module names, then writes a ready-to-build project
tree with a build descriptor, runtime configuration, library entry point
and test skeleton.

Quick Start:
  exnew new myapp                 Create a plain application skeleton
  exnew new myapp --sup           Create a supervised application skeleton
  exnew version                   Show version information

Command Aliases (for faster typing):
  new (n)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .exnew.yml, can also use EXNEW_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. EXNEW_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .exnew.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("EXNEW_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".exnew")
	}

	// Enable automatic environment variable binding with EXNEW_ prefix
	// Examples: EXNEW_LOG_LEVEL, EXNEW_DEP_VERSION
	viper.SetEnvPrefix("EXNEW")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// If the file doesn't exist or has errors, Viper uses defaults
	// without failing so missing config files degrade gracefully
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger from the configured log level.
func newLogger() logging.Logger {
	config := logging.DefaultConfig()
	config.Level = logging.ParseLevel(viper.GetString("log-level"))
	return logging.NewLogger(config)
}
