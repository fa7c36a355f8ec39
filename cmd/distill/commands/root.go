// Package commands implements the CLI commands for distill.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/distill/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "distill",
	Short: "Clean article markup and extract text and metadata",
	Long: `Distill turns syndicated article markup into clean, normalized text and
derives metadata from it: word count, reading time, key phrases, topics,
content type and a quality score.

Content is cleaned either by the priority-ordered rule engine (default) or
by a configurable chain of processing stages.

Examples:
  # Process a file with the default rules
  distill process article.html

  # Read from stdin, append link targets, cut to 500 characters
  cat article.html | distill process --extract-links --max-length 500

  # Run a stage pipeline from a YAML file and print plain text
  distill process --pipeline pipeline.yaml --format text *.html

  # List the available stages and rules
  distill stages
  distill rules`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetString("log_format") == "json",
			Level: viper.GetString("log_level"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.distill.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.String("log-format", "text", "log format: text, json")
	flags.String("log-level", "", "log level: debug, info, warn, error (overrides --debug/--quiet)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".distill")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. DISTILL_FORMAT=text
	viper.SetEnvPrefix("DISTILL")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
