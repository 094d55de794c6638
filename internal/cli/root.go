package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrocha/leetboard/internal/leetcode"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/roster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flags
var (
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leetboard",
		Short: "Fetch and rank LeetCode profile stats",
		Long: `leetboard looks up LeetCode profiles for a batch of usernames and prints
them as a table sorted by rank.

Usernames come from a file (one per line) or an inline comma-separated
list. A lookup that fails for one user never aborts the batch: the user
shows up in the table with the error instead.`,
		Example: `  # Fetch stats for usernames listed in a file
  leetboard fetch --file users.txt

  # Fetch stats for an inline list
  leetboard fetch --usernames alice,bob,carol

  # JSON output for scripting
  leetboard fetch --usernames alice --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogger()

			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/leetboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewFetchCommand())

	return rootCmd
}

// initLogger configures the default logger based on the global flags.
func initLogger() {
	level := logger.INFO
	switch {
	case quiet:
		level = logger.ERROR
	case verbose:
		level = logger.DEBUG
	}

	logger.SetDefault(logger.New(logger.WithLevel(level)))
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".config", "leetboard")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("base_url", leetcode.DefaultBaseURL)
	viper.SetDefault("timeout", leetcode.DefaultTimeout)
	viper.SetDefault("concurrency", 1)
	viper.SetDefault("max_usernames", roster.DefaultMaxBatch)

	viper.SetEnvPrefix("LEETBOARD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file: %s", viper.ConfigFileUsed())
	}

	return nil
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
