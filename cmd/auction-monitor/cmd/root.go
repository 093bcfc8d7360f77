// Package cmd implements the CLI commands for auction-monitor.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/auction-monitor/internal/config"
	"github.com/donaldgifford/auction-monitor/pkg/logger"
)

const (
	envPrefix      = "AUCTION_MONITOR"
	defaultEnvFile = ".env"
)

var (
	cfgFile string
	envFile string

	// appLog logs to stderr at info until a configuration is loaded.
	appLog = logger.New("info", "text")
)

var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "auction-monitor",
		Short: "Summarize running marketplace buyer auctions",
		Long: "auction-monitor logs in to the marketplace buyer API, fetches the\n" +
			"running auctions, and reports the auction count, the average number\n" +
			"of bids, and the average auction progress.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadEnvFile,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file path (default: environment only)")
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before the config")
	flags.String("base-url", "", "marketplace API base URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")

	// The prefix must be set before BindEnv derives the variable names.
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	cobra.CheckErr(viper.BindPFlag("base_url", flags.Lookup("base-url")))
	cobra.CheckErr(viper.BindPFlag("log_level", flags.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log_format", flags.Lookup("log-format")))
	cobra.CheckErr(viper.BindEnv("email"))
	cobra.CheckErr(viper.BindEnv("password"))

	root.AddCommand(runCommand())
	root.AddCommand(watchCommand())
	root.AddCommand(summaryCommand())
	root.AddCommand(versionCommand())

	return root
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. Failures are logged before returning.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		appLog.Error("command failed", "error", err)
	}
	return err
}

// loadEnvFile loads the dotenv file into the process environment without
// overriding variables that are already set. A missing default file is fine.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	if envFile == "" {
		return nil
	}
	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", envFile, err)
}

// loadConfig reads the config file and applies AUCTION_MONITOR_* and flag
// overrides, then installs the configured logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, viperOverrides)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	appLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(appLog)

	if cfgFile != "" {
		appLog.Debug("using config file", "path", cfgFile)
	}
	return cfg, nil
}

func viperOverrides(cfg *config.Config) {
	if v := viper.GetString("base_url"); v != "" {
		cfg.Marketplace.BaseURL = v
	}
	if v := viper.GetString("email"); v != "" {
		cfg.Marketplace.Email = v
	}
	if v := viper.GetString("password"); v != "" {
		cfg.Marketplace.Password = v
	}
	if v := viper.GetString("log_level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("log_format"); v != "" {
		cfg.Logging.Format = v
	}
}
