package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Yuiki/rgit"
)

var rootCmd = &cobra.Command{
	Use:           "rgit",
	Short:         "Content-addressed object store and staging index",
	Long:          "Store file content under SHA-1 addresses and record staged files in a binary index.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

var logger = logrus.New()

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rgit: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/rgit/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "repository directory (default: .rgit)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: warn)")
	rootCmd.PersistentFlags().Bool("verify-index", false, "reject an index whose checksum does not match")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verify_index", rootCmd.PersistentFlags().Lookup("verify-index"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RGIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("root", rgit.DefaultRoot)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("compression_level", 1)
	viper.SetDefault("verify_index", false)
	viper.SetDefault("jobs", rgit.DefaultConcurrency)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rgit")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "rgit")
	}
	return ".rgit"
}

func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return nil
}

func getRoot() string {
	return viper.GetString("root")
}

func repoOptions() []rgit.Option {
	return []rgit.Option{
		rgit.WithLogger(logger),
		rgit.WithCompressionLevel(viper.GetInt("compression_level")),
		rgit.WithVerifyIndex(viper.GetBool("verify_index")),
		rgit.WithConcurrency(viper.GetInt("jobs")),
	}
}

func openRepo() (*rgit.Repository, error) {
	return rgit.Open(getRoot(), repoOptions()...)
}
