package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "leavectl",
	Short: "Leave management client",
	Long:  `Command-line client for the leave management service: apply for leave, track requests, browse policies and talk to the leave assistant.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Environment-only configuration for deployed installs
	if os.Getenv("APP_ENV") == "production" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("LEAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// No config file is the common case for a client; fall back to env
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := internal.LoadConfigFromEnv()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("error validating config from environment: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	cfg := internal.LoadConfigFromEnv()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return cfg, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(policyCmd)
}
