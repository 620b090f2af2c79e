// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grant-reporter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the grant-reporter CLI.
var rootCmd = &cobra.Command{
	Use:   "grant-reporter",
	Short: "Active NIH award funding reports for a fixed investigator roster",
	Long: `grant-reporter builds a periodically refreshed report of active NIH award
funding. A roster of investigator names is extracted once from a concatenated
name blob; each refresh queries the NIH RePORTER API per roster entry, keeps
the grants whose budget period is still open and whose project end reaches a
cutoff date, and exports one flat table.

Each stage is a subcommand: roster, fetch, and export.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./grant-reporter.yaml or ~/.config/grant-reporter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grant-reporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grant-reporter"))
		}
	}

	viper.SetDefault("roster.out", "names.csv")
	viper.SetDefault("fetch.roster", "names.csv")
	viper.SetDefault("fetch.out", "grant_funding.csv")
	viper.SetDefault("fetch.cutoff", defaultCutoff)
	viper.SetDefault("fetch.limit", defaultLimit)
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.delay", defaultDelay)
	viper.SetDefault("report_dir", "report")

	viper.SetEnvPrefix("GRANT_REPORTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Flag > config file/env > default. Flags are registered with the
// default value, so the viper lookup only wins when the flag was not
// given on the command line.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func durationSetting(cmd *cobra.Command, flag, key string) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	return viper.GetDuration(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
