package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "tgpin",
	Short: "tgpin - export pinned Telegram messages to a hosted JSON artifact",
	Long: `tgpin collects the pinned messages of a configured set of Telegram chats
and delivers them as one date-sorted JSON artifact:
- Signs in interactively on first use, then reuses the saved session
- Resolves each configured chat handle and pages through its pinned messages
- Keeps text-only messages from senders with a public handle
- Sorts the combined batch by calendar date (oldest first)
- Uploads the result to gofile.io, optionally keeping a local copy`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tgpin.toml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName("tgpin")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
