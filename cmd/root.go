package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/scribe/pkg/config"
	"github.com/killallgit/scribe/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Live transcript tail for an agent service",
	Long: `Scribe connects to an agent service over websocket, folds its event
stream into a consistent transcript, and prints each turn as it lands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			return err
		}
		defer logger.Close()

		return RunApp(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .scribe/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("server", "s", "", "websocket URL of the agent service")
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentFlags().IntP("max-messages", "m", 100, "transcript cap, 0 for unbounded")
	viper.BindPFlag("transcript.max_messages", rootCmd.PersistentFlags().Lookup("max-messages"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "send this message once connected")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))
}
