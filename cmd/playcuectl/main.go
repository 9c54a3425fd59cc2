// Playcuectl is the command-line client for playcue.
//
// It can interpret a command locally against the configured library, send a
// command to a running daemon, or list the supported command shapes.
//
// Usage:
//
//	playcuectl parse "play bohemian rhapsody"
//	playcuectl send --url http://localhost:8080 "volume 40"
//	playcuectl commands
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadzzz/playcue/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configFile string
	outputJSON bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "playcuectl",
	Short:         "Interpret and send music commands",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupLogging(config.LoggingConfig{Level: logLevel, Format: "text"})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(parseCmd, sendCmd, commandsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
