// Package cli wires the cobra command tree. Each command delegates to a
// workflow function in its own file; the commands themselves stay thin.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Persistent flags shared by all commands.
var (
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "oledmon",
	Short: "System status on a small OLED panel",
	Long: `oledmon polls host state (uptime, systemd services, per-core CPU
load) and renders it on an SSD1306 OLED over I2C.

Run it as a daemon with 'oledmon run', or try the pipeline without
hardware using 'oledmon preview'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			os.Setenv("OLEDMON_DEBUG", "1")
		}
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
