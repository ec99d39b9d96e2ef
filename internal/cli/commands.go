package cli

import (
	"os"

	"github.com/spf13/cobra"

	"oledmon/internal/errors"
)

// Command-specific flags
var (
	initForce bool
	initUnits []string
)

// runCmd starts the monitoring daemon against the physical panel
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll system state and drive the OLED panel",
	Long: `Start the monitoring loop: poll uptime, service states, and CPU
load on the configured interval and push each rendered frame to the
SSD1306 panel.

Runs until interrupted (SIGINT/SIGTERM). Shutdown completes the cycle
in flight, then blanks the panel if panel.blank_on_exit is set.

Examples:
  oledmon run
  oledmon run --config /etc/oledmon/config.yaml
  oledmon run --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(configFlag)
	},
}

// previewCmd runs the same pipeline against a terminal renderer
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render frames in the terminal instead of the panel",
	Long: `Run the full monitoring pipeline but draw each frame as unicode
half blocks in the terminal. Useful for tuning a config on a machine
without the hardware attached.

Keyboard shortcuts:
  q / Ctrl+C  Quit

Examples:
  oledmon preview
  oledmon preview --config ./oledmon.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return previewCommand(configFlag)
	},
}

// initCmd creates a starter configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an oledmon.yaml configuration",
	Long: `Initialize a new oledmon configuration file in the current
directory.

Prompts for the service list when run interactively; use --unit to
skip the prompts.

Examples:
  oledmon init
  oledmon init --unit nginx --unit postgresql
  oledmon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initUnits, initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for oledmon.

Examples:
  # Bash
  oledmon completion bash > /etc/bash_completion.d/oledmon

  # Zsh
  oledmon completion zsh > "${fpath[1]}/_oledmon"

  # Fish
  oledmon completion fish > ~/.config/fish/completions/oledmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// init command flags
	initCmd.Flags().StringArrayVar(&initUnits, "unit", nil, "systemd unit to monitor (repeatable)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
