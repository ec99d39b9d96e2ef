package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Build metadata. Release builds inject these with
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...";
// a plain source build reports "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the oledmon version, commit hash, and build date.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version)
			return
		}

		fmt.Printf("oledmon %s\n", displayVersion(version))
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		fmt.Printf("go: %s\n", runtime.Version())
		fmt.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// displayVersion prefixes release versions with 'v'. Dev and empty
// versions pass through untouched.
func displayVersion(v string) string {
	switch {
	case v == "" || v == "dev":
		return v
	case strings.HasPrefix(v, "v"):
		return v
	default:
		return "v" + v
	}
}

// SetVersionInfo hands the ldflags values from package main to the
// version command.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}
