package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"oledmon/internal/config"
	"oledmon/internal/errors"
)

// initCommand creates a starter oledmon.yaml in the current directory.
// Units may be given with --unit flags; otherwise an interactive form
// collects them.
func initCommand(units []string, force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if len(units) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(errors.ErrConfig,
				"No services specified",
				"Provide at least one --unit flag when running non-interactively")
		}

		var raw string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Services to monitor").
					Description("Comma-separated systemd units, in panel display order").
					Placeholder("nginx, postgresql, redis").
					Value(&raw).
					Validate(func(s string) error {
						if len(parseUnits(s)) == 0 {
							return fmt.Errorf("at least one service is required")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Use --unit flags to skip the prompts")
		}
		units = parseUnits(raw)
	} else {
		units = normalizeUnits(units)
	}

	cfg := config.DefaultConfig()
	for _, unit := range units {
		cfg.Services = append(cfg.Services, config.ServiceConfig{Unit: unit})
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.WriteFile(cfg, configPath, force); err != nil {
		return err
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  oledmon preview  - check the layout in your terminal")
	fmt.Println("  oledmon run      - drive the panel")

	return nil
}

// parseUnits splits a comma-separated list into normalized unit names.
func parseUnits(raw string) []string {
	var units []string
	for _, part := range strings.Split(raw, ",") {
		if name := normalizeUnit(part); name != "" {
			units = append(units, name)
		}
	}
	return units
}

func normalizeUnits(raw []string) []string {
	var units []string
	for _, part := range raw {
		if name := normalizeUnit(part); name != "" {
			units = append(units, name)
		}
	}
	return units
}

// normalizeUnit trims whitespace and appends the .service suffix when no
// unit type is given, so "nginx" and "nginx.service" are equivalent.
func normalizeUnit(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.Contains(name, ".") {
		name += ".service"
	}
	return name
}
