package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"oledmon/internal/config"
	"oledmon/internal/display"
	"oledmon/internal/errors"
	"oledmon/internal/facts"
	"oledmon/internal/layout"
	"oledmon/internal/logger"
	"oledmon/internal/monitor"
)

// loadConfig resolves, loads, and validates the configuration. Any
// problem here is fatal; nothing is re-read once the loop starts.
func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'oledmon init' to create one, or specify a path with --config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCommand is the daemon workflow: build the pipeline against the
// physical panel and loop until interrupted.
func runCommand(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := facts.NewSystemProvider(ctx)
	if err != nil {
		return err
	}
	defer provider.Close()

	driver, err := display.NewSSD1306(cfg.Panel)
	if err != nil {
		return err
	}

	log := logger.New("[oledmon]")
	collector := monitor.NewCollector(provider, cfg.Services, log)
	engine := layout.NewEngine(cfg.Panel.Width, cfg.Panel.Height)
	loop := monitor.NewLoop(collector, engine, driver, cfg.Interval, log)

	log.Info("monitoring %d services on a %dx%d panel, every %s",
		len(cfg.Services), cfg.Panel.Width, cfg.Panel.Height, cfg.Interval)

	runErr := loop.Run(ctx)

	// The loop has pushed its final frame; now the panel can blank.
	if closeErr := driver.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}
