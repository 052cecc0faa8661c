package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/internal/config"
	"github.com/iwvelando/take-home/internal/interactive"
	"github.com/iwvelando/take-home/internal/server"
	"github.com/iwvelando/take-home/internal/session"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/output"
	"github.com/iwvelando/take-home/pkg/validation"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   constants.DefaultConfigFile,
		Usage:   "path to configuration file",
	}

	return &cli.App{
		Name:           "take-home",
		Usage:          "estimate UK take-home pay after tax, National Insurance, student loans and living costs",
		Version:        version,
		DefaultCommand: "calculate",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level override (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "calculate",
				Usage: "print the breakdown for a configuration file",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{Name: "output-format", Usage: "output format override: pretty, csv, yaml, json, pdf"},
					&cli.StringFlag{Name: "view", Usage: "view override: annual, monthly"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write output to this file instead of stdout"},
					&cli.StringFlag{Name: "salary", Usage: "gross annual salary override"},
					&cli.StringFlag{Name: "rent", Usage: "monthly rent override"},
					&cli.StringFlag{Name: "food", Usage: "weekly food override"},
					&cli.BoolFlag{Name: "undergrad", Usage: "repay an undergraduate student loan"},
					&cli.BoolFlag{Name: "postgrad", Usage: "repay a postgraduate student loan"},
				},
				Action: calculateAction,
			},
			{
				Name:   "interactive",
				Usage:  "adjust inputs with commands and see the breakdown update",
				Flags:  []cli.Flag{configFlag},
				Action: interactiveAction,
			},
			{
				Name:  "serve",
				Usage: "serve the calculation API over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server-config", Value: constants.DefaultServerConfigFile, Usage: "path to server configuration file"},
					&cli.StringFlag{Name: "address", Usage: "listen address override"},
				},
				Action: serveAction,
			},
		},
	}
}

// loadConfiguration loads the calculation config. A missing file at the
// default location falls back to the built-in defaults.
func loadConfiguration(c *cli.Context) (*config.Configuration, error) {
	path := c.String("config")
	conf, err := config.LoadConfiguration(path)
	if err == nil {
		return conf, nil
	}
	if !c.IsSet("config") {
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			return config.LoadConfigurationFromReader(strings.NewReader(""))
		}
	}
	return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
}

func calculateAction(c *cli.Context) error {
	conf, err := loadConfiguration(c)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, c.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if c.IsSet("output-format") {
		outputFormat = c.String("output-format")
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	view := conf.Output.View
	if c.IsSet("view") {
		view = strings.ToLower(c.String("view"))
	}
	if err := validation.ValidateView(view); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.calculate"),
		)
	}

	in := conf.Inputs()
	applyInputOverrides(c, &in, logger)

	report := breakdown.NewCalculator(logger).Calculate(in)

	destination := conf.Output.File
	if c.IsSet("out") {
		destination = c.String("out")
	}

	var w io.Writer = os.Stdout
	if destination != "" {
		file, err := os.Create(destination)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", destination, err)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				logger.Warn("failed to close output file",
					zap.String("op", "main.calculate"),
					zap.Error(closeErr),
				)
			}
		}()
		w = file
	}

	if outputFormat != constants.OutputFormatPretty && !report.HasSalary() {
		logger.Warn(output.NoSalaryMessage, zap.String("op", "main.calculate"))
	}

	if err := output.Write(w, outputFormat, report, view); err != nil {
		return fmt.Errorf("failed to write %s output: %w", outputFormat, err)
	}

	logger.Debug("calculation written",
		zap.String("op", "main.calculate"),
		zap.String("format", outputFormat),
		zap.String("view", view),
		zap.String("destination", destination),
	)
	return nil
}

func applyInputOverrides(c *cli.Context, in *breakdown.Inputs, logger *zap.Logger) {
	overrides := []struct {
		flag   string
		target *float64
	}{
		{"salary", &in.Salary},
		{"rent", &in.RentMonthly},
		{"food", &in.FoodWeekly},
	}
	for _, o := range overrides {
		if !c.IsSet(o.flag) {
			continue
		}
		value, warning := validation.ParseOrZero(o.flag, c.String(o.flag))
		if warning != "" {
			logger.Warn(warning, zap.String("op", "main.calculate"))
		}
		*o.target = value
	}

	if c.IsSet("undergrad") {
		in.UndergraduateLoan = c.Bool("undergrad")
	}
	if c.IsSet("postgrad") {
		in.PostgraduateLoan = c.Bool("postgrad")
	}
}

func interactiveAction(c *cli.Context) error {
	conf, err := loadConfiguration(c)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, c.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := interactive.New(os.Stdin, os.Stdout, conf.Inputs(), logger)
	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveAction(c *cli.Context) error {
	serverConf, err := server.LoadConfig(c.String("server-config"))
	if err != nil {
		return err
	}
	if c.IsSet("address") {
		serverConf.Address = c.String("address")
	}

	logger, err := initializeLogger(serverConf.Logging, c.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newSessionStore(ctx, serverConf, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.NewHandler(logger, store, serverConf.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", serverConf.Address),
			zap.Int64("maxBodySize", serverConf.BodySizeBytes()),
			zap.Duration("sessionTTL", serverConf.SessionTTLDuration()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down", zap.String("op", "main.serve"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// newSessionStore returns the Redis store when an address is configured and
// an in-memory store with a background pruner otherwise.
func newSessionStore(ctx context.Context, conf *server.Config, logger *zap.Logger) (session.Store, func(), error) {
	ttl := conf.SessionTTLDuration()

	if conf.Redis.Address != "" {
		store := session.NewRedisStore(conf.Redis.Address, conf.Redis.Password, conf.Redis.DB, ttl)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", conf.Redis.Address, err)
		}
		logger.Info("using redis session store",
			zap.String("op", "main.serve"),
			zap.String("address", conf.Redis.Address),
		)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close redis client",
					zap.String("op", "main.serve"),
					zap.Error(err),
				)
			}
		}, nil
	}

	store := session.NewMemoryStore(ttl)
	pruner, err := session.NewPruner(store, conf.PruneSchedule, logger)
	if err != nil {
		return nil, nil, err
	}
	pruner.Start()
	logger.Info("using in-memory session store",
		zap.String("op", "main.serve"),
		zap.String("pruneSchedule", conf.PruneSchedule),
	)
	return store, pruner.Stop, nil
}
