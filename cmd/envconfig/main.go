package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/coffeeshop/frontend-env/config"
	"github.com/coffeeshop/frontend-env/internal/handler"
	"github.com/coffeeshop/frontend-env/internal/httpserver"
	"github.com/coffeeshop/frontend-env/pkg/logger"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type cli struct {
	app    *kingpin.Application
	render *kingpin.CmdClause
	serve  *kingpin.CmdClause

	mode       *string
	configFile *string
	logLevel   *string
	format     *string
	out        *string
	addr       *string
}

func newCLI() *cli {
	app := kingpin.New("envconfig", "Resolves the coffee shop front-end environment for a deployment mode")

	c := &cli{app: app}
	c.mode = app.Flag("mode", "Deployment mode (development, production)").Default(string(config.ModeDevelopment)).String()
	c.configFile = app.Flag("config", "Optional YAML, JSON or TOML file overriding the preset").String()
	c.logLevel = app.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").String()

	c.render = app.Command("render", "Write the environment to stdout or a file")
	c.format = c.render.Flag("format", "Output format").Default(formatJSON).Enum(formatJSON, formatYAML)
	c.out = c.render.Flag("out", "Output file, stdout when empty").String()

	c.serve = app.Command("serve", "Serve the environment over HTTP")
	c.addr = c.serve.Flag("addr", "Listen address").Default(":8090").String()

	return c
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run reports every error it returns exactly once: usage errors through
// kingpin, everything after flag parsing through the configured logger.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := newCLI()
	c.app.ErrorWriter(stderr)
	c.app.UsageWriter(stderr)

	command, err := c.app.Parse(args)
	if err != nil {
		c.app.Errorf("%s, try --help", err)
		return err
	}

	mode, err := config.ParseMode(*c.mode)
	if err != nil {
		logger.NewWithWriter(stderr, *c.logLevel, false, *c.mode).Error("invalid mode", slog.Any("err", err))
		return err
	}

	log := logger.NewWithWriter(stderr, *c.logLevel, false, string(mode))

	if err := execute(ctx, log, c, command, mode, stdout); err != nil {
		log.Error("envconfig failed", slog.Any("err", err))
		return err
	}

	return nil
}

func execute(ctx context.Context, log *slog.Logger, c *cli, command string, mode config.Mode, stdout io.Writer) error {
	cfg, err := config.Load(mode, *c.configFile)
	if err != nil {
		return err
	}

	switch command {
	case c.render.FullCommand():
		return renderTo(log, cfg, *c.format, *c.out, stdout)
	case c.serve.FullCommand():
		return serve(ctx, log, mode, cfg, *c.addr)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func renderTo(log *slog.Logger, cfg config.EnvironmentConfig, format, out string, stdout io.Writer) error {
	if out == "" {
		return render(stdout, cfg, format)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	if err := render(f, cfg, format); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	log.Info("Wrote environment",
		slog.String("file", out),
		slog.String("format", format))

	return nil
}

func render(w io.Writer, cfg config.EnvironmentConfig, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	return nil
}

func serve(ctx context.Context, log *slog.Logger, mode config.Mode, cfg config.EnvironmentConfig, addr string) error {
	envHandler, err := handler.NewEnvironmentHandler(log, mode, cfg)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	srv, err := httpserver.New(addr, setupRouter(envHandler))
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Serving environment",
		slog.String("addr", addr),
		slog.String("api_server_url", cfg.APIServerURL))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-srvErrCh:
		return err
	}
}
