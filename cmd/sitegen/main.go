package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/history"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/plugin"
	"git.home.luguber.info/inful/sitegen/internal/site"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"site.yaml"`
	Verbose bool   `short:"v" help:"Force complete logging verbosity"`

	Build struct {
		Output string `short:"o" help:"Override the configured output directory"`
	} `cmd:"" help:"Build the site into the output directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	History struct {
		Limit int `short:"n" help:"Number of builds to show" default:"10"`
	} `cmd:"" help:"Show recent builds from the history store"`
}

func main() {
	ctx := kong.Parse(&CLI)

	switch ctx.Command() {
	case "build":
		if err := runBuild(); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
	case "history":
		if err := runHistory(); err != nil {
			slog.Error("History failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

// loadConfig loads the configuration and installs the default logger derived
// from its verbosity setting.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.Verbose {
		cfg.Logging.Verbosity = config.VerbosityComplete
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.Verbosity.Level(),
	})))
	return cfg, nil
}

func runBuild() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Build.Output != "" {
		cfg.Output = CLI.Build.Output
	}

	plugins, err := plugin.Resolve(cfg.Plugins)
	if err != nil {
		return err
	}

	buildID := uuid.NewString()
	report, buildErr := site.NewBuilder(cfg, plugins).Run(context.Background(), buildID)

	if cfg.History.Path != "" && report != nil {
		if err := recordBuild(cfg.History.Path, report, buildErr); err != nil {
			slog.Warn("Failed to record build history", logfields.Error(err))
		}
	}
	return buildErr
}

// recordBuild appends the build outcome to the history store. History
// failures never mask the build result.
func recordBuild(dbPath string, report *site.BuildReport, buildErr error) error {
	if err := fsutil.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return err
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	status := history.StatusSuccess
	if buildErr != nil {
		status = history.StatusFailed
	}
	return store.Append(context.Background(), history.Record{
		BuildID:      report.BuildID,
		Started:      report.Started,
		Finished:     report.Finished,
		Pages:        report.Pages,
		ContentItems: report.ContentItems,
		Status:       status,
	})
}

func runHistory() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		slog.Info("History store not configured")
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), CLI.History.Limit)
	if err != nil {
		return err
	}
	for _, rec := range records {
		slog.Info("Build",
			logfields.BuildID(rec.BuildID),
			slog.Time("started", rec.Started),
			slog.Int("pages", rec.Pages),
			slog.Int("content_items", rec.ContentItems),
			slog.String("status", rec.Status))
	}
	return nil
}
