package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/config"
	"github.com/cleared-dev/chartseed/internal/refdata"
	"github.com/cleared-dev/chartseed/internal/seed"
)

// project is a loaded project directory.
type project struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
}

func openProject(cmd *cobra.Command, dir string) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadProject(absDir)
	if err != nil {
		return nil, err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return &project{dir: absDir, cfg: cfg, logger: logger}, nil
}

func (p *project) snapshot() (*refdata.Snapshot, error) {
	if p.cfg.Dataset.Dir == "" {
		p.logger.Debug("using built-in dataset")
		return refdata.Default()
	}
	dir := config.Resolve(p.dir, p.cfg.Dataset.Dir)
	p.logger.Debug("loading dataset", "dir", dir)
	snap, err := refdata.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", dir, err)
	}
	return snap, nil
}

func (p *project) seedOptions() seed.Options {
	return seed.Options{
		InferParents: p.cfg.Hierarchy.InferParents,
		Logger:       p.logger,
	}
}
