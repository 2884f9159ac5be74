package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/config"
	"github.com/cleared-dev/chartseed/internal/gitops"
	"github.com/cleared-dev/chartseed/internal/refdata"
)

func newInitCommand() *cobra.Command {
	var (
		builtin bool
		useGit  bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new chartseed project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, builtin, useGit)
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "use the built-in dataset instead of exporting an editable copy")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit the project")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, builtin, useGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	for _, d := range []string{"data", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if builtin {
		cfg.Dataset.Dir = ""
	} else {
		snap, err := refdata.Default()
		if err != nil {
			return err
		}
		if err := refdata.WriteDir(filepath.Join(dir, cfg.Dataset.Dir), snap); err != nil {
			return fmt.Errorf("writing dataset: %w", err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := "data/\nlogs/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if useGit {
		if !gitops.IsRepo(dir) {
			if err := gitops.Init(ctx, dir); err != nil {
				return err
			}
		}
		hash, err := gitops.CommitAll(ctx, dir, "chartseed: initialize project", gitops.DefaultSignature)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Committed %s\n", hash)
	}

	fmt.Fprintf(out, "Initialized chartseed project at %s\n", dir)
	return nil
}
