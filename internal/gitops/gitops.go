package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Signature identifies the author and committer of a commit.
type Signature struct {
	Name  string
	Email string
}

// DefaultSignature is used for commits made by the CLI itself.
var DefaultSignature = Signature{Name: "chartseed", Email: "chartseed@localhost"}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is the root of a git working tree.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	if _, err := git(ctx, dir, nil, "init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages every file under dir and commits it. Returns the short
// commit hash.
func CommitAll(ctx context.Context, dir, message string, sig Signature) (string, error) {
	if _, err := git(ctx, dir, nil, "add", "-A"); err != nil {
		return "", err
	}

	// The committer is set through the environment so commits succeed
	// without a global git identity.
	env := []string{
		"GIT_AUTHOR_NAME=" + sig.Name,
		"GIT_AUTHOR_EMAIL=" + sig.Email,
		"GIT_COMMITTER_NAME=" + sig.Name,
		"GIT_COMMITTER_EMAIL=" + sig.Email,
	}
	if _, err := git(ctx, dir, env, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}

	out, err := git(ctx, dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func git(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
