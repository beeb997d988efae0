package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoDefaultBranch is returned when a repo has neither main nor master.
var ErrNoDefaultBranch = errors.New("no main or master branch")

// DefaultBranches are tried in order by DefaultBranch.
var DefaultBranches = []string{"main", "master"}

// run executes git in dir and returns trimmed combined output.
func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return text, fmt.Errorf("git %s: %w", args[0], ctxErr)
		}
		return text, fmt.Errorf("git %s: %s: %w", args[0], text, err)
	}
	return text, nil
}

// Init initializes a new git repository at dir with the given initial branch.
func Init(ctx context.Context, dir, branch string) error {
	_, err := run(ctx, dir, "init", "--initial-branch", branch)
	return err
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(ctx context.Context, dir, message, authorName, authorEmail string) (string, error) {
	if _, err := run(ctx, dir, "add", "-A"); err != nil {
		return "", err
	}

	ident := []string{
		"-c", "user.name=" + authorName,
		"-c", "user.email=" + authorEmail,
	}
	args := append(ident, "commit", "-m", message)
	if _, err := run(ctx, dir, args...); err != nil {
		return "", err
	}

	return run(ctx, dir, "rev-parse", "--short", "HEAD")
}

// IsRepo reports whether dir is the root of a git working tree.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// HasBranch reports whether branch exists locally or on origin.
func HasBranch(ctx context.Context, dir, branch string) bool {
	if _, err := run(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch); err == nil {
		return true
	}
	_, err := run(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+branch)
	return err == nil
}

// DefaultBranch returns the first of DefaultBranches present in the repo.
func DefaultBranch(ctx context.Context, dir string) (string, error) {
	for _, b := range DefaultBranches {
		if HasBranch(ctx, dir, b) {
			return b, nil
		}
	}
	return "", ErrNoDefaultBranch
}

// IsDirty reports whether the working tree has uncommitted changes to
// tracked files.
func IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := run(ctx, dir, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HasRemote reports whether any remote is configured.
func HasRemote(ctx context.Context, dir string) (bool, error) {
	out, err := run(ctx, dir, "remote")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Checkout switches to branch.
func Checkout(ctx context.Context, dir, branch string) error {
	_, err := run(ctx, dir, "checkout", "--quiet", branch)
	return err
}

// Pull fast-forwards the current branch from its upstream and returns git's
// summary line.
func Pull(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "pull", "--ff-only")
}

// Head returns the short hash of HEAD.
func Head(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "rev-parse", "--short", "HEAD")
}
