// Package workspace brings every git clone under a directory up to date with
// its default branch.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cchawn/toolbox/internal/gitops"
	"github.com/cchawn/toolbox/internal/logger"
)

// Status is the outcome of updating one repo.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result describes what happened to one repo.
type Result struct {
	Repo   string
	Path   string
	Branch string
	Status Status
	Detail string
	Err    error
}

// Discover returns the immediate sub-directories of root that are git
// repositories, sorted by name.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w", err)
	}

	var repos []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(root, e.Name())
		if gitops.IsRepo(path) {
			repos = append(repos, path)
		}
	}
	sort.Strings(repos)
	return repos, nil
}

// Updater updates repos with bounded parallelism.
type Updater struct {
	Concurrency int
	Timeout     time.Duration
}

// UpdateAll updates each repo independently. Results are in input order and
// one repo failing never stops the others.
func (u *Updater) UpdateAll(ctx context.Context, repos []string) []Result {
	results := make([]Result, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	if u.Concurrency > 0 {
		g.SetLimit(u.Concurrency)
	}
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			results[i] = u.Update(gctx, repo)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Update checks out the default branch of one repo and pulls. Repos with
// uncommitted changes are left alone.
func (u *Updater) Update(ctx context.Context, path string) Result {
	if u.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.Timeout)
		defer cancel()
	}

	res := Result{Repo: filepath.Base(path), Path: path}
	log := logger.FromContext(ctx).With().Str("repo", res.Repo).Logger()

	fail := func(step string, err error) Result {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %w", step, err)
		log.Error().Err(res.Err).Msg("update failed")
		return res
	}

	dirty, err := gitops.IsDirty(ctx, path)
	if err != nil {
		return fail("status", err)
	}
	if dirty {
		res.Status = StatusSkipped
		res.Detail = "uncommitted changes"
		log.Warn().Msg("skipping dirty repo")
		return res
	}

	branch, err := gitops.DefaultBranch(ctx, path)
	if err != nil {
		return fail("default branch", err)
	}
	res.Branch = branch

	if err := gitops.Checkout(ctx, path, branch); err != nil {
		return fail("checkout", err)
	}

	hasRemote, err := gitops.HasRemote(ctx, path)
	if err != nil {
		return fail("remote", err)
	}
	if !hasRemote {
		res.Status = StatusSkipped
		res.Detail = "no remote"
		return res
	}

	before, err := gitops.Head(ctx, path)
	if err != nil {
		log.Warn().Err(err).Msg("reading HEAD before pull")
	}
	if _, err := gitops.Pull(ctx, path); err != nil {
		return fail("pull", err)
	}
	after, err := gitops.Head(ctx, path)
	if err != nil {
		log.Warn().Err(err).Msg("reading HEAD after pull")
	}

	res.Status = StatusUpdated
	res.Detail = pullDetail(before, after)
	log.Debug().Str("branch", branch).Str("detail", res.Detail).Msg("updated")
	return res
}

// pullDetail describes how HEAD moved. It is empty when either hash is
// unknown.
func pullDetail(before, after string) string {
	switch {
	case before == "" || after == "":
		return ""
	case before == after:
		return "already up to date"
	default:
		return before + ".." + after
	}
}

// Failed counts results with StatusFailed.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}
