// Package git reads staged changes and records commits.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"gptcommit/internal/prompt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var (
	ErrNotRepository = errors.New("not a git repository")
	ErrNothingStaged = errors.New("no staged changes found")
)

// Repo is a working tree opened from a directory inside it.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open finds the repository containing dir.
func Open(dir string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the top-level directory of the working tree.
func (r *Repo) Root() string {
	return r.root
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	for _, s := range status {
		if s.Staging != gogit.Unmodified && s.Staging != gogit.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// StagedDiff returns the output of git diff --cached.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	staged, err := r.HasStagedChanges()
	if err != nil {
		return "", err
	}
	if !staged {
		return "", ErrNothingStaged
	}

	output, err := r.command(ctx, "diff", "--cached").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return string(output), nil
}

// RecentExchanges turns up to n recent single-parent commits into prompt
// examples: the commit's patch against its parent and its message. Commits
// whose patch exceeds maxDiffBytes are skipped. An empty repository has none.
func (r *Repo) RecentExchanges(n, maxDiffBytes int) ([]prompt.Exchange, error) {
	if n <= 0 {
		n = 3
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	var exchanges []prompt.Exchange
	err = iter.ForEach(func(c *object.Commit) error {
		if len(exchanges) >= n {
			return storer.ErrStop
		}
		if c.NumParents() != 1 {
			return nil
		}
		parent, err := c.Parent(0)
		if err != nil {
			return err
		}
		patch, err := parent.Patch(c)
		if err != nil {
			return err
		}
		diff := patch.String()
		if diff == "" || (maxDiffBytes > 0 && len(diff) > maxDiffBytes) {
			return nil
		}
		exchanges = append(exchanges, prompt.Exchange{
			Diff:    diff,
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return exchanges, nil
}

// AddAll stages all changes including deletions and untracked files.
func (r *Repo) AddAll(ctx context.Context) error {
	return r.run(ctx, "failed to add files", "add", "-A")
}

func (r *Repo) Commit(ctx context.Context, message string) error {
	return r.run(ctx, "failed to commit", "commit", "-m", message)
}

// Push pushes the current branch to its upstream remote.
func (r *Repo) Push(ctx context.Context) error {
	return r.run(ctx, "failed to push", "push")
}

func (r *Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	return cmd
}

func (r *Repo) run(ctx context.Context, what string, args ...string) error {
	output, err := r.command(ctx, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\nOutput: %s", what, err, string(output))
	}
	return nil
}
