// Package project locates the project an Agent OS command runs in.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info describes the repository containing a directory.
type Info struct {
	// Root is the worktree root, or the starting directory outside a repository.
	Root string
	// Branch is the checked-out branch, "detached" for a detached HEAD, and
	// empty when there is no repository or no commit yet.
	Branch string
	// InRepo is false when no repository was found above the directory.
	InRepo bool
}

// Opener abstracts opening a repository so tests can inject one.
type Opener interface {
	// Open opens the repository containing path, searching parent directories.
	Open(path string) (Repository, error)
}

// Repository is the subset of go-git used here.
type Repository interface {
	Head() (*plumbing.Reference, error)
	Worktree() (*git.Worktree, error)
}

// DefaultOpener opens repositories on disk with go-git.
type DefaultOpener struct{}

// Open implements Opener.
func (DefaultOpener) Open(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Detect describes the repository containing dir using opener. A directory
// outside any repository is its own root.
func Detect(opener Opener, dir string) (*Info, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	repo, err := opener.Open(abs)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return &Info{Root: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", abs, err)
	}

	info := &Info{Root: abs, InRepo: true}
	if wt, err := repo.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
	} else if !errors.Is(err, git.ErrIsBareRepository) {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// No commits yet.
	case err != nil:
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	case head.Name().IsBranch():
		info.Branch = head.Name().Short()
	default:
		info.Branch = "detached"
	}
	return info, nil
}

// Root returns the project root for dir, falling back to dir itself when
// detection fails.
func Root(dir string) string {
	info, err := Detect(DefaultOpener{}, dir)
	if err != nil {
		if abs, absErr := filepath.Abs(dir); absErr == nil {
			return abs
		}
		return dir
	}
	return info.Root
}
