package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/arumata/gitline/internal/usecase"
)

// Adapter implements RepositoryPort using go-git.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new repository adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("gitrepo adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Open opens the repository at path. Bare repositories are rejected: there
// is no working tree to report status on.
func (a *Adapter) Open(ctx context.Context, path string) (usecase.RepoHandle, error) {
	_ = ctx
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, &usecase.RepoError{
			Code:    usecase.RepoOpenFailed,
			Message: fmt.Sprintf("cannot open repository at %q", path),
			Err:     err,
		}
	}

	if _, err := repo.Worktree(); err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, &usecase.RepoError{
				Code:    usecase.RepoBare,
				Message: "Cannot report status on bare repository",
			}
		}
		return nil, &usecase.RepoError{
			Code:    usecase.RepoOpenFailed,
			Message: "cannot access working tree",
			Err:     err,
		}
	}

	return &handle{repo: repo, logger: a.logger}, nil
}

type handle struct {
	repo   *git.Repository
	logger *slog.Logger
}

// Changes enumerates per-file status entries, untracked files included.
func (h *handle) Changes(ctx context.Context) ([]usecase.Change, error) {
	_ = ctx
	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, &usecase.RepoError{
			Code:    usecase.RepoStatusFailed,
			Message: "cannot access working tree",
			Err:     err,
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, &usecase.RepoError{
			Code:    usecase.RepoStatusFailed,
			Message: "cannot enumerate file status",
			Err:     err,
		}
	}

	changes := make([]usecase.Change, 0, len(status))
	for _, fs := range status {
		changes = append(changes, usecase.Change{
			Index:         stagingFlags(fs.Staging),
			Worktree:      worktreeFlags(fs.Worktree),
			WorktreeDelta: fs.Worktree != git.Unmodified,
		})
	}
	return changes, nil
}

// stagingFlags maps an index-side status code. Untracked files are not
// staged, and conflicts are deliberately left uncounted.
func stagingFlags(code git.StatusCode) usecase.ChangeFlags {
	switch code {
	case git.Added:
		return usecase.ChangeNew
	case git.Modified:
		return usecase.ChangeModified
	case git.Deleted:
		return usecase.ChangeDeleted
	case git.Renamed, git.Copied:
		return usecase.ChangeRenamed
	default:
		return 0
	}
}

// worktreeFlags maps a worktree-side status code. Untracked counts as a new
// file on this side.
func worktreeFlags(code git.StatusCode) usecase.ChangeFlags {
	switch code {
	case git.Untracked:
		return usecase.ChangeNew
	case git.Modified:
		return usecase.ChangeModified
	case git.Deleted:
		return usecase.ChangeDeleted
	case git.Renamed, git.Copied:
		return usecase.ChangeRenamed
	default:
		return 0
	}
}

// Head resolves the checked-out branch. An unborn HEAD and a detached HEAD
// both yield BranchNone; any other failure is surfaced as an error.
func (h *handle) Head(ctx context.Context) (usecase.BranchRef, error) {
	_ = ctx
	ref, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return usecase.BranchRef{Kind: usecase.BranchNone}, nil
		}
		return usecase.BranchRef{}, &usecase.RepoError{
			Code:    usecase.RepoHeadFailed,
			Message: "cannot resolve HEAD",
			Err:     err,
		}
	}
	if !ref.Name().IsBranch() {
		return usecase.BranchRef{Kind: usecase.BranchNone}, nil
	}
	return usecase.BranchRef{Kind: usecase.BranchNamed, Name: ref.Name().Short()}, nil
}

// Divergence counts commits between HEAD and its configured remote-tracking
// reference. Every failure path here is expected to be degraded to a
// zero/zero divergence by the caller.
func (h *handle) Divergence(ctx context.Context) (usecase.Divergence, error) {
	_ = ctx
	headRef, err := h.repo.Head()
	if err != nil {
		return usecase.Divergence{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	if !headRef.Name().IsBranch() {
		return usecase.Divergence{}, errors.New("no branch checked out")
	}

	branch, err := h.repo.Branch(headRef.Name().Short())
	if err != nil {
		return usecase.Divergence{}, fmt.Errorf("branch config: %w", err)
	}
	if branch.Remote == "" || branch.Merge == "" {
		return usecase.Divergence{}, errors.New("no upstream configured")
	}

	upstreamName := plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())
	if branch.Remote == "." {
		// Local tracking branch.
		upstreamName = branch.Merge
	}
	upstreamRef, err := h.repo.Reference(upstreamName, true)
	if err != nil {
		return usecase.Divergence{}, fmt.Errorf("resolve upstream %s: %w", upstreamName, err)
	}

	ahead, behind, err := h.aheadBehind(headRef.Hash(), upstreamRef.Hash())
	if err != nil {
		return usecase.Divergence{}, err
	}
	return usecase.Divergence{Ahead: ahead, Behind: behind}, nil
}

// aheadBehind counts commits reachable from each tip but not the other,
// walking each side down to the merge bases.
func (h *handle) aheadBehind(local, upstream plumbing.Hash) (int, int, error) {
	if local == upstream {
		return 0, 0, nil
	}

	localCommit, err := h.repo.CommitObject(local)
	if err != nil {
		return 0, 0, fmt.Errorf("local commit: %w", err)
	}
	upstreamCommit, err := h.repo.CommitObject(upstream)
	if err != nil {
		return 0, 0, fmt.Errorf("upstream commit: %w", err)
	}

	bases, err := localCommit.MergeBase(upstreamCommit)
	if err != nil {
		return 0, 0, fmt.Errorf("merge base: %w", err)
	}
	stop := make([]plumbing.Hash, 0, len(bases))
	for _, base := range bases {
		stop = append(stop, base.Hash)
	}

	ahead, err := countExclusive(localCommit, stop)
	if err != nil {
		return 0, 0, err
	}
	behind, err := countExclusive(upstreamCommit, stop)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// countExclusive counts commits reachable from tip, not descending past any
// of the stop hashes.
func countExclusive(tip *object.Commit, stop []plumbing.Hash) (int, error) {
	count := 0
	iter := object.NewCommitPreorderIter(tip, nil, stop)
	err := iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk commits: %w", err)
	}
	return count, nil
}
