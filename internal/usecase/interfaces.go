package usecase

import "context"

// Dependencies represents all external dependencies needed by use cases
type Dependencies struct {
	Repository RepositoryPort
	Config     ConfigPort
}

// Ports define the interfaces that use cases need (hexagonal architecture)

// RepositoryPort opens repositories on disk.
type RepositoryPort interface {
	// Open opens the repository at path. Bare repositories are rejected.
	Open(ctx context.Context, path string) (RepoHandle, error)
}

// RepoHandle is a read-only view of one opened repository.
type RepoHandle interface {
	// Changes enumerates the per-file status entries of the working tree,
	// including untracked files.
	Changes(ctx context.Context) ([]Change, error)

	// Head resolves the checked-out branch. Unborn and detached HEAD are
	// reported as BranchNone, not as errors.
	Head(ctx context.Context) (BranchRef, error)

	// Divergence counts commits ahead of and behind the configured
	// upstream. A missing upstream is an error; the caller decides how to
	// degrade.
	Divergence(ctx context.Context) (Divergence, error)
}

// ConfigPort defines configuration operations needed by use cases
type ConfigPort interface {
	Load(ctx context.Context, path string) (ConfigFile, error)
}
