package usecase

import (
	"context"
	"errors"
	"log/slog"
)

// Run executes the status pipeline: open the repository, classify its
// changes, resolve the branch, compute upstream divergence, and compose the
// summary line.
//
// Divergence failures (typically: no upstream configured) degrade to a
// zero/zero result. Every other failure aborts before composition so that no
// partial line is ever produced.
func Run(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger) (string, error) {
	if deps == nil || deps.Repository == nil {
		return "", errors.New("repository dependency not available")
	}

	repo, err := deps.Repository.Open(ctx, cfg.GitDir)
	if err != nil {
		return "", err
	}

	changes, err := repo.Changes(ctx)
	if err != nil {
		return "", err
	}
	index, worktree := ClassifyChanges(changes)

	branch, err := repo.Head(ctx)
	if err != nil {
		return "", err
	}

	div, err := repo.Divergence(ctx)
	if err != nil {
		logger.Debug("No upstream divergence available", "error", err)
		div = Divergence{}
	}

	return ComposeSummary(branch.Display(), div, index, worktree, cfg.Mode(), cfg.Symbols), nil
}
