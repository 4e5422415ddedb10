package app

import (
	"log/slog"

	"github.com/arumata/gitline/internal/adapters/config"
	"github.com/arumata/gitline/internal/adapters/gitrepo"
	"github.com/arumata/gitline/internal/usecase"
)

// NewDefaultDependencies creates dependencies with real adapters.
func NewDefaultDependencies(logger *slog.Logger) *usecase.Dependencies {
	if logger == nil {
		panic("default dependencies require logger")
	}
	return &usecase.Dependencies{
		Repository: gitrepo.New(logger),
		Config:     config.New(logger),
	}
}
