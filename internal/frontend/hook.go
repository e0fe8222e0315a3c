package frontend

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
)

// Hook adapts the orchestrator to the packaging-system build-hook contract:
// the host build passes a target version string and a bag of build data,
// neither of which influences the frontend build. Side effects are the build
// output directory and the transcript log; a failed build surfaces as a
// *BuildError.
type Hook struct {
	orchestrator *Orchestrator
}

// NewHook creates a Hook for the package rooted at root.
func NewHook(cfg *config.Config, root string, opts ...Option) *Hook {
	return &Hook{orchestrator: New(cfg, root, opts...)}
}

// Initialize performs the frontend build. version and buildData are part of
// the hook interface shape and deliberately unused.
func (h *Hook) Initialize(ctx context.Context, version string, buildData map[string]any) error {
	_ = buildData
	if version != "" {
		slog.Debug("Packaging hook invoked", logfields.Version(version))
	}
	_, err := h.orchestrator.Run(ctx)
	return err
}
