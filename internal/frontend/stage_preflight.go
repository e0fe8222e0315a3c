package frontend

import "context"

// stagePreflight notes whether a previous run left a build output directory
// or a dependency cache behind. Purely observational.
func stagePreflight(_ context.Context, bs *BuildState) error {
	o := bs.Orchestrator

	o.log.Msg("Checking if frontend has already been built...", 0)
	if dirExists(o.paths.OutputDir) {
		o.log.Msg("Found build directory", 2)
	}

	o.log.Msg("Checking if node_modules exists...", 0)
	if dirExists(o.paths.ModulesDir) {
		o.log.Msg("Found node_modules directory", 2)
	}
	return nil
}
