// Package project runs the whole analysis of one project: load its ASTs,
// index them and run the configured detectors.
package project

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/Cyfrin/aderyn-sub000/internal/config"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/loader"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

var log = commonlog.GetLogger("aderyn.project")

type Result struct {
	Workspace *workspace.Workspace
	Report    *detect.Report
}

// Analyze loads the sources named by cfg and runs the selected detectors
// over them. The report is not filtered by severity.
func Analyze(ctx context.Context, cfg *config.Config) (*Result, error) {
	detectors, err := cfg.Detectors()
	if err != nil {
		return nil, err
	}

	units, err := loader.LoadPaths(ctx, cfg.Root, cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to load ASTs: %w", err)
	}
	if len(units) == 0 {
		log.Warningf("no source units found under %s in %v", cfg.Root, cfg.Sources)
	}

	ws := workspace.Build(units...)
	rep, err := detect.Run(ctx, ws, detectors)
	if err != nil {
		return nil, err
	}
	return &Result{Workspace: ws, Report: rep}, nil
}
