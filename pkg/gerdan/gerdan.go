// Package gerdan turns bead patterns into printable documents and preview
// thumbnails.
//
// It wires the pipeline stages together: a pattern.Spec is assembled into
// a dense grid, its bead statistics are collected, the page layout is
// planned for the configured page, and the result is handed to the PDF or
// preview renderer.
//
// Main Functions:
//
// - GeneratePDF: renders the full pattern document to a file
// - CreatePreview: renders a JPEG thumbnail
// - Statistics: validates a pattern and counts its beads
//
// Every call works on its own copies of the data, so concurrent calls for
// different patterns are safe.
package gerdan

import (
	"fmt"

	"github.com/gerdanjs/gerdan/pkg/document"
	"github.com/gerdanjs/gerdan/pkg/layout"
	"github.com/gerdanjs/gerdan/pkg/pattern"
	"github.com/gerdanjs/gerdan/pkg/preview"
)

// Prepare assembles spec and plans its pages for cfg without drawing
// anything. Unset fields of cfg fall back to document.DefaultConfig.
func Prepare(spec pattern.Spec, author string, cfg document.Config) (document.Input, error) {
	grid, err := pattern.Assemble(spec)
	if err != nil {
		return document.Input{}, fmt.Errorf("failed to assemble grid: %w", err)
	}

	cfg = cfg.WithDefaults()
	plan, err := layout.PlanPage(cfg.Page, spec.Width, spec.Height)
	if err != nil {
		return document.Input{}, fmt.Errorf("failed to plan layout: %w", err)
	}

	return document.Input{
		Spec:       spec,
		Author:     author,
		Grid:       grid,
		Statistics: pattern.CollectStatistics(spec),
		Layout:     plan,
	}, nil
}

// GeneratePDF renders the pattern document for spec to path. Nothing is
// left at path if it fails.
func GeneratePDF(path string, spec pattern.Spec, author string, cfg document.Config) error {
	cfg = cfg.WithDefaults()
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}

	in, err := Prepare(spec, author, cfg)
	if err != nil {
		return err
	}
	cfg.Logger.Debug("generating pattern document",
		"pattern", spec.Name,
		"path", path,
		"grid_pages", in.Layout.PageCount(spec.Height),
		"colors", len(in.Statistics.Colors))

	if err := document.RenderFile(path, in, cfg); err != nil {
		return fmt.Errorf("failed to render %q: %w", spec.Name, err)
	}
	return nil
}

// CreatePreview renders spec as a JPEG with scale image pixels per bead.
// A scale of 0 uses preview.DefaultScale.
func CreatePreview(spec pattern.Spec, scale int) ([]byte, error) {
	return CreatePreviewWithOptions(spec, preview.Options{Scale: scale, Format: preview.JPEG})
}

// CreatePreviewWithOptions renders spec as opts describe.
func CreatePreviewWithOptions(spec pattern.Spec, opts preview.Options) ([]byte, error) {
	grid, err := pattern.Assemble(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble grid: %w", err)
	}
	data, err := preview.RenderWithOptions(grid, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview of %q: %w", spec.Name, err)
	}
	Logger().Debug("rendered preview", "pattern", spec.Name, "bytes", len(data))
	return data, nil
}

// Statistics validates spec and returns its bead counts.
func Statistics(spec pattern.Spec) (pattern.Statistics, error) {
	if err := spec.Validate(); err != nil {
		return pattern.Statistics{}, err
	}
	return pattern.CollectStatistics(spec), nil
}
