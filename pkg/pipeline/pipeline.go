// Package pipeline provides the conversion and rendering pipeline for canvasflow.
//
// The CLI and any embedding program go through the same [Runner], so caching,
// hook emission, and error codes behave identically everywhere.
//
// # Stages
//
//  1. Convert: decode one format, map it with [convert], encode the other
//  2. Render: turn a canvas document into DOT and SVG artifacts
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Convert(ctx, data, pipeline.DirectionForPath(path))
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
//
// Rendering works on the persisted form, so visual-graph input is converted
// first:
//
//	doc, err := pipeline.DecodeDocument(data, path)
//	artifacts, hit, err := runner.Render(ctx, doc, pipeline.RenderOptions{
//	    Formats: []string{pipeline.FormatSVG},
//	})
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/canvasflow/pkg/cache"
	"github.com/matzehuels/canvasflow/pkg/errors"
)

// =============================================================================
// Directions
// =============================================================================

// Direction names the format a conversion produces.
type Direction string

const (
	// DirectionVisual converts a canvas document into a visual graph.
	DirectionVisual Direction = "visual"
	// DirectionCanvas converts a visual graph into a canvas document.
	DirectionCanvas Direction = "canvas"
)

// ParseDirection validates s as a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if err := ValidateDirection(d); err != nil {
		return "", err
	}
	return d, nil
}

// ValidateDirection checks that d is a known direction.
func ValidateDirection(d Direction) error {
	switch d {
	case DirectionVisual, DirectionCanvas:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidDirection,
		"invalid direction: %q (must be one of: visual, canvas)", d)
}

// DirectionForPath infers the conversion direction from an input file name.
// A .canvas file is converted to a visual graph; anything else is assumed to
// be a visual graph and converted to canvas.
func DirectionForPath(path string) Direction {
	if strings.EqualFold(filepath.Ext(path), errors.ExtCanvas) {
		return DirectionVisual
	}
	return DirectionCanvas
}

// =============================================================================
// Formats
// =============================================================================

// Format constants for render output.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatDOT: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options and Results
// =============================================================================

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	// Formats lists the artifacts to produce. Defaults to svg.
	Formats []string `json:"formats,omitempty"`
	// Detailed adds IDs and geometry to node labels.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh skips cache reads but still writes fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`
}

// SetDefaults fills unset fields.
func (o *RenderOptions) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
}

// Validate applies defaults and checks the formats.
func (o *RenderOptions) Validate() error {
	o.SetDefaults()
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *RenderOptions) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// ConvertOptions configures [Runner.ConvertWith].
type ConvertOptions struct {
	// FillIDs assigns generated ids to canvas nodes and edges that lack one.
	FillIDs bool `json:"fill_ids,omitempty"`
}

// ConvertResult is the output of [Runner.Convert].
type ConvertResult struct {
	// Direction is the format Output is encoded in.
	Direction Direction
	// Output is the encoded document or graph.
	Output []byte
	// Stats describes the converted content.
	Stats Stats
	// Coerced lists visual nodes of a non-text type that were written as
	// text nodes. Only set for DirectionCanvas.
	Coerced []string
	// Assigned lists ids generated because of ConvertOptions.FillIDs.
	Assigned []string
}

// Stats contains conversion statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Duration  time.Duration
}
