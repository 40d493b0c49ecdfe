package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasflow/pkg/errors"
	"github.com/matzehuels/canvasflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "svg", "dot"
	detailed bool     // show IDs and geometry in labels
	noCache  bool     // bypass the artifact cache entirely
	refresh  bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a canvas as an SVG or DOT diagram",
		Long: `Render a canvas as a node-link diagram. Visual-graph JSON input is converted
to a canvas first. SVG output is cached; use --no-cache or --refresh to skip it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Render.Formats)
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node IDs and geometry in labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	if opts.output != "" {
		if err := errors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	doc, err := pipeline.DecodeDocument(data, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Rendering "+filepath.Base(input), c.verbose)
	sp.Start()
	artifacts, cached, err := runner.Render(ctx, doc, pipeline.RenderOptions{
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(input, opts.output, opts.formats)
	for _, format := range opts.formats {
		if err := os.WriteFile(paths[format], artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	prog.done("Rendered " + input)
	printSuccess("Rendered %s", filepath.Base(input))
	printStats(len(doc.Nodes), len(doc.Edges), cached)
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a render format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format with an explicit output is written to exactly that path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
