package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasflow/pkg/errors"
	"github.com/matzehuels/canvasflow/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	to      string // target format: "visual" or "canvas"; inferred when empty
	output  string // output file; stdout when empty
	fillIDs bool   // generate ids for nodes and edges that lack one
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a canvas to a visual graph or back",
		Long: `Convert a JSON Canvas document to the visual-editor graph format, or a visual
graph back to a canvas. The direction is inferred from the file extension:
.canvas files become visual graphs, anything else becomes a canvas.

Visual nodes are always written back as text nodes. Nodes of any other type
are reported so their content can be checked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "", "target format: visual, canvas (default: from file extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.fillIDs, "fill-ids", false, "generate ids for canvas nodes and edges that have none")
	_ = cmd.RegisterFlagCompletionFunc("to", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(pipeline.DirectionVisual), string(pipeline.DirectionCanvas)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, opts convertOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	dir := pipeline.DirectionForPath(input)
	if opts.to != "" {
		d, err := pipeline.ParseDirection(opts.to)
		if err != nil {
			return err
		}
		dir = d
	}
	if opts.output != "" {
		if err := errors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.ConvertWith(ctx, data, dir, pipeline.ConvertOptions{FillIDs: opts.fillIDs})
	if err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}

	if len(res.Assigned) > 0 {
		printInfo("Assigned %d id(s)", len(res.Assigned))
	}
	if len(res.Coerced) > 0 {
		printWarning("%d non-text node(s) written as text: %s", len(res.Coerced), strings.Join(res.Coerced, ", "))
	}

	if opts.output == "" {
		if _, err := c.Out.Write(append(res.Output, '\n')); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		prog.done("Converted " + input)
		return nil
	}

	if err := os.WriteFile(opts.output, append(res.Output, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Converted " + input)
	printSuccess("Converted to %s", dir)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, false)
	printFile(opts.output)
	return nil
}

// readInput validates and reads an input file.
func readInput(path string) ([]byte, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
