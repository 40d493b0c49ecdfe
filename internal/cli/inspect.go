package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasflow/pkg/canvas"
	"github.com/matzehuels/canvasflow/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a canvas and report structural issues",
		Long: `Print node counts by type and edge count, then list issues such as duplicate
IDs or edges pointing at missing nodes. Issues never block conversion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			doc, err := pipeline.DecodeDocument(data, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			issues := summarize(doc, args[0])
			if strict && len(issues) > 0 {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")
	return cmd
}

// summarize prints the document summary and returns its lint issues.
func summarize(doc canvas.Document, name string) []canvas.Issue {
	printTitle(name)

	counts := countByType(doc)
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)

	printKeyValue("nodes", StyleNumber.Render(strconv.Itoa(len(doc.Nodes))))
	for _, t := range types {
		printDetail("%-10s %d", t, counts[t])
	}
	printKeyValue("edges", StyleNumber.Render(strconv.Itoa(len(doc.Edges))))

	issues := canvas.Validate(doc)
	if len(issues) == 0 {
		printSuccess("No issues")
		return nil
	}
	for _, is := range issues {
		printWarning("%s", is)
	}
	printInfo("%d issue(s)", len(issues))
	return issues
}

// countByType counts nodes per type; an empty type is reported as "(none)".
func countByType(doc canvas.Document) map[string]int {
	counts := make(map[string]int)
	for _, n := range doc.Nodes {
		t := string(n.Type)
		if t == "" {
			t = "(none)"
		}
		counts[t]++
	}
	return counts
}
