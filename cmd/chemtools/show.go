package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/quality"
	"github.com/vbagdi/ResearchCode/report"
	"github.com/vbagdi/ResearchCode/workflow"
)

var ShowWorkflow string

// toolDetail pairs a tool with its score breakdown.
type toolDetail struct {
	Rank      int                `json:"rank"`
	Tool      *domain.Candidate  `json:"tool"`
	Breakdown quality.Components `json:"breakdown"`
}

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [tool-name]...",
		Short: "Inspect the discovered artifact",
		Long:  "With tool names, emits each tool with its score breakdown.  Without, prints the top ranked tools, optionally limited to one workflow",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			artifact, err := report.Read(Output)
			if err != nil {
				log.Fatalf("main: %s", err)
			}

			if len(args) > 0 {
				details, err := findTools(artifact.Tools, args)
				if err != nil {
					log.Fatalf("main: %s", err)
				}
				if err := emitJSON(details); err != nil {
					log.Fatalf("main: %s", err)
				}
				return
			}

			tools := artifact.Tools
			if ShowWorkflow != "" {
				if tools, err = workflowTools(tools, ShowWorkflow); err != nil {
					log.Fatalf("main: %s", err)
				}
			}
			report.PrintTop(os.Stdout, tools, TopN)
		},
	}

	showCmd.Flags().StringVarP(&Output, "input", "i", Output, "Discovered artifact path")
	showCmd.Flags().StringVarP(&ShowWorkflow, "workflow", "w", ShowWorkflow, "Only list tools in this workflow")
	showCmd.Flags().IntVarP(&TopN, "top", "n", TopN, "Number of top ranked tools to print")

	return showCmd
}

// findTools looks names up under dedupe normalization.  Every name must be
// present.
func findTools(tools []*domain.Candidate, names []string) ([]toolDetail, error) {
	details := make([]toolDetail, 0, len(names))
	for _, name := range names {
		key := domain.NormalizeDedupe(name)
		found := false
		for i, tool := range tools {
			if domain.NormalizeDedupe(tool.Name) == key {
				details = append(details, toolDetail{Rank: i + 1, Tool: tool, Breakdown: quality.Breakdown(tool)})
				found = true
				break
			}
		}
		if !found {
			return nil, errNoSuchTool(name)
		}
	}
	return details, nil
}

// workflowTools filters tools to the members of the named workflow,
// preserving rank order.
func workflowTools(tools []*domain.Candidate, name string) ([]*domain.Candidate, error) {
	def, ok := workflow.Lookup(name)
	if !ok {
		return nil, errNoSuchWorkflow(name)
	}
	filtered := []*domain.Candidate{}
	for _, tool := range tools {
		if def.Matches(tool) {
			filtered = append(filtered, tool)
		}
	}
	return filtered, nil
}
