package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vbagdi/ResearchCode/domain"
)

const DefaultTopN = 10

// PrintTop renders the n highest ranked tools as a table.
func PrintTop(w io.Writer, tools []*domain.Candidate, n int) {
	if n > len(tools) {
		n = len(tools)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Tool", "Score", "Stars", "Updated"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, tool := range tools[:n] {
		table.Append([]string{
			fmt.Sprint(i + 1),
			tool.Name,
			fmt.Sprint(tool.Score()),
			optionalInt(tool.Stars, ""),
			optionalInt(tool.DaysSinceUpdate, "d ago"),
		})
	}
	table.Render()
}

func optionalInt(v *int, suffix string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v%v", *v, suffix)
}
