package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gnolang/fileflow/analyze"
)

const emptyValue = "-"

// FormatReport renders one report: a table of original and current values
// per domain, followed by the issues.
func FormatReport(report analyze.Report) string {
	var b strings.Builder

	title := report.File
	if report.Name != "" {
		title = fmt.Sprintf("%s (%s)", report.File, report.Name)
	}
	b.WriteString(fileStyle.Sprintf("==> %s\n", title))

	for _, dr := range report.Domains {
		b.WriteString(ruleStyle.Sprintf("%s", dr.Domain))
		b.WriteString(fmt.Sprintf(" [%d iterations, %d flow points]\n", dr.Iterations, dr.FlowPoints))

		tw := tabwriter.NewWriter(&b, 0, 8, 2, ' ', 0)
		for _, row := range dr.Rows {
			fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\t=>\t%s\n",
				row.FlowPoint, row.Name, row.Text, orEmpty(row.Original), orEmpty(row.Current))
		}
		_ = tw.Flush()
	}

	if len(report.Issues) > 0 {
		b.WriteString("\n")
		b.WriteString(GenerateFormattedIssue(report.Issues))
	}
	return b.String()
}

func orEmpty(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

// WriteJSON writes reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []analyze.Report) error {
	if reports == nil {
		reports = []analyze.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
