package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/gnolang/fileflow/internal/types"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiBlue, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

const issueTemplate = `{{header .Rule .Severity -}}
{{location .Filename .FlowPoint .Text}}
{{message .Message}}
{{- if .Note }}
{{note .Note}}
{{- end }}
`

var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"header":   header,
	"location": location,
	"message":  message,
	"note":     note,
}).Parse(issueTemplate))

// IssueData is the view of an issue rendered by the issue template.
type IssueData struct {
	Rule      string
	Severity  string
	Filename  string
	FlowPoint int
	Text      string
	Message   string
	Note      string
}

// GenerateFormattedIssue formats a slice of issues into a human-readable string.
func GenerateFormattedIssue(issues []tt.Issue) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue))
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildIssue(issue tt.Issue) string {
	data := IssueData{
		Rule:      issue.Rule,
		Severity:  issue.Severity.String(),
		Filename:  issue.Filename,
		FlowPoint: issue.FlowPoint,
		Text:      issue.Text,
		Message:   issue.Message,
		Note:      issue.Note,
	}

	var buf bytes.Buffer
	if err := issueTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string) string {
	var endString string
	switch severity {
	case "ERROR":
		endString = errorStyle.Sprint("error: ")
	case "WARNING":
		endString = warningStyle.Sprint("warning: ")
	case "INFO":
		endString = infoStyle.Sprint("info: ")
	}
	return endString + ruleStyle.Sprintf("%s\n", rule)
}

func location(filename string, flowPoint int, text string) string {
	endString := lineStyle.Sprint(" --> ")
	if filename != "" {
		endString += fileStyle.Sprintf("%s:", filename)
	}
	return endString + fileStyle.Sprintf("#%d", flowPoint) + fmt.Sprintf(" (%s)", text)
}

func message(msg string) string {
	return lineStyle.Sprint("  | ") + messageStyle.Sprint(msg)
}

func note(n string) string {
	return lineStyle.Sprint("  = ") + noteStyle.Sprint("note: ") + n
}
