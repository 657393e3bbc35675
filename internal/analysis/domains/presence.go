package domains

import (
	"fmt"

	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
	tt "github.com/gnolang/fileflow/internal/types"
)

// PresenceRule is the rule name of issues reported by PresenceIssues.
const PresenceRule = "path-presence"

// Presence tracks which paths exist after each flow point. Paths never
// touched by the script are Top (unknown).
type Presence struct{}

func (Presence) Initial() lattice.State { return lattice.State{} }

func (Presence) Transfer(fp *cfg.FlowPoint, in lattice.State) lattice.State {
	cmd := ParseCommand(fp.Text())
	switch cmd.Name {
	case "mkdir", "touch":
		out := lattice.CloneState(in)
		for _, p := range cmd.Operands {
			lattice.SetValue(out, p, lattice.Present)
		}
		return out
	case "rm", "rmdir":
		out := lattice.CloneState(in)
		for _, p := range cmd.Operands {
			lattice.SetValue(out, p, lattice.Absent)
		}
		return out
	case "cp":
		if len(cmd.Operands) < 2 {
			return in
		}
		out := lattice.CloneState(in)
		lattice.SetValue(out, cmd.Operands[len(cmd.Operands)-1], lattice.Present)
		return out
	case "mv":
		if len(cmd.Operands) < 2 {
			return in
		}
		out := lattice.CloneState(in)
		for _, src := range cmd.Operands[:len(cmd.Operands)-1] {
			lattice.SetValue(out, src, lattice.Absent)
		}
		lattice.SetValue(out, cmd.Operands[len(cmd.Operands)-1], lattice.Present)
		return out
	default:
		return in
	}
}

func (Presence) Merge(a, b lattice.State) lattice.State { return lattice.JoinStates(a, b) }

func (Presence) Equal(a, b lattice.State) bool { return lattice.StateEqual(a, b) }

// requiredPaths returns the operands of cmd that must exist for it to succeed.
func requiredPaths(cmd Command) []string {
	switch cmd.Name {
	case "rm", "rmdir", "cd", "cat":
		return cmd.Operands
	case "cp", "mv":
		if len(cmd.Operands) < 2 {
			return nil
		}
		return cmd.Operands[:len(cmd.Operands)-1]
	default:
		return nil
	}
}

// PresenceIssues reports commands among fps that use a path which is not
// definitely present on entry, reading the original values stored under key.
// Flow points never analyzed are skipped.
func PresenceIssues(fps []*cfg.FlowPoint, key *cfg.Key[lattice.State]) []tt.Issue {
	var issues []tt.Issue
	for _, fp := range fps {
		in, ok := cfg.OriginalDomain(fp, key)
		if !ok {
			continue
		}
		cmd := ParseCommand(fp.Text())
		for _, p := range requiredPaths(cmd) {
			issue := tt.Issue{
				Rule:      PresenceRule,
				FlowPoint: fp.ID(),
				Text:      fp.Text(),
			}
			switch lattice.GetValue(in, p) {
			case lattice.Present, lattice.Bottom:
				continue
			case lattice.Absent:
				issue.Severity = tt.SeverityError
				issue.Message = fmt.Sprintf("%s: %s does not exist on any path", cmd.Name, p)
			case lattice.Maybe:
				issue.Severity = tt.SeverityWarning
				issue.Message = fmt.Sprintf("%s: %s does not exist on every path", cmd.Name, p)
				issue.Note = "create it on all branches before use"
			default:
				issue.Severity = tt.SeverityInfo
				issue.Message = fmt.Sprintf("%s: %s is never created by the script", cmd.Name, p)
			}
			issues = append(issues, issue)
		}
	}
	return issues
}
