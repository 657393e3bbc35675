package domains

import "strings"

// Command is a parsed flow point text: the command name and its operands,
// with option flags removed.
type Command struct {
	Name     string
	Operands []string
}

// ParseCommand splits text into a command. Flags (words starting with "-")
// are dropped. An empty text yields a zero Command.
func ParseCommand(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}
	}
	cmd := Command{Name: fields[0]}
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") {
			continue
		}
		cmd.Operands = append(cmd.Operands, f)
	}
	return cmd
}

