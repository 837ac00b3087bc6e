package core

import "strings"

// CommandPrefix marks message text as a command invocation.
const CommandPrefix = "/"

// Command is a parsed "/name args" invocation.
type Command struct {
	Name string
	Args string
}

// ParseCommand extracts the command name and arguments from message text.
// It handles "/command", "/command args", and "/command@botname args".
// Runs of whitespace between arguments collapse to a single space. The
// second result is false when the text is not a command at all.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, CommandPrefix) {
		return Command{}, false
	}

	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], CommandPrefix)

	// Strip @botname suffix.
	if at := strings.Index(name, "@"); at != -1 {
		name = name[:at]
	}

	return Command{
		Name: name,
		Args: strings.Join(fields[1:], " "),
	}, true
}
