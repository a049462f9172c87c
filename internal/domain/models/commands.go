package models

import "strings"

// CommandType enumerates the manager commands accepted over WhatsApp.
type CommandType string

const (
	CommandStats      CommandType = "stats"
	CommandOccupancy  CommandType = "occupation"
	CommandArrivals   CommandType = "arrivees"
	CommandDepartures CommandType = "departs"
	CommandUnpaid     CommandType = "impayes"
	CommandHelp       CommandType = "aide"
	CommandUnknown    CommandType = "unknown"
)

// KnownCommands lists every routable command, in help order.
var KnownCommands = []CommandType{
	CommandStats,
	CommandOccupancy,
	CommandArrivals,
	CommandDepartures,
	CommandUnpaid,
	CommandHelp,
}

var commandAliases = map[string]CommandType{
	"stats":      CommandStats,
	"bilan":      CommandStats,
	"occupation": CommandOccupancy,
	"taux":       CommandOccupancy,
	"arrivees":   CommandArrivals,
	"arrivées":   CommandArrivals,
	"departs":    CommandDepartures,
	"départs":    CommandDepartures,
	"sorties":    CommandDepartures,
	"impayes":    CommandUnpaid,
	"impayés":    CommandUnpaid,
	"aide":       CommandHelp,
	"help":       CommandHelp,
}

// Command represents a parsed manager instruction.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// IsCommand reports whether message looks like a slash command.
func IsCommand(message string) bool {
	return strings.HasPrefix(strings.TrimSpace(message), "/")
}

// ParseCommand derives a Command from free-form text.
func ParseCommand(message string) Command {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(message)))
	cmd := Command{Type: CommandUnknown, Raw: message}
	if len(tokens) == 0 {
		return cmd
	}

	if t, ok := commandAliases[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = t
	}
	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
