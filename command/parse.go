package command

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix marks a chat line as a bot command.
const Prefix = "!"

// Invocation is one parsed command line. Nick and Target are filled in by the
// session before routing: Target is the channel for public commands and the
// sender's nick for private ones.
type Invocation struct {
	ID     string
	Nick   string
	Target string
	Name   string
	Args   []string
}

// Parse splits a raw chat line into an Invocation. It reports false when the
// line is not prefixed with the command marker. The command token keeps its
// prefix and is lowercased; the remaining whitespace-separated tokens become
// positional arguments.
func Parse(raw string) (Invocation, bool) {
	if !strings.HasPrefix(raw, Prefix) {
		return Invocation{}, false
	}
	inv := Invocation{ID: uuid.NewString()}
	fields := strings.Fields(raw)
	if len(fields) > 0 {
		inv.Name = strings.ToLower(fields[0])
		inv.Args = fields[1:]
	}
	return inv, true
}
