// Package command provides the command registry, line splitter, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryDice   = "dice"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to session handlers.
const (
	HandlerRoll = "roll"
	HandlerHelp = "help"
	HandlerQuit = "quit"
)

// Command defines a user-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text listed by the help command.
	Help string
	// Usage is the long form shown by "help <command>".
	Usage string
	// Category groups the command (dice, system).
	Category string
	// Handler maps to the session handler that executes the command.
	Handler string
}

// BuiltinCommands returns all built-in commands for the bot.
func BuiltinCommands() []Command {
	return []Command{
		{
			Name:     "roll",
			Aliases:  []string{"r"},
			Help:     "Roll dice",
			Usage:    "roll <term> [<op> <term>]...\n  term: NdF (N dice of F faces) or an integer\n  op:   + - *  (applied left to right)\n  e.g.  roll 2d6 + 3",
			Category: CategoryDice,
			Handler:  HandlerRoll,
		},
		{Name: "help", Aliases: []string{"h", "?"}, Help: "Show available commands", Usage: "help [command]", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Disconnect", Usage: "quit", Category: CategorySystem, Handler: HandlerQuit},
	}
}
