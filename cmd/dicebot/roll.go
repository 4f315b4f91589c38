package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dicebot/internal/game/command"
	"github.com/cory-johannsen/dicebot/internal/game/dice"
)

var rollCmd = &cobra.Command{
	Use:   "roll [term] [op term]...",
	Short: "Evaluate one dice sequence and print the result",
	Long: `Evaluates the arguments as one dice sequence and prints
"<total> (<trace>)". Arguments are split on the configured delimiters, so
"dicebot roll 2d6,+,3" and "dicebot roll '2d6 + 3'" are equivalent.
An empty sequence prints nothing.`,
	Example: `  dicebot roll 2d6 + 3
  dicebot roll 4d6 '*' 2 --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := newEvaluator(cfg.Dice, logger)
		if err != nil {
			return err
		}
		out, err := runRoll(ev, command.NewSplitter(cfg.Bot.Prefix, cfg.Bot.Delimiters), args)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

// runRoll tokenizes args and evaluates them; "" means no output.
func runRoll(ev *dice.Evaluator, splitter *command.Splitter, args []string) (string, error) {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, splitter.Tokens(arg)...)
	}
	res, ok, err := ev.Evaluate(tokens)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return res.String(), nil
}
