package command

import (
	"fmt"
	"sort"
	"strings"
)

// maxSuggestionDistance bounds the edit distance for "did you mean" hints.
const maxSuggestionDistance = 3

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Suggest returns the command name or alias closest to input, if any lies
// within maxSuggestionDistance edits.
func (r *Registry) Suggest(input string) (string, bool) {
	best, bestDist := "", maxSuggestionDistance+1
	consider := func(name string) {
		if d := levenshtein(input, name); d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}
	for name := range r.commands {
		consider(name)
	}
	for alias := range r.aliases {
		consider(alias)
	}
	return best, bestDist <= maxSuggestionDistance
}

// HelpText renders the command listing, or the usage of a single command when
// topic is non-empty.
func (r *Registry) HelpText(prefix, topic string) string {
	if topic != "" {
		cmd, ok := r.Resolve(strings.ToLower(topic))
		if !ok {
			if s, found := r.Suggest(strings.ToLower(topic)); found {
				return fmt.Sprintf("No command %q. Did you mean %q?", topic, s)
			}
			return fmt.Sprintf("No command %q.", topic)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s%s: %s\n", prefix, cmd.Name, cmd.Help)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&b, "aliases: %s\n", strings.Join(cmd.Aliases, ", "))
		}
		b.WriteString(cmd.Usage)
		return b.String()
	}

	byCategory := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		byCategory[cmd.Category] = append(byCategory[cmd.Category], cmd)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:", c)
		for _, cmd := range byCategory[c] {
			fmt.Fprintf(&b, "\n  %s%-6s %s", prefix, cmd.Name, cmd.Help)
		}
	}
	fmt.Fprintf(&b, "\nType %shelp <command> for details.", prefix)
	return b.String()
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
