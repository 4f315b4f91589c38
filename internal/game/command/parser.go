package command

import (
	"sort"
	"strings"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first token after the prefix, lowercased.
	Command string
	// Args are the remaining tokens.
	Args []string
}

// Splitter turns chat lines into commands using a prefix and a delimiter set.
type Splitter struct {
	prefix     string
	delimiters []string
}

// NewSplitter creates a Splitter.
//
// Precondition: prefix and every delimiter must be non-empty.
// Postcondition: delimiters are tried longest first, so ", " wins over ",".
func NewSplitter(prefix string, delimiters []string) *Splitter {
	ds := append([]string(nil), delimiters...)
	sort.SliceStable(ds, func(i, j int) bool { return len(ds[i]) > len(ds[j]) })
	return &Splitter{prefix: prefix, delimiters: ds}
}

// Parse splits a line addressed to the bot.
//
// Postcondition: ok is false if line does not start with the prefix or holds
// nothing after it. Empty tokens between adjacent delimiters are dropped.
func (s *Splitter) Parse(line string) (ParseResult, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, s.prefix) {
		return ParseResult{}, false
	}
	tokens := s.Tokens(line[len(s.prefix):])
	if len(tokens) == 0 {
		return ParseResult{}, false
	}
	result := ParseResult{Command: strings.ToLower(tokens[0])}
	if len(tokens) > 1 {
		result.Args = tokens[1:]
	}
	return result, true
}

// Tokens splits text on any of the delimiters.
func (s *Splitter) Tokens(text string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(text); {
		d := s.delimiterAt(text, i)
		if d == 0 {
			i++
			continue
		}
		if i > start {
			tokens = append(tokens, text[start:i])
		}
		i += d
		start = i
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// delimiterAt returns the length of the delimiter starting at text[i], or 0.
func (s *Splitter) delimiterAt(text string, i int) int {
	for _, d := range s.delimiters {
		if strings.HasPrefix(text[i:], d) {
			return len(d)
		}
	}
	return 0
}
