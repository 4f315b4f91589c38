package handlers

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/dicebot/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebot/internal/game/dice"
)

const prompt = telnet.BrightCyan + "dice> " + telnet.Reset

const welcomeBanner = telnet.Bold + telnet.BrightCyan + "dicebot" + telnet.Reset + `
Roll with ` + telnet.Green + `%sroll 2d6 + 3` + telnet.Reset + `. Type ` + telnet.Green + `%shelp` + telnet.Reset + ` for commands.`

// RenderResult renders a completed evaluation with the total highlighted.
//
// Postcondition: telnet.StripANSI(RenderResult(r)) == r.String().
func RenderResult(r dice.Result) string {
	plain := r.String()
	total := strconv.Itoa(r.Total)
	return telnet.Colorize(telnet.Bold+telnet.Green, total) + strings.TrimPrefix(plain, total)
}

// RenderError renders an evaluation error verbatim in red.
func RenderError(err error) string {
	return telnet.Colorize(telnet.Red, err.Error())
}

// RenderNotice renders an informational line.
func RenderNotice(text string) string {
	return telnet.Colorize(telnet.Yellow, text)
}
