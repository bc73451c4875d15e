// Package provider is the data-acquisition boundary: it pulls raw spot and
// interest-rate history from the market-data service, imports manually
// exported workbooks, and gates live pulls behind a terminal-session check.
// Everything it produces is raw provider-named tabular data; normalization
// belongs to the return engine.
package provider

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "fxreturns/internal/errors"
)

// TerminalOpenEnv short-circuits the interactive acquisition gate. Scripted
// and CI runs set it to a boolean-ish value instead of answering the prompt.
const TerminalOpenEnv = "FX_TERMINAL_OPEN"

// Gate guards live acquisition behind a confirmation that the market-data
// terminal session is open and logged in. Pulling with a closed session
// produces empty history instead of an error, so the gate asks up front.
type Gate struct {
	in  io.Reader
	out io.Writer
}

// NewGate builds a gate reading answers from in and writing the prompt to
// out. Nil arguments default to stdin and stderr.
func NewGate(in io.Reader, out io.Writer) *Gate {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Gate{in: in, out: out}
}

// Confirm reports whether live acquisition may proceed. The environment
// variable wins over the prompt when set; an unrecognized value is a
// configuration error rather than a silent no.
func (g *Gate) Confirm() (bool, error) {
	if v, ok := os.LookupEnv(TerminalOpenEnv); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y":
			return true, nil
		case "0", "false", "no", "n":
			return false, nil
		default:
			return false, apperrors.NewConfigError(
				fmt.Sprintf("unrecognized %s value %q", TerminalOpenEnv, v), nil)
		}
	}

	fmt.Fprint(g.out, "Is the market-data terminal open and logged in? [y/N]: ")
	line, err := bufio.NewReader(g.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
