package lox

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// historyFile is the name of the REPL history file in the user's home
// directory.
const historyFile = ".golox_history"

// RunPrompt runs the interactive read-eval-print loop until end of input.
//
// Each line is fed through the full pipeline. The compile-time error flag
// is cleared after every line so a typo does not poison the session; the
// runtime error flag persists but never terminates the loop. The REPL
// always exits cleanly regardless of what user programs did.
func (l *Lox) RunPrompt() {
	prompt := liner.NewLiner()
	defer prompt.Close()

	prompt.SetCtrlCAborts(true)

	historyPath := l.loadHistory(prompt)
	defer l.saveHistory(prompt, historyPath)

	for {
		line, err := prompt.Prompt("> ")
		switch err {
		case nil:
			if strings.TrimSpace(line) != "" {
				prompt.AppendHistory(line)
			}
			l.Run(line)
			l.ClearError()
		case liner.ErrPromptAborted:
			// Ctrl-C: discard the pending line, keep the session.
			continue
		case io.EOF:
			fmt.Fprintln(l.stdout, "Bye!")
			return
		default:
			fmt.Fprintf(l.stderr, "Error reading input: %v\n", err)
			return
		}
	}
}

// loadHistory seeds the prompt with persisted history and returns the
// history path, or an empty string when no home directory is available.
func (l *Lox) loadHistory(prompt *liner.State) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, historyFile)
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prompt.ReadHistory(f)
	}
	return path
}

// saveHistory persists the prompt history. Failures are silent: history
// is a convenience, not part of the session contract.
func (l *Lox) saveHistory(prompt *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	prompt.WriteHistory(f)
}
