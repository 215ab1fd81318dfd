package cmd

import (
	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive prompt",
	Long: `Start the Lox read-eval-print loop.

Bindings persist across lines, so functions and variables defined at the
prompt stay available. End the session with Ctrl-D.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		engine := lox.New()
		engine.RunPrompt()
		exitCode = lox.ExOK
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
