package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose  bool
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "Lox interpreter",
	Long: `golox is a Go implementation of the Lox scripting language.

Lox is a small dynamically-typed, class-based language with first-class
functions, closures, and lexical scoping. golox is a tree-walking
interpreter: source text is scanned, parsed, resolved, and evaluated
directly.

Run with a script path to execute a file, or with no arguments to start
an interactive prompt.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	RunE: runRoot,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
}

// runRoot implements the classic interpreter command line: no arguments
// starts the REPL, one argument runs a script, anything else is a usage
// error (exit code 64).
func runRoot(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		engine := lox.New()
		engine.RunPrompt()
		exitCode = lox.ExOK
	case 1:
		engine := lox.New()
		logrus.WithField("file", args[0]).Debug("running script")
		if err := engine.RunFile(args[0]); err != nil {
			return err
		}
		exitCode = engine.ExitCode()
	default:
		fmt.Println("Usage: golox [script]")
		exitCode = lox.ExUsage
	}
	return nil
}

// readSource resolves the shared --eval/file input convention used by the
// run, lex and parse subcommands.
func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
