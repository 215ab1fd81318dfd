package cmd

import (
	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline source.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate inline source
  golox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file":  filename,
		"bytes": len(source),
	}).Debug("executing")

	engine := lox.New()
	engine.Run(source)
	exitCode = engine.ExitCode()
	return nil
}
