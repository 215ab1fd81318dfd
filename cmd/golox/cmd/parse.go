package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file or expression and dump the AST",
	Long: `Parse a Lox program and print the resulting syntax tree, one
top-level statement per line, in s-expression form.

Examples:
  # Dump the AST of a script file
  golox parse script.lox

  # Dump the AST of inline source
  golox parse -e "print 1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	hadError := false
	for _, e := range p.LexerErrors() {
		fmt.Fprintln(os.Stderr, e.Error())
		hadError = true
	}
	for _, e := range p.Errors() {
		fmt.Fprintln(os.Stderr, e.Error())
		hadError = true
	}
	if hadError {
		exitCode = lox.ExDataErr
		return nil
	}

	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}
