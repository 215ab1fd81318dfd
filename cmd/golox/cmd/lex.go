package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression",
	Long: `Tokenize (lex) a Lox program and print the resulting tokens.

This command is useful for debugging the scanner and understanding how
Lox source code is tokenized.

Examples:
  # Tokenize a script file
  golox lex script.lox

  # Tokenize inline source with positions
  golox lex --show-pos -e "var answer = 42;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	tokens := l.ScanTokens()

	logrus.WithFields(logrus.Fields{
		"file":   filename,
		"tokens": len(tokens),
	}).Debug("tokenized")

	for _, tok := range tokens {
		printToken(tok)
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		exitCode = lox.ExDataErr
	}
	return nil
}

func printToken(tok lexer.Token) {
	output := fmt.Sprintf("[%-10s]", tok.Type)

	if tok.Type == lexer.EOF {
		output += " EOF"
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
