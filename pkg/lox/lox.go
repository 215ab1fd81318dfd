// Package lox provides the embedding API for the Lox interpreter: a
// pipeline that scans, parses, resolves and evaluates source text, with
// the error bookkeeping a host needs between runs.
package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/semantic"
)

// Conventional sysexits codes used by the CLI.
const (
	ExOK       = 0  // clean run
	ExUsage    = 64 // command line usage error
	ExDataErr  = 65 // compile-time error in the input
	ExSoftware = 70 // runtime error during evaluation
)

// Lox is one interpreter session. The global environment persists across
// Run calls, which is what lets REPL lines build on each other. The two
// error flags are sticky: HadError gates the pipeline within a run and is
// cleared between REPL lines; HadRuntimeError persists for the session.
type Lox struct {
	interpreter     *interp.Interpreter
	stdout          io.Writer
	stderr          io.Writer
	hadError        bool
	hadRuntimeError bool
}

// Option is a function that configures a Lox session.
type Option func(*Lox)

// WithStdout redirects program output (the print statement).
func WithStdout(w io.Writer) Option {
	return func(l *Lox) {
		l.stdout = w
	}
}

// WithStderr redirects diagnostic output.
func WithStderr(w io.Writer) Option {
	return func(l *Lox) {
		l.stderr = w
	}
}

// New creates an interpreter session. Output defaults to the process
// standard streams.
func New(opts ...Option) *Lox {
	l := &Lox{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.interpreter = interp.New(l.stdout)
	return l
}

// HadError reports whether any compile-time error (scanner, parser or
// resolver) has been reported since the flag was last cleared.
func (l *Lox) HadError() bool {
	return l.hadError
}

// HadRuntimeError reports whether any runtime error has been reported in
// this session.
func (l *Lox) HadRuntimeError() bool {
	return l.hadRuntimeError
}

// ClearError clears the compile-time error flag. The REPL calls this
// between lines; the runtime flag is deliberately left set.
func (l *Lox) ClearError() {
	l.hadError = false
}

// ExitCode maps the session's error flags to a process exit code.
// Compile-time errors take precedence over runtime errors.
func (l *Lox) ExitCode() int {
	switch {
	case l.hadError:
		return ExDataErr
	case l.hadRuntimeError:
		return ExSoftware
	default:
		return ExOK
	}
}

// Run feeds one source string through the full pipeline. Each stage
// surfaces as many errors as it can. The parser runs over the whole input
// even when the scanner reported errors; scanner and parser errors then
// gate the resolver, and resolver errors gate the evaluator, so the
// evaluator never sees a program that failed to scan, parse or resolve.
func (l *Lox) Run(source string) {
	lx := lexer.New(source)
	p := parser.New(lx)
	program := p.ParseProgram()

	for _, err := range p.LexerErrors() {
		l.reportCompileError(err)
	}
	for _, err := range p.Errors() {
		l.reportCompileError(err)
	}
	if l.hadError {
		return
	}

	resolver := semantic.NewResolver()
	resolver.Resolve(program)
	for _, err := range resolver.Errors() {
		l.reportCompileError(err)
	}
	if l.hadError {
		return
	}

	if err := l.interpreter.Interpret(program); err != nil {
		fmt.Fprintln(l.stderr, err.Error())
		l.hadRuntimeError = true
	}
}

// RunFile reads and runs a source file. The returned error covers I/O
// only; language errors are reported on stderr and reflected in ExitCode.
func (l *Lox) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	l.Run(string(content))
	return nil
}

// reportCompileError writes one formatted diagnostic and sets the sticky
// compile-time flag.
func (l *Lox) reportCompileError(err error) {
	fmt.Fprintln(l.stderr, err.Error())
	l.hadError = true
}
