package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLox creates a session with captured output streams.
func newTestLox() (*Lox, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	l := New(WithStdout(&stdout), WithStderr(&stderr))
	return l, &stdout, &stderr
}

// TestEndToEndScenarios tests literal programs against their expected
// output.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"arithmetic",
			"print 1 + 2;",
			"3\n",
		},
		{
			"string concatenation",
			`var a = "hi"; print a + " there";`,
			"hi there\n",
		},
		{
			"recursion",
			"fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2);} print fib(10);",
			"55\n",
		},
		{
			"classes",
			"class C { init(x){ this.x = x; } get(){ return this.x; } } var c = C(5); print c.get();",
			"5\n",
		},
		{
			"block scoping",
			"var x = 1; { var x = 2; print x; } print x;",
			"2\n1\n",
		},
		{
			"closures",
			"fun make(){ var i = 0; fun inc(){ i = i + 1; return i; } return inc; } var c = make(); print c(); print c(); print c();",
			"1\n2\n3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, stdout, stderr := newTestLox()
			l.Run(tt.input)

			assert.Equal(t, tt.expected, stdout.String())
			assert.Empty(t, stderr.String())
			assert.Equal(t, ExOK, l.ExitCode())
			assert.False(t, l.HadError())
			assert.False(t, l.HadRuntimeError())
		})
	}
}

// TestRuntimeErrorReporting tests the runtime error path: message on
// stderr, sticky flag, exit code 70.
func TestRuntimeErrorReporting(t *testing.T) {
	l, stdout, stderr := newTestLox()
	l.Run("print a;")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "[line 1] Error at 'a': Undefined variable 'a'.\n", stderr.String())
	assert.True(t, l.HadRuntimeError())
	assert.False(t, l.HadError())
	assert.Equal(t, ExSoftware, l.ExitCode())
}

// TestOperandTypeError tests the mixed-operand + error end to end.
func TestOperandTypeError(t *testing.T) {
	l, _, stderr := newTestLox()
	l.Run(`"a" + 1;`)

	assert.Contains(t, stderr.String(), "Operands must be either two numbers or two strings.")
	assert.Equal(t, ExSoftware, l.ExitCode())
}

// TestCompileErrorGatesEvaluator tests that a resolver error prevents the
// evaluator from running at all.
func TestCompileErrorGatesEvaluator(t *testing.T) {
	l, stdout, stderr := newTestLox()
	l.Run("print 1; return 2;")

	// No output: the evaluator never ran, not even for the valid statement.
	assert.Empty(t, stdout.String())
	assert.Equal(t, "[line 1] Error at 'return': Can't return from top-level code.\n", stderr.String())
	assert.True(t, l.HadError())
	assert.Equal(t, ExDataErr, l.ExitCode())
}

// TestParseErrorGatesResolverAndEvaluator tests gating after the parse
// stage, and that the parser surfaces multiple errors in one run.
func TestParseErrorGatesResolverAndEvaluator(t *testing.T) {
	l, stdout, stderr := newTestLox()
	l.Run("var = 1;\nvar = 2;\nprint 3;")

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[line 1] Error at '=': Expected variable name!")
	assert.Contains(t, stderr.String(), "[line 2] Error at '=': Expected variable name!")
	assert.Equal(t, ExDataErr, l.ExitCode())
}

// TestScannerErrorReported tests that scanner errors reach the sink in
// the no-token format.
func TestScannerErrorReported(t *testing.T) {
	l, _, stderr := newTestLox()
	l.Run("print 1; @")

	assert.Equal(t, "[line 1] Error: Unexpected character.\n", stderr.String())
	assert.Equal(t, ExDataErr, l.ExitCode())
}

// TestCompileErrorTakesPrecedence tests the exit code when both sticky
// flags are set in one session.
func TestCompileErrorTakesPrecedence(t *testing.T) {
	l, _, _ := newTestLox()
	l.Run("print a;")   // runtime error
	l.Run("return 1;")  // compile-time error
	assert.True(t, l.HadError())
	assert.True(t, l.HadRuntimeError())
	assert.Equal(t, ExDataErr, l.ExitCode())
}

// TestClearErrorClearsOnlyCompileFlag tests the between-REPL-lines flag
// contract.
func TestClearErrorClearsOnlyCompileFlag(t *testing.T) {
	l, _, _ := newTestLox()

	l.Run("print a;")
	require.True(t, l.HadRuntimeError())
	l.Run("var = 1;")
	require.True(t, l.HadError())

	l.ClearError()
	assert.False(t, l.HadError())
	assert.True(t, l.HadRuntimeError(), "runtime flag persists for the session")
	assert.Equal(t, ExSoftware, l.ExitCode())
}

// TestStatePersistsAcrossRuns tests that globals survive between Run
// calls, which the REPL depends on.
func TestStatePersistsAcrossRuns(t *testing.T) {
	l, stdout, _ := newTestLox()

	l.Run("var x = 1;")
	l.Run("fun bump() { x = x + 1; return x; }")
	l.Run("print bump();")
	l.Run("print bump();")

	assert.Equal(t, "2\n3\n", stdout.String())
	assert.Equal(t, ExOK, l.ExitCode())
}

// TestFailedLineDoesNotPoisonSession tests REPL-style recovery: after a
// bad line is cleared, later lines run normally.
func TestFailedLineDoesNotPoisonSession(t *testing.T) {
	l, stdout, _ := newTestLox()

	l.Run("var x = ;")
	require.True(t, l.HadError())
	l.ClearError()

	l.Run("var x = 10;")
	l.Run("print x;")
	assert.Equal(t, "10\n", stdout.String())
}

// TestRunFile tests file execution and the I/O error path.
func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte("print 40 + 2;\n"), 0o644))

	l, stdout, _ := newTestLox()
	require.NoError(t, l.RunFile(path))
	assert.Equal(t, "42\n", stdout.String())
	assert.Equal(t, ExOK, l.ExitCode())

	err := l.RunFile(filepath.Join(t.TempDir(), "missing.lox"))
	assert.Error(t, err)
}
