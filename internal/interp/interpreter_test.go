package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/semantic"
)

// testRun parses, resolves and interprets input, returning the captured
// print output and the runtime error, if any. Compile-time errors fail
// the test: these tests exercise the evaluator only.
func testRun(t *testing.T, input string) (string, *RuntimeError) {
	t.Helper()

	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.LexerErrors()) > 0 {
		t.Fatalf("lexer errors: %v", p.LexerErrors())
	}
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	r := semantic.NewResolver()
	r.Resolve(program)
	if len(r.Errors()) > 0 {
		t.Fatalf("resolver errors: %v", r.Errors())
	}

	var buf bytes.Buffer
	i := New(&buf)
	err := i.Interpret(program)
	return buf.String(), err
}

// expectOutput runs input and asserts the exact stdout, one expected line
// per print statement.
func expectOutput(t *testing.T, input string, lines ...string) {
	t.Helper()

	output, err := testRun(t, input)
	if err != nil {
		t.Fatalf("input %q: unexpected runtime error: %s", input, err.Error())
	}
	expected := ""
	if len(lines) > 0 {
		expected = strings.Join(lines, "\n") + "\n"
	}
	if output != expected {
		t.Errorf("input %q:\nexpected %q\ngot      %q", input, expected, output)
	}
}

// TestPrintLiterals tests value rendering for each literal kind.
func TestPrintLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 3;", "3"},
		{"print 3.0;", "3"},
		{"print 3.14;", "3.14"},
		{"print -0.5;", "-0.5"},
		{`print "hi";`, "hi"},
		{`print "";`, ""},
		{"print true;", "true"},
		{"print false;", "false"},
		{"print nil;", "nil"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestArithmetic tests the numeric operators.
func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 + 2;", "3"},
		{"print 5 - 7;", "-2"},
		{"print 3 * 4;", "12"},
		{"print 7 / 2;", "3.5"},
		{"print 1 + 2 * 3;", "7"},
		{"print (1 + 2) * 3;", "9"},
		{"print -3 + 1;", "-2"},
		{"print 0.1 + 0.2;", "0.30000000000000004"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestDivisionByZero tests that division follows IEEE-754 instead of
// raising an error.
func TestDivisionByZero(t *testing.T) {
	expectOutput(t, "print 1 / 0;", "+Inf")
	expectOutput(t, "print -1 / 0;", "-Inf")
	expectOutput(t, "print 0 / 0 == 0 / 0;", "false") // NaN is not equal to itself
}

// TestComparisons tests the ordering operators.
func TestComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 < 2;", "true"},
		{"print 2 < 1;", "false"},
		{"print 2 <= 2;", "true"},
		{"print 2 > 1;", "true"},
		{"print 1 >= 2;", "false"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestEquality tests equality semantics: structural on primitives, no
// implicit conversion across types.
func TestEquality(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 == 1;", "true"},
		{"print 1 != 1;", "false"},
		{`print "a" == "a";`, "true"},
		{`print "a" == "b";`, "false"},
		{`print 1 == "1";`, "false"},
		{"print nil == nil;", "true"},
		{"print nil == false;", "false"},
		{"print true == true;", "true"},
		{"print true == 1;", "false"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestTruthiness tests that nil and false are the only falsey values.
func TestTruthiness(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print !nil;", "true"},
		{"print !false;", "true"},
		{"print !true;", "false"},
		{"print !0;", "false"},
		{`print !"";`, "false"},
		{"print !!nil;", "false"},
		{"if (0) print 1; else print 2;", "1"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestLogicalOperators tests short-circuiting and operand pass-through.
func TestLogicalOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 or 2;", "1"},
		{"print nil or 2;", "2"},
		{"print false or nil;", "nil"},
		{"print 1 and 2;", "2"},
		{"print nil and 2;", "nil"},
		{"print false and 2;", "false"},
		// The right operand must not be evaluated when short-circuited.
		{"var a = 1; true or (a = 2); print a;", "1"},
		{"var a = 1; false and (a = 2); print a;", "1"},
	}

	for _, tt := range tests {
		expectOutput(t, tt.input, tt.expected)
	}
}

// TestStringConcatenation tests the + operator on strings.
func TestStringConcatenation(t *testing.T) {
	expectOutput(t, `var a = "hi"; print a + " there";`, "hi there")
}

// TestVariableScoping tests shadowing inside a block.
func TestVariableScoping(t *testing.T) {
	expectOutput(t, "var x = 1; { var x = 2; print x; } print x;", "2", "1")
	expectOutput(t, "var x = 1; { x = 2; } print x;", "2")
}

// TestWhileLoop tests loop control.
func TestWhileLoop(t *testing.T) {
	expectOutput(t, "var i = 0; while (i < 3) { print i; i = i + 1; }", "0", "1", "2")
	expectOutput(t, "while (false) print 1;")
}

// TestForLoop tests the desugared for loop end to end.
func TestForLoop(t *testing.T) {
	expectOutput(t, "for (var i = 0; i < 3; i = i + 1) print i;", "0", "1", "2")

	// The increment must run even when the body returns early on a later
	// iteration; equivalence with the manual desugaring.
	input := `fun count(n) {
	for (var i = 0; ; i = i + 1) {
		if (i >= n) return i;
	}
}
print count(4);`
	expectOutput(t, input, "4")
}

// TestFunctions tests declaration, invocation and recursion.
func TestFunctions(t *testing.T) {
	expectOutput(t, "fun add(a, b) { return a + b; } print add(1, 2);", "3")
	expectOutput(t, "fun f() {} print f();", "nil")
	expectOutput(t, "fun f() { return; } print f();", "nil")
	expectOutput(t,
		"fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2);} print fib(10);",
		"55")
}

// TestReturnUnwindsBlocks tests that return crosses intervening block and
// loop scopes without disturbing the environment chain.
func TestReturnUnwindsBlocks(t *testing.T) {
	input := `fun f() {
	while (true) {
		{
			return 7;
		}
	}
}
print f();
print f();`
	expectOutput(t, input, "7", "7")
}

// TestClosures tests that functions capture their defining environment,
// not their caller's.
func TestClosures(t *testing.T) {
	input := `fun make(){ var i = 0; fun inc(){ i = i + 1; return i; } return inc; }
var c = make();
print c();
print c();
print c();`
	expectOutput(t, input, "1", "2", "3")

	// Two closures from separate calls do not share state.
	input = `fun make(){ var i = 0; fun inc(){ i = i + 1; return i; } return inc; }
var a = make();
var b = make();
print a();
print a();
print b();`
	expectOutput(t, input, "1", "2", "1")

	// The classic counter pair sharing one upvalue.
	input = `var get; var set;
{
	var value = 10;
	fun getter() { return value; }
	fun setter(v) { value = v; }
	get = getter;
	set = setter;
}
print get();
set(42);
print get();`
	expectOutput(t, input, "10", "42")
}

// TestClasses tests construction, fields, methods and this.
func TestClasses(t *testing.T) {
	expectOutput(t,
		"class C { init(x){ this.x = x; } get(){ return this.x; } } var c = C(5); print c.get();",
		"5")

	// Fields spring into existence on assignment.
	expectOutput(t, "class Bag {} var b = Bag(); b.x = 1; b.x = b.x + 1; print b.x;", "2")

	// Rendering of classes and instances.
	expectOutput(t, "class C {} print C;", "C")
	expectOutput(t, "class C {} print C();", "C instance")

	// State mutation through methods.
	input := `class Counter {
	init() { this.n = 0; }
	inc() { this.n = this.n + 1; return this.n; }
}
var c = Counter();
c.inc();
c.inc();
print c.inc();`
	expectOutput(t, input, "3")
}

// TestBoundMethods tests per-instance method binding.
func TestBoundMethods(t *testing.T) {
	// A bound method keeps its receiver when detached.
	input := `class C { init(x){ this.x = x; } get(){ return this.x; } }
var c = C(5);
var m = c.get;
print m();`
	expectOutput(t, input, "5")

	// Each property access produces a distinct bound callable.
	expectOutput(t, "class C { m() {} } var c = C(); print c.m == c.m;", "false")

	// A field shadows a method of the same name.
	input = `class C { m() { return "method"; } }
var c = C();
c.m = "field";
print c.m;`
	expectOutput(t, input, "field")
}

// TestInitializerSemantics tests that constructors always produce the
// instance, whatever their body does.
func TestInitializerSemantics(t *testing.T) {
	// Normal completion.
	expectOutput(t, "class C { init() { this.x = 1; } } print C().x;", "1")

	// Early bare return still yields the instance.
	input := `class C {
	init(flag) {
		this.x = 1;
		if (flag) return;
		this.x = 2;
	}
}
print C(true).x;
print C(false).x;`
	expectOutput(t, input, "1", "2")

	// Calling init through an instance re-runs it and returns the instance.
	input = `class C { init() { this.x = 1; } }
var c = C();
print c.init() == c;`
	expectOutput(t, input, "true")

	// A class without init takes no arguments; each call yields a distinct
	// instance.
	expectOutput(t, "class C {} print C() == C();", "false")
}

// TestMethodsSeeClassName tests that methods can refer to their class by
// name, enabled by the define-twice declaration order.
func TestMethodsSeeClassName(t *testing.T) {
	input := `class C {
	make() { return C(); }
}
var c = C();
print c.make();`
	expectOutput(t, input, "C instance")
}

// TestClock tests the native clock binding.
func TestClock(t *testing.T) {
	expectOutput(t, "print clock() > 0;", "true")
	expectOutput(t, "var a = clock(); var b = clock(); print b >= a;", "true")
}

// TestRuntimeErrors tests the message of each runtime error.
func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print a;", "Undefined variable 'a'."},
		{"a = 1;", "Undefined variable 'a'."},
		{`print -"a";`, "Operand must be a number."},
		{"print -nil;", "Operand must be a number."},
		{`print 1 < "a";`, "Operand must be a number."},
		{`print "a" - "b";`, "Operand must be a number."},
		{`print "a" + 1;`, "Operands must be either two numbers or two strings."},
		{"print 1 + nil;", "Operands must be either two numbers or two strings."},
		{`print nil + "a";`, "Operands must be either two numbers or two strings."},
		{"print 1();", "Can only call functions and classes."},
		{`print "f"();`, "Can only call functions and classes."},
		{"fun f(a) { return a; } f(1, 2);", "Expected 1 arguments but got 2."},
		{"fun f(a) { return a; } f();", "Expected 1 arguments but got 0."},
		{"class C { init(x) {} } C();", "Expected 1 arguments but got 0."},
		{"class C {} C(1);", "Expected 0 arguments but got 1."},
		{"class C {} print C().missing;", "Undefined property missing."},
		{"print 4.x;", "Only instances have properties."},
		{`4.x = 1;`, "Only instances have properties."},
		{"clock(1);", "Expected 0 arguments but got 1."},
	}

	for _, tt := range tests {
		_, err := testRun(t, tt.input)
		if err == nil {
			t.Errorf("input %q: expected a runtime error, got none", tt.input)
			continue
		}
		if err.Message != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, err.Message)
		}
	}
}

// TestRunAbortsOnFirstError tests that no statement after the failing one
// is interpreted.
func TestRunAbortsOnFirstError(t *testing.T) {
	output, err := testRun(t, "print 1; print missing; print 2;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if output != "1\n" {
		t.Errorf("expected output to stop at the error, got %q", output)
	}
}

// TestRuntimeErrorFormatting tests the token-anchored diagnostic format.
func TestRuntimeErrorFormatting(t *testing.T) {
	_, err := testRun(t, "\n\nprint missing;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "[line 3] Error at 'missing': Undefined variable 'missing'."
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestArgumentEvaluationOrder tests strict left-to-right argument
// evaluation.
func TestArgumentEvaluationOrder(t *testing.T) {
	input := `fun tag(x) { print x; return x; }
fun f(a, b, c) { return 0; }
f(tag(1), tag(2), tag(3));`
	expectOutput(t, input, "1", "2", "3")
}

// TestSetEvaluationOrder tests that the object expression is evaluated
// before the value expression in a property set.
func TestSetEvaluationOrder(t *testing.T) {
	input := `class Bag {}
fun tag(x) { print x; return Bag(); }
tag("object").field = tag("value");`
	expectOutput(t, input, "object", "value")
}
