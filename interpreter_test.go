// interpreter_test.go
package lox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSource(t *testing.T, src string) (Value, error) {
	t.Helper()
	tokens, errs := NewScanner(src).ScanTokens()
	require.Empty(t, errs)
	expr, err := NewParser(tokens).ParseExpression()
	require.NoError(t, err, "source %q", src)
	return NewInterpreter(func(string) {}).Evaluate(expr)
}

func evalOK(t *testing.T, src string) Value {
	t.Helper()
	v, err := evalSource(t, src)
	require.NoError(t, err, "source %q", src)
	return v
}

// runSource parses and runs a program, collecting print output.
func runSource(t *testing.T, src string) ([]string, error) {
	t.Helper()
	tokens, errs := NewScanner(src).ScanTokens()
	require.Empty(t, errs)
	statements, err := NewParser(tokens).Parse()
	require.NoError(t, err, "source %q", src)

	var out []string
	ip := NewInterpreter(func(line string) { out = append(out, line) })
	return out, ip.Run(statements)
}

func runOK(t *testing.T, src string) []string {
	t.Helper()
	out, err := runSource(t, src)
	require.NoError(t, err, "source %q", src)
	return out
}

func Test_Interpreter_Literals(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"true", "true"},
		{"false", "false"},
		{"nil", "nil"},
		{"123", "123"},
		{"123.45", "123.45"},
		{`"hello"`, "hello"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, evalOK(t, c.src).String(), "source %q", c.src)
	}
}

func Test_Interpreter_Expressions(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`("foo")`, "foo"},
		{"-5", "-5"},
		{"!true", "false"},
		{"!nil", "true"},
		{"!0", "false"},
		{"!!true", "true"},
		{"3 * 4", "12"},
		{"10 / 4", "2.5"},
		{"1 + 2", "3"},
		{"5 - 8", "-3"},
		{`"foo" + "bar"`, "foobar"},
		{"2 > 1", "true"},
		{"2 >= 2", "true"},
		{"1 < 1", "false"},
		{"1 <= 1", "true"},
		{"1 == 1", "true"},
		{`"a" == "a"`, "true"},
		{`1 == "1"`, "false"},
		{"nil == nil", "true"},
		{"1 != 2", "true"},
		{"true and 2", "2"},
		{"false and 2", "false"},
		{"nil or 2", "2"},
		{"1 or 2", "1"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, evalOK(t, c.src).String(), "source %q", c.src)
	}
}

func Test_Interpreter_RuntimeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`-"foo"`, "Operand must be a number."},
		{"-nil", "Operand must be a number."},
		{`1 + "foo"`, "Operands must be a numbers."},
		{`"foo" - "bar"`, "Operands must be a numbers."},
		{`"foo" * 2`, "Operands must be a numbers."},
		{"true + false", "Operands must be a numbers."},
		{`1 < "two"`, "Operands must be a numbers."},
		{"undefined", "Undefined variable 'undefined'."},
	}
	for _, c := range cases {
		_, err := evalSource(t, c.src)
		assert.EqualError(t, err, c.want, "source %q", c.src)
	}
}

func Test_Interpreter_PrintAndVariables(t *testing.T) {
	out := runOK(t, `
var a = 1;
print a;
var b = a + 1;
print b;
a = 10;
print a;
print "done";
`)
	assert.Equal(t, []string{"1", "2", "10", "done"}, out)
}

func Test_Interpreter_PrintLogicalOperand(t *testing.T) {
	// Logical operators yield the deciding operand, not a bool.
	out := runOK(t, `print "hi" or 2;`)
	assert.Equal(t, []string{"hi"}, out)
}

func Test_Interpreter_BlockScoping(t *testing.T) {
	out := runOK(t, `
var a = 1;
{
	var a = 2;
	print a;
}
print a;
`)
	assert.Equal(t, []string{"2", "1"}, out)
}

func Test_Interpreter_AssignmentCrossesBlocks(t *testing.T) {
	out := runOK(t, `
var a = 1;
{
	a = 2;
}
print a;
`)
	assert.Equal(t, []string{"2"}, out)
}

func Test_Interpreter_IfElse(t *testing.T) {
	out := runOK(t, `
if (true) print "yes"; else print "no";
if (false) print "yes"; else print "no";
if (nil) print "truthy";
if (0) print "zero is truthy";
`)
	assert.Equal(t, []string{"yes", "no", "zero is truthy"}, out)
}

func Test_Interpreter_While(t *testing.T) {
	out := runOK(t, `
var i = 0;
while (i < 3) {
	print i;
	i = i + 1;
}
`)
	assert.Equal(t, []string{"0", "1", "2"}, out)
}

func Test_Interpreter_For(t *testing.T) {
	out := runOK(t, `
for (var i = 0; i < 3; i = i + 1) print i;
`)
	assert.Equal(t, []string{"0", "1", "2"}, out)
}

func Test_Interpreter_ForSharedScope(t *testing.T) {
	// The loop variable persists across iterations but not past the loop.
	out, err := runSource(t, `
for (var i = 0; i < 2; i = i + 1) {}
print i;
`)
	assert.EqualError(t, err, "Undefined variable 'i'.")
	assert.Empty(t, out)
}

func Test_Interpreter_FunctionCall(t *testing.T) {
	out := runOK(t, `
fun test(a, b, c) {
	return a + b + c;
}
print test(4, 10, 16);
`)
	assert.Equal(t, []string{"30"}, out)
}

func Test_Interpreter_FunctionWithoutReturn(t *testing.T) {
	out := runOK(t, `
fun greet(name) {
	print "Hello " + name;
}
print greet("World");
`)
	assert.Equal(t, []string{"Hello World", "nil"}, out)
}

func Test_Interpreter_EarlyReturn(t *testing.T) {
	out := runOK(t, `
fun pick(flag) {
	if (flag) return "first";
	return "second";
}
print pick(true);
print pick(false);
`)
	assert.Equal(t, []string{"first", "second"}, out)
}

func Test_Interpreter_ReturnUnwindsLoops(t *testing.T) {
	out := runOK(t, `
fun findFirstOverTen() {
	for (var i = 0; ; i = i + 1) {
		if (i > 10) return i;
	}
}
print findFirstOverTen();
`)
	assert.Equal(t, []string{"11"}, out)
}

func Test_Interpreter_FunctionPrintsAsValue(t *testing.T) {
	out := runOK(t, `
fun f() {}
print f;
print clock;
`)
	assert.Equal(t, []string{"<fn f>", "<native fn>"}, out)
}

func Test_Interpreter_DynamicScoping(t *testing.T) {
	// The body sees whatever binding is active at the call site.
	out := runOK(t, `
fun show() {
	print x;
}
var x = "global";
show();
{
	var x = "local";
	show();
}
`)
	assert.Equal(t, []string{"global", "local"}, out)
}

func Test_Interpreter_CallErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"not a function"();`, "Can only call functions and classes."},
		{"123();", "Can only call functions and classes."},
		{"fun f(a) {} f();", "Expected 1 arguments but got 0."},
		{"fun f(a) {} f(1, 2);", "Expected 1 arguments but got 2."},
		{"clock(1);", "Expected 0 arguments but got 1."},
	}
	for _, c := range cases {
		_, err := runSource(t, c.src)
		assert.EqualError(t, err, c.want, "source %q", c.src)
	}
}

func Test_Interpreter_ArityCheckedBeforeArguments(t *testing.T) {
	// Wrong arity wins over an argument that would fail to evaluate.
	_, err := runSource(t, "fun f(a) {} f(undefined, 2);")
	assert.EqualError(t, err, "Expected 1 arguments but got 2.")
}

func Test_Interpreter_TopLevelReturn(t *testing.T) {
	_, err := runSource(t, "return 1;")
	assert.EqualError(t, err, "received unexpected return value")
}

func Test_Interpreter_Clock(t *testing.T) {
	v := evalOK(t, "clock()")
	require.Equal(t, VNumber, v.Kind)
	now := float64(time.Now().UnixNano()) / 1e9
	assert.InDelta(t, now, v.Data.(float64), 5.0)
}

func Test_Interpreter_ScopesBalancedAfterError(t *testing.T) {
	tokens, _ := NewScanner(`
var ok = "still here";
{
	var inner = 1;
	undefined;
}
`).ScanTokens()
	statements, err := NewParser(tokens).Parse()
	require.NoError(t, err)

	ip := NewInterpreter(func(string) {})
	require.EqualError(t, ip.Run(statements), "Undefined variable 'undefined'.")

	// The failed block's scope was released; globals remain reachable and
	// the interpreter is still usable.
	v, err := ip.env.Get("ok")
	require.NoError(t, err)
	assert.Equal(t, StringValue("still here"), v)
	_, err = ip.env.Get("inner")
	assert.Error(t, err)
	assert.Len(t, ip.env.scopes, 1)
}

func Test_Interpreter_RecursiveFunction(t *testing.T) {
	out := runOK(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	assert.Equal(t, []string{"55"}, out)
}

func Test_Interpreter_EvaluateDoesNotPrint(t *testing.T) {
	// Expression evaluation returns the value; only `print` goes to the sink.
	v := evalOK(t, "1 + 2 * 3")
	assert.Equal(t, "7", v.String())
}
