package rill

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, src string) string {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, nil)
	require.NoError(t, interp.Run())
	return out.String()
}

func TestInterpretArithmeticPrecedence(t *testing.T) {
	out := runScript(t, "var x = 2 + 3 * 4\nprint $x\n")
	require.Equal(t, "14\n", out)
}

func TestInterpretBranching(t *testing.T) {
	out := runScript(t, "var x = 5\nif $x > 3 {\n  print \"big\"\n} else {\n  print \"small\"\n}\n")
	require.Equal(t, "big\n", out)
}

func TestInterpretForIn(t *testing.T) {
	out := runScript(t, "for x in [ 1 2 3 ] {\n  print $x\n}\n")
	require.Equal(t, "1\n2\n3\n", out)
}

func TestInterpretUserFunctionWithReturn(t *testing.T) {
	out := runScript(t, "fn add a b {\n  return $a + $b\n}\nprint (add 2 3)\n")
	require.Equal(t, "5\n", out)
}

func TestInterpretStringInterpolationAndEscape(t *testing.T) {
	out := runScript(t, "var name = \"world\"\nprint \"hello $name\\nbye \\$name\"\n")
	require.Equal(t, "hello world\nbye $name\n", out)
}

func TestInterpretWhileLoop(t *testing.T) {
	out := runScript(t, "var x = 0\nwhile $x < 3 {\n  print $x\n  $x = $x + 1\n}\n")
	require.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretShortCircuitAnd(t *testing.T) {
	out := runScript(t, "fn boom {\n  print \"boom\"\n  return true\n}\nif false && (boom) {\n  print \"unreachable\"\n}\nprint \"done\"\n")
	require.Equal(t, "done\n", out)
}

func TestInterpretShortCircuitOr(t *testing.T) {
	out := runScript(t, "fn boom {\n  print \"boom\"\n  return false\n}\nif true || (boom) {\n  print \"ok\"\n}\n")
	require.Equal(t, "ok\n", out)
}

func TestInterpretAppendAndFilterAndLen(t *testing.T) {
	out := runScript(t, "fn even n {\n  return $n % 2 == 0\n}\nvar xs = (append [ 1 2 ] 3 4)\nvar ys = (filter $xs even)\nprint (len $ys)\n")
	require.Equal(t, "2\n", out)
}

func TestInterpretUndeclaredVariableIsRuntimeError(t *testing.T) {
	tokens, err := Tokenize("print $missing\n")
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, nil)
	err = interp.Run()
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrUndeclaredVariable, rerr.Kind)
}

func TestInterpretRedeclarationIsRuntimeError(t *testing.T) {
	tokens, err := Tokenize("var x = 1\nvar x = 2\n")
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, nil)
	err = interp.Run()
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrRedeclaration, rerr.Kind)
}

func TestInterpretArrayEqualityIsTypeMismatch(t *testing.T) {
	tokens, err := Tokenize("if [ 1 ] == [ 1 ] {\n  print \"eq\"\n}\n")
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, nil)
	err = interp.Run()
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrTypeMismatch, rerr.Kind)
}

func TestInterpretBinaryPipeIntoParenthesizedCall(t *testing.T) {
	out := runScript(t, "fn shout s {\n  return $s\n}\nvar x = \"hi\" | (shout)\nprint $x\n")
	require.Equal(t, "hi\n", out)
}

// A leading --flag argument must reach the callee as a single literal
// string, never split into a Minus operator plus a mangled bareword.
func TestInterpretLeadingDashFlagArgumentIsLiteralString(t *testing.T) {
	out := runScript(t, "fn echoArg a {\n  return $a\n}\nprint (echoArg --help)\n")
	require.Equal(t, "--help\n", out)
}

func TestInterpretExternalCallWithLeadingDashFlagArgument(t *testing.T) {
	tokens, err := Tokenize("print (echo --flag)\n")
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, []string{"/bin", "/usr/bin"})
	require.NoError(t, interp.Run())
	require.Equal(t, "--flag\n", out.String())
}

// print hello | tr a-z A-Z is the canonical chained-pipe example: print,
// as the non-terminal stage, hands its formatted line forward as a value
// instead of writing it to the real output, so the next stage (an
// external command) receives it on its stdin.
func TestInterpretChainedPipelineStatement(t *testing.T) {
	tokens, err := Tokenize("var x = (print hello | tr a-z A-Z)\nprint $x\n")
	require.NoError(t, err)
	root, err := Parse(tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := NewInterpreter(root, &out, []string{"/bin", "/usr/bin"})
	require.NoError(t, interp.Run())
	require.Equal(t, "HELLO\n", out.String())
}
