package rill

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValueStringRendering(t *testing.T) {
	require.Equal(t, "hi", NewString("hi").String())
	require.Equal(t, "true", NewBool(true).String())
	require.Equal(t, "-3", NewInt(-3).String())
	require.Equal(t, "[ 1 2 3 ]", NewArray([]Value{NewInt(1), NewInt(2), NewInt(3)}).String())
}

func TestValueCopyDeepCopiesArrays(t *testing.T) {
	inner := NewArray([]Value{NewInt(1)})
	outer := NewArray([]Value{inner})
	copied := outer.Copy()
	// mutate the copy's backing slice directly; the original must be unaffected
	copied.Array()[0].Array()[0] = NewInt(99)
	require.Equal(t, int64(1), outer.Array()[0].Array()[0].Int())
}

func TestConvertCapturedParsesBoolAndInt(t *testing.T) {
	require.True(t, ConvertCaptured("true\n").IsBool())
	require.Equal(t, true, ConvertCaptured("true\n").Bool())
	v := ConvertCaptured("42\n")
	require.True(t, v.IsInteger())
	require.Equal(t, int64(42), v.Int())
}

func TestConvertCapturedFallsBackToTrimmedString(t *testing.T) {
	v := ConvertCaptured("  hello world  \n")
	require.True(t, v.IsString())
	require.Equal(t, "  hello world", v.Str())
}

func TestConvertCapturedRejectsPartialIntegers(t *testing.T) {
	v := ConvertCaptured("42abc\n")
	require.True(t, v.IsString())
	require.Equal(t, "42abc", v.Str())
}

// Array/Copy structural equality is exactly the kind of deep, nested
// comparison go-cmp exists for — reflect.DeepEqual would work too but
// gives a useless diff on mismatch.
func TestValueArrayDeepEquality(t *testing.T) {
	a := NewArray([]Value{NewInt(1), NewArray([]Value{NewString("x"), NewBool(true)})})
	b := NewArray([]Value{NewInt(1), NewArray([]Value{NewString("x"), NewBool(true)})})
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("unexpected diff between structurally equal arrays:\n%s", diff)
	}
	c := NewArray([]Value{NewInt(1), NewArray([]Value{NewString("y"), NewBool(true)})})
	if diff := cmp.Diff(a, c, cmp.AllowUnexported(Value{})); diff == "" {
		t.Fatalf("expected a diff between structurally different arrays, got none")
	}
}
