package rill

import (
	"io"
	"strings"
)

// builtin is a built-in function's signature: given its already-evaluated
// arguments (with any piped-in value already prepended) and whether this
// call is a non-terminal stage of a pipeline, it returns the call's
// result, or nil when the built-in produces no value (print, outside a
// pipeline).
type builtin func(in *Interpreter, args []Value, piping bool) (*Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print":  builtinPrint,
		"append": builtinAppend,
		"filter": builtinFilter,
		"len":    builtinLen,
	}
}

// builtinPrint implements spec §4.4.1: arguments space-separated, a
// trailing newline added unless the last argument is already a String
// ending in one. When print is a non-terminal pipeline stage (piping is
// true), it hands the formatted line forward as a Value instead of
// writing it to the real output — spec §8 scenario 5's
// `print hello | tr a-z A-Z` depends on this.
func builtinPrint(in *Interpreter, args []Value, piping bool) (*Value, error) {
	if piping {
		v := NewString(formatPrint(args))
		return &v, nil
	}
	writePrint(in.out, args)
	return nil, nil
}

func formatPrint(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	line := strings.Join(parts, " ")
	if len(args) > 0 {
		last := args[len(args)-1]
		if last.IsString() && strings.HasSuffix(last.Str(), "\n") {
			return line
		}
	}
	return line + "\n"
}

func writePrint(w io.Writer, args []Value) {
	io.WriteString(w, formatPrint(args))
}

func builtinAppend(in *Interpreter, args []Value, piping bool) (*Value, error) {
	if len(args) == 0 || !args[0].IsArray() {
		return nil, &RuntimeError{Kind: ErrTypeMismatch, Message: "append: first argument must be an Array"}
	}
	combined := append([]Value{}, args[0].Array()...)
	combined = append(combined, args[1:]...)
	v := NewArray(combined)
	return &v, nil
}

func builtinFilter(in *Interpreter, args []Value, piping bool) (*Value, error) {
	if len(args) != 2 || !args[0].IsArray() || !args[1].IsString() {
		return nil, &RuntimeError{Kind: ErrTypeMismatch, Message: "filter: expected (Array, callback name)"}
	}
	name := args[1].Str()
	var kept []Value
	for _, elem := range args[0].Array() {
		result, err := in.dispatchByName(name, []Value{elem}, true)
		if err != nil {
			return nil, err
		}
		if result == nil || !result.IsBool() {
			return nil, &RuntimeError{Kind: ErrTypeMismatch, Message: "filter: callback " + name + " must return Bool"}
		}
		if result.Bool() {
			kept = append(kept, elem.Copy())
		}
	}
	v := NewArray(kept)
	return &v, nil
}

func builtinLen(in *Interpreter, args []Value, piping bool) (*Value, error) {
	if len(args) != 1 {
		return nil, &RuntimeError{Kind: ErrArityMismatch, Message: "len: expected exactly one argument"}
	}
	switch {
	case args[0].IsString():
		v := NewInt(int64(len(args[0].Str())))
		return &v, nil
	case args[0].IsArray():
		v := NewInt(int64(len(args[0].Array())))
		return &v, nil
	default:
		return nil, &RuntimeError{Kind: ErrTypeMismatch, Message: "len: expected String or Array"}
	}
}
