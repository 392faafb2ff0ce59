package rill

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the active payload of a Value (spec §3's "every Value's
// tag matches the active payload" invariant).
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInteger
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindInteger:
		return "Integer"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is rill's runtime value: a value-typed tagged union. Copy performs
// the deep copy spec §3 requires so that array payloads never alias across
// bindings.
type Value struct {
	kind ValueKind
	str  string
	b    bool
	i    int64
	arr  []Value
}

func NewString(s string) Value  { return Value{kind: KindString, str: s} }
func NewBool(b bool) Value      { return Value{kind: KindBool, b: b} }
func NewInt(i int64) Value      { return Value{kind: KindInteger, i: i} }
func NewArray(vs []Value) Value {
	owned := make([]Value, len(vs))
	for idx, v := range vs {
		owned[idx] = v.Copy()
	}
	return Value{kind: KindArray, arr: owned}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsBool() bool    { return v.kind == KindBool }
func (v Value) IsInteger() bool { return v.kind == KindInteger }
func (v Value) IsArray() bool   { return v.kind == KindArray }

func (v Value) Str() string    { return v.str }
func (v Value) Bool() bool     { return v.b }
func (v Value) Int() int64     { return v.i }
func (v Value) Array() []Value { return v.arr }

// Copy deep-copies the payload so that assigning or rebinding a Value
// never lets two bindings alias the same Array backing store.
func (v Value) Copy() Value {
	if v.kind != KindArray {
		return v
	}
	out := make([]Value, len(v.arr))
	for i, e := range v.arr {
		out[i] = e.Copy()
	}
	return Value{kind: KindArray, arr: out}
}

// String renders a Value the way interpolation and print render it: raw
// bytes for String, decimal for Integer, true/false for Bool, and a
// bracketed, space-separated, recursively-rendered list for Array (spec
// §4.4.3).
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[ " + strings.Join(parts, " ") + " ]"
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}

// ConvertCaptured absorbs a child process's captured stdout into a Value,
// per spec §4.3: "true"/"false" become Bool, a fully parseable signed
// integer becomes Integer, anything else stays a trimmed String.
func ConvertCaptured(raw string) Value {
	trimmed := strings.TrimRight(raw, " \t\r\n\v\f")
	switch trimmed {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return NewInt(n)
	}
	return NewString(trimmed)
}
