package ratex

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindClass
	KindInstance
)

// Value is the runtime representation of every language value. Primitives
// compare by content; functions, classes and instances compare by identity.
type Value struct {
	kind ValueKind
	data any
}

func NewNil() Value                 { return Value{kind: KindNil} }
func NewBool(b bool) Value          { return Value{kind: KindBool, data: b} }
func NewNumber(n float64) Value     { return Value{kind: KindNumber, data: n} }
func NewString(s string) Value      { return Value{kind: KindString, data: s} }
func NewCallable(c Callable) Value  { return Value{kind: KindFunction, data: c} }
func NewClass(c *Class) Value       { return Value{kind: KindClass, data: c} }
func NewInstance(i *Instance) Value { return Value{kind: KindInstance, data: i} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Callable() Callable {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(Callable)
}

func (v Value) Class() *Class {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*Class)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindNumber:
		return strconv.FormatFloat(v.Number(), 'f', -1, 64)
	case KindString:
		return v.data.(string)
	case KindFunction:
		return v.Callable().String()
	case KindClass:
		return v.Class().Name()
	case KindInstance:
		return v.Instance().String()
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy treats nil and false as false and every other value as true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}
