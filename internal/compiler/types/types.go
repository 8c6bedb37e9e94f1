// Package types implements the source language's type algebra:
//
//	Null | Int | Num | Text | Bool | Array(Type) | Generic | Failable(Type) | Void
//
// Generic only ever appears in an unresolved function signature; resolution
// substitutes a concrete type per monomorphized variant (see funccache).
package types

import "fmt"

// Kind discriminates the members of the type algebra.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindNum
	KindText
	KindBool
	KindArray
	KindGeneric
	KindFailable
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindNum:
		return "Num"
	case KindText:
		return "Text"
	case KindBool:
		return "Bool"
	case KindArray:
		return "Array"
	case KindGeneric:
		return "Generic"
	case KindFailable:
		return "Failable"
	case KindVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// Type is implemented by every member of the algebra. Composite members
// (Array, Failable) additionally expose Elem.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool
}

type primitive struct{ kind Kind }

func (p primitive) Kind() Kind     { return p.kind }
func (p primitive) String() string { return p.kind.String() }
func (p primitive) Equals(other Type) bool {
	o, ok := other.(primitive)
	return ok && o.kind == p.kind
}

var (
	Null    Type = primitive{KindNull}
	IntT    Type = primitive{KindInt}
	NumT    Type = primitive{KindNum}
	TextT   Type = primitive{KindText}
	BoolT   Type = primitive{KindBool}
	VoidT   Type = primitive{KindVoid}
	Generic Type = primitive{KindGeneric}
)

// ArrayType is Array(Elem).
type ArrayType struct {
	Elem Type
}

func (a ArrayType) Kind() Kind { return KindArray }
func (a ArrayType) String() string {
	return fmt.Sprintf("Array(%s)", a.Elem.String())
}
func (a ArrayType) Equals(other Type) bool {
	o, ok := other.(ArrayType)
	return ok && a.Elem.Equals(o.Elem)
}

// FailableType is Failable(Inner) — the type of a value that may carry a
// propagated command failure instead of a concrete value.
type FailableType struct {
	Inner Type
}

func (f FailableType) Kind() Kind { return KindFailable }
func (f FailableType) String() string {
	return fmt.Sprintf("Failable(%s)", f.Inner.String())
}
func (f FailableType) Equals(other Type) bool {
	o, ok := other.(FailableType)
	return ok && f.Inner.Equals(o.Inner)
}

// NewArray constructs Array(elem).
func NewArray(elem Type) Type { return ArrayType{Elem: elem} }

// NewFailable constructs Failable(inner).
func NewFailable(inner Type) Type { return FailableType{Inner: inner} }

// IsGeneric reports whether t contains an unresolved Generic anywhere in its
// structure (including nested inside Array/Failable).
func IsGeneric(t Type) bool {
	switch v := t.(type) {
	case primitive:
		return v.kind == KindGeneric
	case ArrayType:
		return IsGeneric(v.Elem)
	case FailableType:
		return IsGeneric(v.Inner)
	default:
		return false
	}
}

// Substitute replaces every Generic occurrence in t with concrete, returning
// a new type. Used by funccache to monomorphize a declaration's signature.
func Substitute(t Type, concrete Type) Type {
	switch v := t.(type) {
	case primitive:
		if v.kind == KindGeneric {
			return concrete
		}
		return v
	case ArrayType:
		return ArrayType{Elem: Substitute(v.Elem, concrete)}
	case FailableType:
		return FailableType{Inner: Substitute(v.Inner, concrete)}
	default:
		return t
	}
}

// Comparable reports whether t is a member of the set of types comparison
// operators accept: {Int, Num, Text, Array(Int), Array(Num), Array(Text)}.
func Comparable(t Type) bool {
	switch v := t.(type) {
	case primitive:
		return v.kind == KindInt || v.kind == KindNum || v.kind == KindText
	case ArrayType:
		return Comparable(v.Elem) && v.Elem.Kind() != KindArray
	default:
		return false
	}
}

// NumericMix reports whether a and b are Int/Num in different directions —
// a type-check error: mixing Int and Num is never implicit.
func NumericMix(a, b Type) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak == KindInt && bk == KindNum {
		return true
	}
	if ak == KindNum && bk == KindInt {
		return true
	}
	return false
}
