// Package types implements the TypeLattice: the tagged-variant type values
// used throughout the checker, their structural equality, and the
// context-free half of assignability (the half that needs no type-variable
// binding — see package inference for the rest).
package types

import (
	"fmt"
	"strings"
)

// Kind tags the variant a Type carries.
type Kind uint8

const (
	KindDyn Kind = iota
	KindError
	KindNull
	KindBool
	KindInt
	KindUint
	KindDouble
	KindString
	KindBytes
	KindDuration
	KindTimestamp
	KindAny
	KindBoolWrapper
	KindIntWrapper
	KindUintWrapper
	KindDoubleWrapper
	KindStringWrapper
	KindBytesWrapper
	KindList
	KindMap
	KindStruct
	KindOpaque
	KindType
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindDyn:
		return "dyn"
	case KindError:
		return "error"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDuration:
		return "duration"
	case KindTimestamp:
		return "timestamp"
	case KindAny:
		return "any"
	case KindBoolWrapper:
		return "bool_wrapper"
	case KindIntWrapper:
		return "int_wrapper"
	case KindUintWrapper:
		return "uint_wrapper"
	case KindDoubleWrapper:
		return "double_wrapper"
	case KindStringWrapper:
		return "string_wrapper"
	case KindBytesWrapper:
		return "bytes_wrapper"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindStruct:
		return "struct"
	case KindOpaque:
		return "opaque"
	case KindType:
		return "type"
	case KindTypeParam:
		return "type_param"
	default:
		return "unknown"
	}
}

// optionalTypeName is the distinguished opaque name used to encode optional(T).
const optionalTypeName = "optional_type"

// Type is a tagged variant. The zero value is not a valid Type; use Dyn or
// one of the constructors below.
type Type struct {
	kind   Kind
	name   string // struct/opaque/type_param name
	params []Type // list:[elem] map:[key,value] opaque:params type:[param]?
}

// Singleton primitives and wrappers. These never allocate on use, matching
// the teacher's preference for shared singleton values over per-use
// construction of simple, immutable data (internal/checker/types.go's
// package-level TypeInt/TypeFloat/... vars).
var (
	Dyn       = Type{kind: KindDyn}
	ErrorType = Type{kind: KindError}
	Null      = Type{kind: KindNull}
	Bool      = Type{kind: KindBool}
	Int       = Type{kind: KindInt}
	Uint      = Type{kind: KindUint}
	Double    = Type{kind: KindDouble}
	String    = Type{kind: KindString}
	Bytes     = Type{kind: KindBytes}
	Duration  = Type{kind: KindDuration}
	Timestamp = Type{kind: KindTimestamp}
	Any       = Type{kind: KindAny}

	BoolWrapper   = Type{kind: KindBoolWrapper}
	IntWrapper    = Type{kind: KindIntWrapper}
	UintWrapper   = Type{kind: KindUintWrapper}
	DoubleWrapper = Type{kind: KindDoubleWrapper}
	StringWrapper = Type{kind: KindStringWrapper}
	BytesWrapper  = Type{kind: KindBytesWrapper}
)

// NewList returns list(elem).
func NewList(elem Type) Type { return Type{kind: KindList, params: []Type{elem}} }

// NewMap returns map(key, value).
func NewMap(key, value Type) Type { return Type{kind: KindMap, params: []Type{key, value}} }

// NewStruct returns struct(name).
func NewStruct(name string) Type { return Type{kind: KindStruct, name: name} }

// NewOpaque returns opaque(name, params...).
func NewOpaque(name string, params ...Type) Type {
	return Type{kind: KindOpaque, name: name, params: append([]Type{}, params...)}
}

// NewOptional returns optional(t), the distinguished opaque "optional_type".
func NewOptional(t Type) Type { return NewOpaque(optionalTypeName, t) }

// NewTypeType returns type(param?). Pass no argument for a bare reified
// "type" value with no parameter.
func NewTypeType(param ...Type) Type {
	if len(param) == 0 {
		return Type{kind: KindType}
	}
	return Type{kind: KindType, params: []Type{param[0]}}
}

// NewTypeParam returns type_param(name), a free type variable.
func NewTypeParam(name string) Type { return Type{kind: KindTypeParam, name: name} }

// Kind reports the tag of t.
func (t Type) Kind() Kind { return t.kind }

// Name reports the struct/opaque/type_param name of t; empty for kinds that
// don't carry a name.
func (t Type) Name() string { return t.name }

// Parameters reports the type parameters of t (list/map/opaque/type);
// empty for kinds that don't carry parameters.
func (t Type) Parameters() []Type { return t.params }

// IsOptional reports whether t is the distinguished optional(T) opaque.
func (t Type) IsOptional() bool {
	return t.kind == KindOpaque && t.name == optionalTypeName && len(t.params) == 1
}

// OptionalParam returns the peeled parameter of an optional(T), or (Dyn,
// false) if t is not optional.
func (t Type) OptionalParam() (Type, bool) {
	if !t.IsOptional() {
		return Dyn, false
	}
	return t.params[0], true
}

// IsWrapper reports whether t is one of the nullable-primitive wrapper kinds.
func (t Type) IsWrapper() bool {
	switch t.kind {
	case KindBoolWrapper, KindIntWrapper, KindUintWrapper, KindDoubleWrapper, KindStringWrapper, KindBytesWrapper:
		return true
	default:
		return false
	}
}

// WrapperPrimitive returns the primitive a wrapper kind accepts, or
// (Dyn, false) if t is not a wrapper.
func (t Type) WrapperPrimitive() (Type, bool) {
	switch t.kind {
	case KindBoolWrapper:
		return Bool, true
	case KindIntWrapper:
		return Int, true
	case KindUintWrapper:
		return Uint, true
	case KindDoubleWrapper:
		return Double, true
	case KindStringWrapper:
		return String, true
	case KindBytesWrapper:
		return Bytes, true
	default:
		return Dyn, false
	}
}

// Equal reports structural equality; struct equality is by name.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindStruct, KindTypeParam:
		return t.name == other.name
	case KindOpaque:
		if t.name != other.name || len(t.params) != len(other.params) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Equal(other.params[i]) {
				return false
			}
		}
		return true
	case KindList:
		return t.params[0].Equal(other.params[0])
	case KindMap:
		return t.params[0].Equal(other.params[0]) && t.params[1].Equal(other.params[1])
	case KindType:
		if len(t.params) != len(other.params) {
			return false
		}
		if len(t.params) == 0 {
			return true
		}
		return t.params[0].Equal(other.params[0])
	default:
		return true
	}
}

// DebugString renders t the way diagnostics quote types (§4.2).
func (t Type) DebugString() string {
	switch t.kind {
	case KindList:
		return "list(" + t.params[0].DebugString() + ")"
	case KindMap:
		return "map(" + t.params[0].DebugString() + ", " + t.params[1].DebugString() + ")"
	case KindStruct:
		return t.name
	case KindOpaque:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.DebugString()
		}
		return t.name + "(" + strings.Join(parts, ", ") + ")"
	case KindType:
		if len(t.params) == 0 {
			return "type"
		}
		return "type(" + t.params[0].DebugString() + ")"
	case KindTypeParam:
		return t.name
	default:
		return t.kind.String()
	}
}

// IsAssignable implements the context-free half of §3's assignability
// relation: dyn universality, null/wrapper rules, structural compound
// matching. It never binds a type_param — a type_param on either side
// falls back to plain structural equality, which is correct whenever no
// unification is in play (e.g. the reflexivity/transitivity properties in
// §8) and is refined with real unification by inference.Context.IsAssignable
// for the overload-resolution path that actually needs it (§4.3).
func IsAssignable(actual, declared Type) bool {
	if actual.kind == KindDyn || declared.kind == KindDyn {
		return true
	}
	if actual.kind == KindError || declared.kind == KindError {
		return false
	}
	if actual.kind == KindTypeParam || declared.kind == KindTypeParam {
		return actual.Equal(declared)
	}
	if actual.kind == KindNull {
		return declared.IsWrapper() || declared.kind == KindAny || declared.kind == KindNull
	}
	if declared.IsWrapper() {
		if prim, ok := declared.WrapperPrimitive(); ok && actual.Equal(prim) {
			return true
		}
	}
	if actual.kind != declared.kind {
		return false
	}
	switch actual.kind {
	case KindStruct:
		return actual.name == declared.name
	case KindOpaque:
		if actual.name != declared.name || len(actual.params) != len(declared.params) {
			return false
		}
		for i := range actual.params {
			if !IsAssignable(actual.params[i], declared.params[i]) {
				return false
			}
		}
		return true
	case KindList:
		return IsAssignable(actual.params[0], declared.params[0])
	case KindMap:
		return IsAssignable(actual.params[0], declared.params[0]) && IsAssignable(actual.params[1], declared.params[1])
	case KindType:
		if len(actual.params) == 0 || len(declared.params) == 0 {
			return len(actual.params) == len(declared.params)
		}
		return IsAssignable(actual.params[0], declared.params[0])
	default:
		return actual.Equal(declared)
	}
}

// GoString lets %#v and debugger/spew dumps render a Type compactly instead
// of exposing the unexported fields.
func (t Type) GoString() string {
	return fmt.Sprintf("types.Type{%s}", t.DebugString())
}

func (t Type) String() string { return t.DebugString() }
