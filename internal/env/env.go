// Package env implements the read-only TypeCheckEnv the checker consumes
// (spec §3): variable and function declarations, qualified-name-to-type
// lookup, and struct field lookup, plus the small VariableDecl/
// FunctionDecl/Overload/StructTypeField value types every other package
// in this module takes as input.
//
// Building the real environment — loading a standard library, wiring
// extension functions, honouring the enable_* flags in spec §6 — is the
// out-of-scope registry collaborator; this package only holds the result
// of that process and the minimal constructors a caller (or a test fixture)
// needs to assemble one directly.
//
// Grounded on the teacher's internal/checker's registerFunctions/
// registerEntities maps (map[string]*FuncInfo, map[string]*EntityInfo),
// reshaped into a struct that is built once, then treated as read-only for
// the lifetime of every check that shares it (spec §5).
package env

import (
	"fmt"
	"strings"

	"github.com/exprlang/typecheck/internal/types"
)

// VariableDecl is a declared variable's name and type.
type VariableDecl struct {
	Name string
	Type types.Type
}

// Overload is one signature of a possibly-overloaded function.
type Overload struct {
	ID             string
	Member         bool
	Parameters     []types.Type
	Result         types.Type
	TypeParameters map[string]struct{}
}

// FunctionDecl is a function name together with every overload it has.
type FunctionDecl struct {
	Name      string
	Overloads []*Overload
}

// StructTypeField is one declared field of a struct type.
type StructTypeField struct {
	Name string
	Type types.Type
}

type structFieldKey struct {
	Struct string
	Field  string
}

// TypeCheckEnv is the read-only environment a Check call resolves names
// against. Construct one with New and populate it with AddVariable/
// AddFunction/AddType/AddStructField before sharing it across checks;
// nothing in this package mutates it afterwards.
type TypeCheckEnv struct {
	Container string

	variables map[string]*VariableDecl
	functions map[string]*FunctionDecl
	typeNames map[string]types.Type
	fields    map[structFieldKey]*StructTypeField
}

// New returns an empty environment rooted at the given container.
func New(container string) *TypeCheckEnv {
	return &TypeCheckEnv{
		Container: container,
		variables: map[string]*VariableDecl{},
		functions: map[string]*FunctionDecl{},
		typeNames: map[string]types.Type{},
		fields:    map[structFieldKey]*StructTypeField{},
	}
}

// AddVariable declares a variable, overwriting any prior declaration of
// the same name.
func (e *TypeCheckEnv) AddVariable(name string, t types.Type) {
	e.variables[name] = &VariableDecl{Name: name, Type: t}
}

// AddFunction declares a function's full overload set at once, rejecting
// two overloads that share (member, arity, parameter types) after
// free-variable normalisation — the invariant spec §3 places on
// FunctionDecl.
func (e *TypeCheckEnv) AddFunction(fn *FunctionDecl) error {
	seen := map[string]bool{}
	for _, ov := range fn.Overloads {
		sig := overloadSignature(ov)
		if seen[sig] {
			return fmt.Errorf("function %q: duplicate overload signature %s", fn.Name, sig)
		}
		seen[sig] = true
	}
	e.functions[fn.Name] = fn
	return nil
}

// AddType declares a named type (a struct type, or any other qualified
// type name a select/create-struct expression might reference).
func (e *TypeCheckEnv) AddType(name string, t types.Type) {
	e.typeNames[name] = t
}

// AddStructField declares one field of a struct type previously added
// with AddType.
func (e *TypeCheckEnv) AddStructField(structName string, field StructTypeField) {
	e.fields[structFieldKey{Struct: structName, Field: field.Name}] = &field
}

// LookupVariable finds a declared variable by exact name.
func (e *TypeCheckEnv) LookupVariable(name string) (*VariableDecl, bool) {
	d, ok := e.variables[name]
	return d, ok
}

// LookupFunction finds a declared function by exact name (any overload
// arity/member-ness; overload filtering happens in package inference).
func (e *TypeCheckEnv) LookupFunction(name string) (*FunctionDecl, bool) {
	f, ok := e.functions[name]
	return f, ok
}

// LookupType finds a declared type by exact qualified name.
func (e *TypeCheckEnv) LookupType(name string) (types.Type, bool) {
	t, ok := e.typeNames[name]
	return t, ok
}

// LookupField finds a declared struct field by exact struct and field name.
func (e *TypeCheckEnv) LookupField(structName, fieldName string) (*StructTypeField, bool) {
	f, ok := e.fields[structFieldKey{Struct: structName, Field: fieldName}]
	return f, ok
}

// overloadSignature canonicalises an overload's (member, arity, parameter
// types) for the duplicate-overload check, alpha-renaming type parameters
// by first occurrence so that fn(T, T) and fn(U, U) collide but fn(T, U)
// does not.
func overloadSignature(ov *Overload) string {
	renamed := map[string]string{}
	var b strings.Builder
	fmt.Fprintf(&b, "member=%v/", ov.Member)
	names := make([]string, 0, len(ov.Parameters))
	for _, p := range ov.Parameters {
		names = append(names, canonicalize(p, renamed))
	}
	b.WriteString(strings.Join(names, ","))
	return b.String()
}

func canonicalize(t types.Type, renamed map[string]string) string {
	if t.Kind() == types.KindTypeParam {
		name, ok := renamed[t.Name()]
		if !ok {
			name = fmt.Sprintf("#%d", len(renamed))
			renamed[t.Name()] = name
		}
		return "type_param(" + name + ")"
	}
	params := t.Parameters()
	if len(params) == 0 {
		return t.DebugString()
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = canonicalize(p, renamed)
	}
	return fmt.Sprintf("%s(%s)[%s]", t.Kind(), t.Name(), strings.Join(parts, ","))
}
