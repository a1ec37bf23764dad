// Package ast defines the input AST the checker consumes: identifiers,
// selects, receiver-style calls, list/map/struct construction, and
// comprehensions (spec §3, §6). Producing this tree from source text is
// the out-of-scope parser collaborator — this package only describes its
// shape.
//
// Node-kind-switch style and Pos()-style identity carried on every node
// are grounded on the teacher's internal/ast/nodes.go; the node set itself
// is new, since the teacher's AST is for an imperative statement language
// (LetStmt, WhileStmt, ...) that has no analogue here.
package ast

// Expr is any checkable expression node. Every concrete node carries its
// own stable identity, assigned by whatever produced the tree; the
// checker never allocates identities itself and keys every side table on
// them.
type Expr interface {
	// ID returns the node's identity, unique within one AST.
	ID() int64
}

// IdentExpr is a bare identifier reference, e.g. "x".
type IdentExpr struct {
	NodeID int64
	Name   string
}

func (e *IdentExpr) ID() int64 { return e.NodeID }

// SelectExpr is a field access, e.g. "a.b". TestOnly marks a has()-style
// presence test ("a.b" inside has(a.b)), which always types to bool
// regardless of the operand's field type (spec §4.6).
type SelectExpr struct {
	NodeID   int64
	Operand  Expr
	Field    string
	TestOnly bool
}

func (e *SelectExpr) ID() int64 { return e.NodeID }

// CallExpr is a function call. Target is nil for a plain call (f(args)),
// non-nil for receiver-style syntax (target.f(args)) — which the checker
// may still resolve as a plain namespaced call if target.f happens to
// name a declared qualified function (spec §4.5).
type CallExpr struct {
	NodeID   int64
	Target   Expr
	Function string
	Args     []Expr
}

func (e *CallExpr) ID() int64 { return e.NodeID }

// ListElement is one element of a CreateListExpr. Optional marks
// "?expr"-style optional-element syntax.
type ListElement struct {
	Value    Expr
	Optional bool
}

// CreateListExpr constructs a list literal.
type CreateListExpr struct {
	NodeID   int64
	Elements []ListElement
}

func (e *CreateListExpr) ID() int64 { return e.NodeID }

// MapEntry is one key/value pair of a CreateMapExpr. Optional marks
// "?expr"-style optional-value syntax.
type MapEntry struct {
	Key      Expr
	Value    Expr
	Optional bool
}

// CreateMapExpr constructs a map literal.
type CreateMapExpr struct {
	NodeID  int64
	Entries []MapEntry
}

func (e *CreateMapExpr) ID() int64 { return e.NodeID }

// StructField is one field assignment of a CreateStructExpr. Optional
// marks "?field: expr"-style optional-field syntax. NodeID gives the field
// its own identity (distinct from its Value's) so a field-level diagnostic
// — an undefined field, a field-type mismatch — can be located at the
// field itself rather than at the enclosing CreateStructExpr.
type StructField struct {
	NodeID   int64
	Name     string
	Value    Expr
	Optional bool
}

func (f StructField) ID() int64 { return f.NodeID }

// CreateStructExpr constructs a struct/message literal, e.g. pkg.M{f: 1}.
// Name is exactly as written in source; resolution against the
// environment happens during checking (spec §4.4).
type CreateStructExpr struct {
	NodeID int64
	Name   string
	Fields []StructField
}

func (e *CreateStructExpr) ID() int64 { return e.NodeID }

// ComprehensionExpr is a list/map comprehension (spec §4.7). IterVar is
// bound, in the iter scope, to each element of IterRange in turn (or each
// key, for a map range); AccuVar is bound, in the accu scope, starting at
// AccuInit and updated by LoopStep; LoopCondition (checked in the accu
// scope) and Result (also checked in the accu scope) complete the loop.
type ComprehensionExpr struct {
	NodeID        int64
	IterRange     Expr
	IterVar       string
	AccuInit      Expr
	AccuVar       string
	LoopCondition Expr
	LoopStep      Expr
	Result        Expr
}

func (e *ComprehensionExpr) ID() int64 { return e.NodeID }

// ConstantKind tags the variant a Constant carries.
type ConstantKind uint8

const (
	ConstNull ConstantKind = iota
	ConstBool
	ConstInt
	ConstUint
	ConstDouble
	ConstString
	ConstBytes
)

// Constant is a literal value.
type Constant struct {
	Kind        ConstantKind
	BoolValue   bool
	IntValue    int64
	UintValue   uint64
	DoubleValue float64
	StringValue string
	BytesValue  []byte
}

// LiteralExpr is a literal constant.
type LiteralExpr struct {
	NodeID int64
	Value  Constant
}

func (e *LiteralExpr) ID() int64 { return e.NodeID }

// SourceInfo maps node identities to byte offsets, plus the line-offset
// table needed to turn a byte offset into a line/column (spec §6).
// LineOffsets must be sorted ascending and conventionally starts with 0.
type SourceInfo struct {
	Positions   map[int64]int32
	LineOffsets []int32
}
