package types

// FlattenedKind tags the variant a FlattenedType carries — the closed
// union spec §6 requires the output AST's type map to use, bit-exact to
// the form the original implementation serializes.
type FlattenedKind uint8

const (
	FlatNull FlattenedKind = iota
	FlatDyn
	FlatError
	FlatPrimitive
	FlatWrapper
	FlatWellKnown
	FlatList
	FlatMap
	FlatMessage
	FlatAbstract
	FlatType
)

// PrimitiveKind is the payload of a FlatPrimitive or FlatWrapper FlattenedType.
type PrimitiveKind uint8

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveInt64
	PrimitiveUint64
	PrimitiveDouble
	PrimitiveString
	PrimitiveBytes
)

// WellKnownKind is the payload of a FlatWellKnown FlattenedType.
type WellKnownKind uint8

const (
	WellKnownAny WellKnownKind = iota
	WellKnownDuration
	WellKnownTimestamp
)

// FlattenedType is the closed-union serialization form for a Type,
// produced only after every type variable has been finalized (spec §6).
// Exactly one of its fields is meaningful, selected by Kind.
type FlattenedType struct {
	Kind      FlattenedKind
	Primitive PrimitiveKind
	WellKnown WellKnownKind
	Elem      *FlattenedType
	Key       *FlattenedType
	Value     *FlattenedType
	Name      string
	Params    []FlattenedType
	Param     *FlattenedType
}

// Flatten converts a ground (variable-free) Type into its closed-union
// form. A type_param that slips through un-substituted — which shouldn't
// happen once inference.Context.FinalizeType has run — flattens to dyn,
// matching spec §6's "free type variables after FinalizeType flatten to
// dyn" and §8's "no dangling type variables in output" property.
func Flatten(t Type) FlattenedType {
	switch t.kind {
	case KindNull:
		return FlattenedType{Kind: FlatNull}
	case KindDyn, KindTypeParam:
		return FlattenedType{Kind: FlatDyn}
	case KindError:
		return FlattenedType{Kind: FlatError}
	case KindBool:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveBool}
	case KindInt:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveInt64}
	case KindUint:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveUint64}
	case KindDouble:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveDouble}
	case KindString:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveString}
	case KindBytes:
		return FlattenedType{Kind: FlatPrimitive, Primitive: PrimitiveBytes}
	case KindBoolWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveBool}
	case KindIntWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveInt64}
	case KindUintWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveUint64}
	case KindDoubleWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveDouble}
	case KindStringWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveString}
	case KindBytesWrapper:
		return FlattenedType{Kind: FlatWrapper, Primitive: PrimitiveBytes}
	case KindAny:
		return FlattenedType{Kind: FlatWellKnown, WellKnown: WellKnownAny}
	case KindDuration:
		return FlattenedType{Kind: FlatWellKnown, WellKnown: WellKnownDuration}
	case KindTimestamp:
		return FlattenedType{Kind: FlatWellKnown, WellKnown: WellKnownTimestamp}
	case KindList:
		elem := Flatten(t.params[0])
		return FlattenedType{Kind: FlatList, Elem: &elem}
	case KindMap:
		key := Flatten(t.params[0])
		value := Flatten(t.params[1])
		return FlattenedType{Kind: FlatMap, Key: &key, Value: &value}
	case KindStruct:
		return FlattenedType{Kind: FlatMessage, Name: t.name}
	case KindOpaque:
		params := make([]FlattenedType, len(t.params))
		for i, p := range t.params {
			params[i] = Flatten(p)
		}
		return FlattenedType{Kind: FlatAbstract, Name: t.name, Params: params}
	case KindType:
		if len(t.params) == 0 {
			return FlattenedType{Kind: FlatType}
		}
		param := Flatten(t.params[0])
		return FlattenedType{Kind: FlatType, Param: &param}
	default:
		return FlattenedType{Kind: FlatDyn}
	}
}
