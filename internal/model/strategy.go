package model

// CopyStrategyKind tags how an updated instance of a type is constructed for
// a Lens set. CopyNone is an explicit "unsupported" sentinel; it must never
// reach generation.
type CopyStrategyKind int

const (
	CopyNone CopyStrategyKind = iota
	CopyViaBuilder
	CopyWither
	CopyViaConstructor
	CopyViaCopyAndSet
)

func (k CopyStrategyKind) String() string {
	switch k {
	case CopyViaBuilder:
		return "via-builder"
	case CopyWither:
		return "wither"
	case CopyViaConstructor:
		return "via-constructor"
	case CopyViaCopyAndSet:
		return "via-copy-and-set"
	case CopyNone:
		return "none"
	default:
		return "unknown"
	}
}

// CopyStrategyInfo carries the method names needed to synthesize an update
// expression for one settable field. Only the parameters of the tagged kind
// are meaningful.
type CopyStrategyInfo struct {
	Kind CopyStrategyKind

	// GetterName is the accessor used by the lens get. Empty means a direct
	// call named after the field itself.
	GetterName string

	// CopyViaBuilder
	BuilderObtainer string
	BuilderSetter   string
	BuildMethod     string

	// CopyWither
	WitherName string

	// CopyViaConstructor. An empty ParamOrder is carried through to
	// generation, where it produces a placeholder that fails at the
	// generated code's runtime rather than miscompiling silently.
	ConstructorRef string
	ParamOrder     []string

	// CopyViaCopyAndSet. An empty CopyCtorRef means a plain value copy of
	// the declaring type.
	CopyCtorRef string
	SetterName  string
}

// PrismHintKind tags how a sum variant is discriminated. PrismNone must
// never reach generation.
type PrismHintKind int

const (
	PrismNone PrismHintKind = iota
	PrismInstanceOf
	PrismMatchWhen
)

func (k PrismHintKind) String() string {
	switch k {
	case PrismInstanceOf:
		return "instance-of"
	case PrismMatchWhen:
		return "match-when"
	case PrismNone:
		return "none"
	default:
		return "unknown"
	}
}

// PrismHintInfo carries either a structural target type or a
// predicate/accessor method pair.
type PrismHintInfo struct {
	Kind      PrismHintKind
	Target    *TypeRef // PrismInstanceOf
	Predicate string   // PrismMatchWhen
	Accessor  string   // PrismMatchWhen
}

// TraversalHintKind tags how a container-typed field is traversed.
// TraversalNone must never reach generation.
type TraversalHintKind int

const (
	TraversalNone TraversalHintKind = iota
	TraverseWith
	ThroughField
)

func (k TraversalHintKind) String() string {
	switch k {
	case TraverseWith:
		return "traverse-with"
	case ThroughField:
		return "through-field"
	case TraversalNone:
		return "none"
	default:
		return "unknown"
	}
}

// TraversalHintInfo names either an existing traversal reference or a field
// whose traversal is auto-detected from its ContainerType. An empty Ref on
// ThroughField signals auto-detection.
type TraversalHintInfo struct {
	Kind      TraversalHintKind
	Ref       string
	FieldName string
}
