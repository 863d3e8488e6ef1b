package model

// ShapeKind classifies a declared type. Classification is total and
// exclusive: the analyser checks Product before Sum, Sum before Enumerated,
// Enumerated before CopyMutable, and CopyMutable before Unsupported.
type ShapeKind int

const (
	KindUnsupported ShapeKind = iota
	KindProduct
	KindSum
	KindEnumerated
	KindCopyMutable
)

func (k ShapeKind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindSum:
		return "sum"
	case KindEnumerated:
		return "enumerated"
	case KindCopyMutable:
		return "copy-mutable"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ContainerKind is one of the five recognized container families.
type ContainerKind int

const (
	ContainerList ContainerKind = iota
	ContainerSet
	ContainerMap
	ContainerOption
	ContainerArray
)

func (k ContainerKind) String() string {
	switch k {
	case ContainerList:
		return "list"
	case ContainerSet:
		return "set"
	case ContainerMap:
		return "map"
	case ContainerOption:
		return "option"
	case ContainerArray:
		return "array"
	default:
		return "unknown"
	}
}

// ContainerType describes a fully saturated container occurrence.
type ContainerType struct {
	Kind ContainerKind
	Elem *TypeRef // element, or value type for maps
	Key  *TypeRef // maps only
	Len  int      // arrays only
}

func (c *ContainerType) IsMap() bool {
	return c != nil && c.Kind == ContainerMap
}

// FieldDescriptor is one component of a Product or CopyMutable type.
type FieldDescriptor struct {
	Name         string
	DeclaredType *TypeRef
	Container    *ContainerType // nil when the type is not a recognized container
}

// HasTraversal reports whether the field admits a standard traversal.
func (f FieldDescriptor) HasTraversal() bool {
	return f.Container != nil
}

// CopyOperation pairs a zero-arg getter with its wither. Both halves agree on
// the focus type; a candidate pair with mismatched types is simply absent.
type CopyOperation struct {
	Field  string // field name shared by both halves, e.g. "Name"
	Getter string
	Wither string
	Type   *TypeRef
}

// TypeShape is the immutable classification result for one declared type.
type TypeShape struct {
	Ref            *TypeRef
	Kind           ShapeKind
	Fields         []FieldDescriptor // Product, CopyMutable
	Variants       []*TypeRef        // Sum
	Constants      []string          // Enumerated
	CopyOps        []CopyOperation   // CopyMutable
	MutableSetters []string          // qualifying Set* methods found on the type
	Methods        []Method          // declared method facts, empty when unknown
}

// Method looks up a declared method by name. The second result is false when
// no method facts were recorded for the type.
func (s *TypeShape) Method(name string) (Method, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// SupportsLens is derived from the kind; it is never stored independently.
func (s *TypeShape) SupportsLens() bool {
	return s.Kind == KindProduct || s.Kind == KindCopyMutable
}

// SupportsPrism is derived from the kind; it is never stored independently.
func (s *TypeShape) SupportsPrism() bool {
	return s.Kind == KindSum || s.Kind == KindEnumerated
}

// HasMutableFields reports whether a qualifying setter exists for any field,
// independent of wither presence. It gates generation for genuinely mutable
// external types unless explicitly overridden.
func (s *TypeShape) HasMutableFields() bool {
	return len(s.MutableSetters) > 0
}

// Field looks up a field descriptor by name.
func (s *TypeShape) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// CopyOp looks up the getter/wither pair for a field.
func (s *TypeShape) CopyOp(field string) (CopyOperation, bool) {
	for _, op := range s.CopyOps {
		if op.Field == field {
			return op, true
		}
	}
	return CopyOperation{}, false
}
