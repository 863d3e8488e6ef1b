package model

import "strings"

// Container family names recognized by the classifier. Families live in the
// empty package path so they can never collide with a user-declared type.
const (
	FamilyList   = "List"
	FamilySet    = "Set"
	FamilyMap    = "Map"
	FamilyOption = "Option"
	FamilyArray  = "Array"
)

// TypeRef is a canonical reference to a declared or built-in type.
//
// The introspection provider canonicalises Go composites into the container
// families above: []T → List[T], map[K]V → Map[K,V], map[T]struct{} →
// Set[T], *T → Option[T], [N]T → Array[T] (ArrayLen = N).
// Hand-built (spec-declared) references may name a family with missing type
// arguments; such "raw" references are never treated as containers.
type TypeRef struct {
	PkgPath  string
	Name     string
	Args     []*TypeRef
	ArrayLen int // Array family only
}

// Key returns the identity of the referenced type, ignoring type arguments.
func (t *TypeRef) Key() string {
	if t == nil {
		return ""
	}
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath + "." + t.Name
}

func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	s := t.Key()
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		s += "[" + strings.Join(args, ",") + "]"
	}
	return s
}

// Equal reports structural equality of two references.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.PkgPath != o.PkgPath || t.Name != o.Name || len(t.Args) != len(o.Args) || t.ArrayLen != o.ArrayLen {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Component is one declared field of a struct type, in declaration order.
type Component struct {
	Name     string
	Type     *TypeRef
	Exported bool
}

// Method is one operation the introspection provider reports for a type.
// PkgFunc marks package-level functions associated with the type (factory
// functions and the like); those never qualify as getters, withers or setters.
type Method struct {
	Name     string
	Exported bool
	PkgFunc  bool
	Params   []*TypeRef
	Results  []*TypeRef
}

// TypeDecl is the raw structural fact sheet the introspection provider
// reports for one declared type. It is the sole input of the shape analyser.
type TypeDecl struct {
	Ref         *TypeRef
	IsStruct    bool
	IsInterface bool
	Fields      []Component // struct fields, declaration order
	Variants    []*TypeRef  // permitted implementations of a sealed interface
	Constants   []string    // const names declared with this type, in order
	Methods     []Method
}
