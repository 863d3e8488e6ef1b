package resolve

import (
	"fmt"
	"strings"

	"github.com/higher-kinded-j/opticgen/internal/model"
)

// TraversalRef is a finalized traversal source for the generator. Std names
// a factory in the optics runtime; otherwise Expr is a user-supplied
// reference, and Call records whether it already denotes an invocation so
// the generator never appends redundant call syntax.
type TraversalRef struct {
	Std  bool
	Name string // Std only: runtime factory name
	Expr string // user reference, without any ()
	Call bool
}

// StandardTraversal is the pure mapping from each container kind to its
// canonical runtime traversal factory. The five references are pairwise
// distinct; that injectivity is a required invariant.
func StandardTraversal(k model.ContainerKind) string {
	switch k {
	case model.ContainerList:
		return "SliceTraversal"
	case model.ContainerSet:
		return "SetTraversal"
	case model.ContainerMap:
		return "MapValues"
	case model.ContainerOption:
		return "OptionTraversal"
	case model.ContainerArray:
		return "ArrayTraversal"
	default:
		panic(fmt.Sprintf("opticgen: no standard traversal for container kind %d", int(k)))
	}
}

// Traversal validates a traversal hint against a shape and finalizes its
// reference. Auto-detection from a field's ContainerType happens here when
// the hint names a field without an explicit reference; a field with no
// recognized container and no reference is a hard error.
func Traversal(shape *model.TypeShape, hint model.TraversalHintInfo) (TraversalRef, error) {
	switch hint.Kind {
	case model.TraverseWith:
		if hint.Ref == "" {
			return TraversalRef{}, userError(shape.Ref.Name, "", "traversal hint",
				"traverse-with requires a traversal reference")
		}
		return externalRef(hint.Ref), nil

	case model.ThroughField:
		field, ok := shape.Field(hint.FieldName)
		if !ok {
			return TraversalRef{}, userError(shape.Ref.Name, hint.FieldName, "traversal hint",
				"no such field")
		}
		if hint.Ref != "" {
			return externalRef(hint.Ref), nil
		}
		if field.Container == nil {
			return TraversalRef{}, userError(shape.Ref.Name, hint.FieldName, "traversal hint",
				"traversal not specified and not auto-detected")
		}
		return TraversalRef{Std: true, Name: StandardTraversal(field.Container.Kind), Call: true}, nil

	case model.TraversalNone:
		panic("opticgen: traversal hint kind None reached generation")

	default:
		panic(fmt.Sprintf("opticgen: unknown traversal hint kind %d", int(hint.Kind)))
	}
}

// externalRef distinguishes a method-call reference from a direct
// field/constant reference by its invocation suffix.
func externalRef(ref string) TraversalRef {
	if strings.HasSuffix(ref, "()") {
		return TraversalRef{Expr: strings.TrimSuffix(ref, "()"), Call: true}
	}
	return TraversalRef{Expr: ref, Call: false}
}
