package resolve

import (
	"github.com/higher-kinded-j/opticgen/internal/model"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

// SubtypeOracle answers the subtype-relationship queries needed to validate
// instance-of discrimination. The go/types-backed introspection provider
// implements it; spec-declared sums fall back to the permitted-variant list.
type SubtypeOracle interface {
	AssignableTo(sub, base *model.TypeRef) bool
}

// Prism resolves discrimination for one variant of a sum shape.
func Prism(shape *model.TypeShape, spec opticgen.PrismSpec, oracle SubtypeOracle) (model.PrismHintInfo, error) {
	typ := shape.Ref.Name

	switch spec.Hint {
	case "", "instance-of":
		targetName := spec.Target
		if targetName == "" {
			// the prism's declared focus type
			targetName = spec.Variant
		}
		target := findVariant(shape, targetName)
		if target == nil {
			target = &model.TypeRef{PkgPath: shape.Ref.PkgPath, Name: targetName}
			if oracle == nil || !oracle.AssignableTo(target, shape.Ref) {
				return model.PrismHintInfo{}, userError(typ, spec.Variant, "prism hint",
					"%s is not a subtype of %s", targetName, typ)
			}
		}
		return model.PrismHintInfo{Kind: model.PrismInstanceOf, Target: target}, nil

	case "match-when":
		if spec.Predicate == "" || spec.Accessor == "" {
			return model.PrismHintInfo{}, userError(typ, spec.Variant, "prism hint",
				"match-when requires both a predicate and an accessor method name")
		}
		if err := matchWhenMethod(shape, spec.Variant, spec.Predicate); err != nil {
			return model.PrismHintInfo{}, err
		}
		if err := matchWhenMethod(shape, spec.Variant, spec.Accessor); err != nil {
			return model.PrismHintInfo{}, err
		}
		return model.PrismHintInfo{
			Kind:      model.PrismMatchWhen,
			Predicate: spec.Predicate,
			Accessor:  spec.Accessor,
		}, nil

	default:
		return model.PrismHintInfo{}, userError(typ, spec.Variant, "prism hint",
			"unknown hint %q (want instance-of or match-when)", spec.Hint)
	}
}

// matchWhenMethod checks a match-when name against the sum type's recorded
// method facts: the predicate and the accessor must both be public zero-arg
// methods with a single result. Shapes without method facts skip the check.
func matchWhenMethod(shape *model.TypeShape, variant, name string) error {
	if len(shape.Methods) == 0 {
		return nil
	}
	typ := shape.Ref.Name
	m, ok := shape.Method(name)
	if !ok {
		return userError(typ, variant, "prism hint",
			"match-when names %s, which is not a method of %s", name, typ)
	}
	if !m.Exported || m.PkgFunc {
		return userError(typ, variant, "prism hint",
			"match-when method %s.%s must be public", typ, name)
	}
	if len(m.Params) != 0 {
		return userError(typ, variant, "prism hint",
			"match-when method %s.%s must take no arguments", typ, name)
	}
	if len(m.Results) != 1 {
		return userError(typ, variant, "prism hint",
			"match-when method %s.%s must return exactly one value", typ, name)
	}
	return nil
}

func findVariant(shape *model.TypeShape, name string) *model.TypeRef {
	for _, v := range shape.Variants {
		if v.Name == name || v.Key() == name {
			return v
		}
	}
	return nil
}
