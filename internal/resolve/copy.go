package resolve

import (
	"github.com/higher-kinded-j/opticgen/internal/model"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

// Copy resolves how a Lens set constructs an updated instance of shape for
// one field. Product types are updated by the generator's own struct copy
// and never reach this resolver; for every other lens-bearing type the
// strategy comes from an explicit declaration, with a single documented
// heuristic: a detected getter/wither pair stands in for a missing
// declaration (wither-style).
func Copy(shape *model.TypeShape, field model.FieldDescriptor, spec *opticgen.CopySpec) (model.CopyStrategyInfo, error) {
	typ := shape.Ref.Name

	if spec == nil {
		if op, ok := shape.CopyOp(field.Name); ok {
			return model.CopyStrategyInfo{
				Kind:       model.CopyWither,
				GetterName: op.Getter,
				WitherName: op.Wither,
			}, nil
		}
		return model.CopyStrategyInfo{}, userError(typ, field.Name, "copy strategy",
			"no strategy declared and no getter/wither pair detected")
	}

	info := model.CopyStrategyInfo{GetterName: spec.Getter}

	switch spec.Strategy {
	case "builder":
		info.Kind = model.CopyViaBuilder
		info.BuilderObtainer = orDefault(spec.BuilderObtainer, "ToBuilder")
		info.BuilderSetter = orDefault(spec.BuilderSetter, field.Name)
		info.BuildMethod = orDefault(spec.BuildMethod, "Build")

	case "wither":
		wither := WitherName(shape, field.Name)
		info.Kind = model.CopyWither
		info.WitherName = wither

	case "constructor":
		info.Kind = model.CopyViaConstructor
		info.ConstructorRef = orDefault(spec.Constructor, "New"+typ)
		// An empty parameter order is carried through deliberately: the
		// generator emits a placeholder that fails when invoked, so the
		// rest of the type's optics still compile.
		info.ParamOrder = append([]string{}, spec.ParamOrder...)

	case "copy-and-set":
		info.Kind = model.CopyViaCopyAndSet
		info.CopyCtorRef = spec.CopyCtor
		info.SetterName = orDefault(spec.Setter, "Set"+field.Name)

	default:
		return model.CopyStrategyInfo{}, userError(typ, field.Name, "copy strategy",
			"unknown strategy %q (want builder, wither, constructor or copy-and-set)", spec.Strategy)
	}

	return info, nil
}

// WitherName returns the wither paired with a field, or the conventional
// name when no pair was detected.
func WitherName(shape *model.TypeShape, field string) string {
	if op, ok := shape.CopyOp(field); ok {
		return op.Wither
	}
	return "With" + field
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
