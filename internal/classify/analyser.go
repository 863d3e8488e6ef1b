package classify

import (
	"strings"

	"github.com/higher-kinded-j/opticgen/internal/model"
)

// Reserved method-name prefixes. A candidate whose name is not strictly
// longer than its prefix never qualifies: "With" alone is not a wither and
// "Set" alone is not a setter.
const (
	WitherPrefix = "With"
	SetterPrefix = "Set"
)

// Analyse classifies one declared type. The precedence is fixed: Product,
// then Sum, then Enumerated, then CopyMutable, then Unsupported. A type can
// coincidentally satisfy more than one shallow pattern, so the order must
// not change.
func Analyse(decl *model.TypeDecl) *model.TypeShape {
	shape := &model.TypeShape{
		Ref:            decl.Ref,
		Kind:           model.KindUnsupported,
		MutableSetters: mutableSetters(decl),
		Methods:        append([]model.Method{}, decl.Methods...),
	}

	switch {
	case isProduct(decl):
		shape.Kind = model.KindProduct
		shape.Fields = describeFields(decl.Fields)

	case decl.IsInterface && len(decl.Variants) > 0:
		shape.Kind = model.KindSum
		shape.Variants = append([]*model.TypeRef{}, decl.Variants...)

	case !decl.IsStruct && !decl.IsInterface && len(decl.Constants) > 0:
		shape.Kind = model.KindEnumerated
		shape.Constants = append([]string{}, decl.Constants...)

	default:
		ops := copyOperations(decl)
		if len(ops) > 0 {
			shape.Kind = model.KindCopyMutable
			shape.CopyOps = ops
			shape.Fields = fieldsFromCopyOps(ops)
		}
	}

	return shape
}

// isProduct reports record-likeness: a struct whose components are all
// exported and which carries no qualifying setter, so the value is treated
// as immutable and updated by copy.
func isProduct(decl *model.TypeDecl) bool {
	if !decl.IsStruct {
		return false
	}
	for _, f := range decl.Fields {
		if !f.Exported {
			return false
		}
	}
	return len(mutableSetters(decl)) == 0
}

func describeFields(components []model.Component) []model.FieldDescriptor {
	out := make([]model.FieldDescriptor, 0, len(components))
	for _, c := range components {
		out = append(out, model.FieldDescriptor{
			Name:         c.Name,
			DeclaredType: c.Type,
			Container:    Container(c.Type),
		})
	}
	return out
}

// copyOperations scans the method list for valid getter/wither pairs. Each
// failing condition voids that candidate only; other candidates on the same
// type are unaffected. A getter/wither pair disagreeing on the focus type is
// dropped silently rather than reported.
func copyOperations(decl *model.TypeDecl) []model.CopyOperation {
	var ops []model.CopyOperation
	for _, m := range decl.Methods {
		if !isWitherCandidate(decl, m) {
			continue
		}
		field := m.Name[len(WitherPrefix):]
		getter, ok := findGetter(decl, field)
		if !ok {
			continue
		}
		if !getter.Results[0].Equal(m.Params[0]) {
			// type mismatch voids the pairing entirely
			continue
		}
		ops = append(ops, model.CopyOperation{
			Field:  field,
			Getter: getter.Name,
			Wither: m.Name,
			Type:   m.Params[0],
		})
	}
	return ops
}

// isWitherCandidate checks every wither condition independently: reserved
// prefix with a strictly longer name, public, non-static, exactly one
// parameter, and a result of the declaring type or a pointer to it (the
// introspection layer canonicalises *T as Option[T]).
func isWitherCandidate(decl *model.TypeDecl, m model.Method) bool {
	if !m.Exported || m.PkgFunc {
		return false
	}
	if len(m.Name) <= len(WitherPrefix) || !strings.HasPrefix(m.Name, WitherPrefix) {
		return false
	}
	if len(m.Params) != 1 || len(m.Results) != 1 {
		return false
	}
	return returnsDeclaring(decl, m.Results[0])
}

func returnsDeclaring(decl *model.TypeDecl, res *model.TypeRef) bool {
	if res == nil {
		return false
	}
	if res.Key() == decl.Ref.Key() {
		return true
	}
	if res.PkgPath == "" && res.Name == model.FamilyOption && len(res.Args) == 1 {
		return res.Args[0] != nil && res.Args[0].Key() == decl.Ref.Key()
	}
	return false
}

func findGetter(decl *model.TypeDecl, name string) (model.Method, bool) {
	for _, m := range decl.Methods {
		if m.Name != name {
			continue
		}
		if !m.Exported || m.PkgFunc || len(m.Params) != 0 || len(m.Results) != 1 {
			continue
		}
		return m, true
	}
	return model.Method{}, false
}

func fieldsFromCopyOps(ops []model.CopyOperation) []model.FieldDescriptor {
	out := make([]model.FieldDescriptor, 0, len(ops))
	for _, op := range ops {
		out = append(out, model.FieldDescriptor{
			Name:         op.Field,
			DeclaredType: op.Type,
			Container:    Container(op.Type),
		})
	}
	return out
}

// mutableSetters collects public, non-static, single-argument, void methods
// named with the reserved setter prefix and a strictly longer name.
func mutableSetters(decl *model.TypeDecl) []string {
	var names []string
	for _, m := range decl.Methods {
		if !m.Exported || m.PkgFunc {
			continue
		}
		if len(m.Name) <= len(SetterPrefix) || !strings.HasPrefix(m.Name, SetterPrefix) {
			continue
		}
		if len(m.Params) != 1 || len(m.Results) != 0 {
			continue
		}
		names = append(names, m.Name)
	}
	return names
}
