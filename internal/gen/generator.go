package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/higher-kinded-j/opticgen/internal/model"
	"github.com/higher-kinded-j/opticgen/internal/nav"
	"github.com/higher-kinded-j/opticgen/internal/resolve"
)

// RuntimePath is the import path of the optics runtime the generated code
// links against.
const RuntimePath = "github.com/higher-kinded-j/opticgen/pkg/optics"

// VariantPrism is one resolved discrimination for a sum variant.
type VariantPrism struct {
	Variant *model.TypeRef
	Hint    model.PrismHintInfo
}

// TypePlan bundles everything resolved for one analysed type: its shape,
// per-field copy strategies (CopyMutable only), per-variant prism hints,
// per-field traversal references, and the optional navigation plan.
type TypePlan struct {
	Shape      *model.TypeShape
	Copies     map[string]model.CopyStrategyInfo
	Prisms     []VariantPrism
	Traversals map[string]resolve.TraversalRef
	Nav        *nav.Plan
}

// Generator turns resolved plans into structured member definitions and
// hands them to the sink, one artifact per analysed type.
type Generator struct {
	sink Sink
}

func New(sink Sink) *Generator {
	return &Generator{sink: sink}
}

// Type emits the full artifact for one plan.
func (g *Generator) Type(plan *TypePlan) error {
	shape := plan.Shape
	var members []jen.Code

	switch shape.Kind {
	case model.KindProduct:
		for _, f := range shape.Fields {
			members = append(members, g.productLens(shape, f), g.withUpdater(shape, f))
			members = append(members, g.containerMembers(plan, f)...)
		}
		if plan.Nav != nil {
			members = append(members, g.navigatorMembers(plan.Nav)...)
		}

	case model.KindCopyMutable:
		for _, f := range shape.Fields {
			info, ok := plan.Copies[f.Name]
			if !ok {
				return fmt.Errorf("%s.%s: no copy strategy resolved", shape.Ref.Name, f.Name)
			}
			members = append(members, g.copyLens(shape, f, info), g.withUpdater(shape, f))
			members = append(members, g.containerMembers(plan, f)...)
		}

	case model.KindSum:
		for _, p := range plan.Prisms {
			members = append(members, g.sumPrism(shape, p))
		}

	case model.KindEnumerated:
		for _, c := range shape.Constants {
			members = append(members, g.constantPrism(shape, c))
		}

	default:
		return fmt.Errorf("%s: %s shape supports no optics", shape.Ref.Name, shape.Kind)
	}

	return g.sink.Write(shape.Ref.Key()+"Optics", members)
}

// ---------------------------------------------------------------------------
// lenses

func (g *Generator) productLens(shape *model.TypeShape, f model.FieldDescriptor) jen.Code {
	sType := typeCode(shape.Ref)
	aType := typeCode(f.DeclaredType)

	return jen.Func().Id(lensName(shape, f.Name)).Params().
		Add(lensType(shape.Ref, f.DeclaredType)).
		Block(jen.Return(jen.Qual(RuntimePath, "NewLens").Call(
			jen.Func().Params(jen.Id("s").Add(sType)).Add(aType).
				Block(jen.Return(jen.Id("s").Dot(f.Name))),
			jen.Func().Params(jen.Id("a").Add(aType), jen.Id("s").Add(sType)).Add(sType).
				Block(
					jen.Id("s").Dot(f.Name).Op("=").Id("a"),
					jen.Return(jen.Id("s")),
				),
		)))
}

func (g *Generator) copyLens(shape *model.TypeShape, f model.FieldDescriptor, info model.CopyStrategyInfo) jen.Code {
	sType := typeCode(shape.Ref)
	aType := typeCode(f.DeclaredType)

	getter := info.GetterName
	if getter == "" {
		getter = f.Name
	}

	return jen.Func().Id(lensName(shape, f.Name)).Params().
		Add(lensType(shape.Ref, f.DeclaredType)).
		Block(jen.Return(jen.Qual(RuntimePath, "NewLens").Call(
			jen.Func().Params(jen.Id("s").Add(sType)).Add(aType).
				Block(jen.Return(jen.Id("s").Dot(getter).Call())),
			jen.Func().Params(jen.Id("a").Add(aType), jen.Id("s").Add(sType)).Add(sType).
				Block(g.setBody(shape, f, info)...),
		)))
}

// setBody synthesizes the update expression for one resolved copy strategy.
// CopyNone reaching this point is a programming error, raised immediately.
func (g *Generator) setBody(shape *model.TypeShape, f model.FieldDescriptor, info model.CopyStrategyInfo) []jen.Code {
	switch info.Kind {
	case model.CopyWither:
		return []jen.Code{jen.Return(jen.Id("s").Dot(info.WitherName).Call(jen.Id("a")))}

	case model.CopyViaBuilder:
		return []jen.Code{jen.Return(
			jen.Id("s").Dot(info.BuilderObtainer).Call().
				Dot(info.BuilderSetter).Call(jen.Id("a")).
				Dot(info.BuildMethod).Call(),
		)}

	case model.CopyViaConstructor:
		if len(info.ParamOrder) == 0 {
			// deferred failure: the placeholder raises when the generated
			// setter is actually invoked, so sibling optics still compile
			return []jen.Code{jen.Panic(jen.Lit(fmt.Sprintf(
				"opticgen: via-constructor copy strategy for %s.%s has an empty parameter order",
				shape.Ref.Name, f.Name)))}
		}
		args := make([]jen.Code, 0, len(info.ParamOrder))
		for _, p := range info.ParamOrder {
			if p == f.Name {
				args = append(args, jen.Id("a"))
				continue
			}
			args = append(args, jen.Id("s").Dot(p).Call())
		}
		return []jen.Code{jen.Return(jen.Id(info.ConstructorRef).Call(args...))}

	case model.CopyViaCopyAndSet:
		var copyStmt jen.Code
		if info.CopyCtorRef == "" {
			copyStmt = jen.Id("c").Op(":=").Id("s")
		} else {
			copyStmt = jen.Id("c").Op(":=").Id(info.CopyCtorRef).Call(jen.Id("s"))
		}
		return []jen.Code{
			copyStmt,
			jen.Id("c").Dot(info.SetterName).Call(jen.Id("a")),
			jen.Return(jen.Id("c")),
		}

	case model.CopyNone:
		panic(fmt.Sprintf("opticgen: copy strategy None reached generation for %s.%s", shape.Ref.Name, f.Name))

	default:
		panic(fmt.Sprintf("opticgen: unknown copy strategy kind %d", int(info.Kind)))
	}
}

func (g *Generator) withUpdater(shape *model.TypeShape, f model.FieldDescriptor) jen.Code {
	sType := typeCode(shape.Ref)
	aType := typeCode(f.DeclaredType)

	return jen.Func().Id("With"+shape.Ref.Name+f.Name).
		Params(jen.Id("s").Add(sType), jen.Id("v").Add(aType)).Add(sType).
		Block(jen.Return(jen.Id(lensName(shape, f.Name)).Call().Dot("Set").Call(jen.Id("v"), jen.Id("s"))))
}

// ---------------------------------------------------------------------------
// traversals and folds

// containerMembers emits the traversal, its singular "each" alias, and the
// fold for a container field. Non-container fields contribute nothing.
func (g *Generator) containerMembers(plan *TypePlan, f model.FieldDescriptor) []jen.Code {
	ref, ok := plan.Traversals[f.Name]
	if !ok {
		return nil
	}
	shape := plan.Shape
	elem := f.Container.Elem
	travName := shape.Ref.Name + f.Name + "Traversal"

	members := []jen.Code{
		jen.Func().Id(travName).Params().
			Add(traversalType(shape.Ref, elem)).
			Block(jen.Return(jen.Qual(RuntimePath, "ComposeLensTraversal").Call(
				jen.Id(lensName(shape, f.Name)).Call(),
				g.traversalExpr(ref, f),
			))),
	}

	if each := shape.Ref.Name + "Each" + inflection.Singular(f.Name); each != travName {
		members = append(members, jen.Func().Id(each).Params().
			Add(traversalType(shape.Ref, elem)).
			Block(jen.Return(jen.Id(travName).Call())))
	}

	members = append(members, jen.Func().Id(shape.Ref.Name+f.Name+"Fold").Params().
		Add(jen.Qual(RuntimePath, "Fold").Index(jen.List(typeCode(shape.Ref), typeCode(elem)))).
		Block(jen.Return(jen.Id(travName).Call().Dot("AsFold").Call())))

	return members
}

// traversalExpr renders a finalized traversal reference. A reference that
// already denotes a call never receives extra invocation syntax.
func (g *Generator) traversalExpr(ref resolve.TraversalRef, f model.FieldDescriptor) jen.Code {
	if !ref.Std {
		if ref.Call {
			return jen.Id(ref.Expr).Call()
		}
		return jen.Id(ref.Expr)
	}

	c := f.Container
	switch c.Kind {
	case model.ContainerList, model.ContainerSet, model.ContainerOption:
		return jen.Qual(RuntimePath, ref.Name).Index(typeCode(c.Elem)).Call()

	case model.ContainerMap:
		return jen.Qual(RuntimePath, ref.Name).Index(jen.List(typeCode(c.Key), typeCode(c.Elem))).Call()

	case model.ContainerArray:
		arr := typeCode(f.DeclaredType)
		el := typeCode(c.Elem)
		return jen.Qual(RuntimePath, ref.Name).Index(jen.List(arr, el)).Call(
			jen.Func().Params(jen.Id("s").Add(arr)).Index().Add(el).
				Block(jen.Return(jen.Id("s").Index(jen.Op(":")))),
			jen.Func().Params(jen.Id("e").Index().Add(el)).Add(arr).
				Block(
					jen.Var().Id("out").Add(arr),
					jen.Copy(jen.Id("out").Index(jen.Op(":")), jen.Id("e")),
					jen.Return(jen.Id("out")),
				),
		)

	default:
		panic(fmt.Sprintf("opticgen: unknown container kind %d", int(c.Kind)))
	}
}

// ---------------------------------------------------------------------------
// prisms

func (g *Generator) sumPrism(shape *model.TypeShape, p VariantPrism) jen.Code {
	sType := typeCode(shape.Ref)
	vType := typeCode(p.Variant)
	name := shape.Ref.Name + "As" + p.Variant.Name + "Prism"

	var preview []jen.Code
	switch p.Hint.Kind {
	case model.PrismInstanceOf:
		preview = []jen.Code{
			jen.If(
				jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id("s").Assert(typeCode(p.Hint.Target)),
				jen.Id("ok"),
			).Block(jen.Return(jen.Qual(RuntimePath, "Some").Call(jen.Id("v")))),
			jen.Return(jen.Qual(RuntimePath, "None").Index(vType).Call()),
		}

	case model.PrismMatchWhen:
		preview = []jen.Code{
			jen.If(jen.Id("s").Dot(p.Hint.Predicate).Call()).
				Block(jen.Return(jen.Qual(RuntimePath, "Some").Call(jen.Id("s").Dot(p.Hint.Accessor).Call()))),
			jen.Return(jen.Qual(RuntimePath, "None").Index(vType).Call()),
		}

	case model.PrismNone:
		panic(fmt.Sprintf("opticgen: prism hint None reached generation for %s variant %s", shape.Ref.Name, p.Variant.Name))

	default:
		panic(fmt.Sprintf("opticgen: unknown prism hint kind %d", int(p.Hint.Kind)))
	}

	return jen.Func().Id(name).Params().
		Add(jen.Qual(RuntimePath, "Prism").Index(jen.List(sType, vType))).
		Block(jen.Return(jen.Qual(RuntimePath, "NewPrism").Call(
			jen.Func().Params(jen.Id("s").Add(sType)).
				Add(jen.Qual(RuntimePath, "Option").Index(vType)).
				Block(preview...),
			jen.Func().Params(jen.Id("a").Add(vType)).Add(sType).
				Block(jen.Return(jen.Id("a"))),
		)))
}

func (g *Generator) constantPrism(shape *model.TypeShape, constant string) jen.Code {
	sType := typeCode(shape.Ref)
	constRef := jen.Qual(shape.Ref.PkgPath, constant)

	return jen.Func().Id(shape.Ref.Name+"As"+constant+"Prism").Params().
		Add(jen.Qual(RuntimePath, "Prism").Index(jen.List(sType, sType))).
		Block(jen.Return(jen.Qual(RuntimePath, "NewPrism").Call(
			jen.Func().Params(jen.Id("s").Add(sType)).
				Add(jen.Qual(RuntimePath, "Option").Index(sType)).
				Block(
					jen.If(jen.Id("s").Op("==").Add(constRef)).
						Block(jen.Return(jen.Qual(RuntimePath, "Some").Call(jen.Id("s")))),
					jen.Return(jen.Qual(RuntimePath, "None").Index(sType).Call()),
				),
			jen.Func().Params(jen.Id("a").Add(sType)).Add(sType).
				Block(jen.Return(jen.Id("a"))),
		)))
}

// ---------------------------------------------------------------------------
// navigators

// navigatorMembers emits the navigator class tree for one composed plan.
// Every navigator delegates to a lens from the original root type, so its
// get/set/modify semantics are exactly those of the un-navigated accessor.
func (g *Generator) navigatorMembers(plan *nav.Plan) []jen.Code {
	var members []jen.Code
	for _, fp := range plan.Fields {
		if fp.Navigator == nil {
			continue
		}
		// top-level entry point for a first-hop navigator
		members = append(members, jen.Func().Id("Navigate"+plan.Name+fp.Field.Name).Params().
			Id(fp.Navigator.Name).
			Block(jen.Return(jen.Id(fp.Navigator.Name).Values(jen.Dict{
				jen.Id("lens"): jen.Id(plan.Target.Name + fp.Field.Name + "Lens").Call(),
			}))))
		members = append(members, g.navigatorClass(fp.Navigator)...)
	}
	return members
}

func (g *Generator) navigatorClass(plan *nav.Plan) []jen.Code {
	rootType := typeCode(plan.Root)
	focusType := typeCode(plan.Target)
	recv := jen.Id("n").Id(plan.Name)

	members := []jen.Code{
		jen.Type().Id(plan.Name).Struct(
			jen.Id("lens").Add(lensType(plan.Root, plan.Target)),
		),
		jen.Func().Params(recv.Clone()).Id("Get").Params(jen.Id("s").Add(rootType)).Add(focusType).
			Block(jen.Return(jen.Id("n").Dot("lens").Dot("Get").Call(jen.Id("s")))),
		jen.Func().Params(recv.Clone()).Id("Set").Params(jen.Id("a").Add(focusType), jen.Id("s").Add(rootType)).Add(rootType).
			Block(jen.Return(jen.Id("n").Dot("lens").Dot("Set").Call(jen.Id("a"), jen.Id("s")))),
		jen.Func().Params(recv.Clone()).Id("Modify").
			Params(jen.Id("f").Func().Params(focusType).Add(focusType), jen.Id("s").Add(rootType)).Add(rootType).
			Block(jen.Return(jen.Id("n").Dot("lens").Dot("Modify").Call(jen.Id("f"), jen.Id("s")))),
		jen.Func().Params(recv.Clone()).Id("ToPath").Params().Add(lensType(plan.Root, plan.Target)).
			Block(jen.Return(jen.Id("n").Dot("lens"))),
	}

	for _, fp := range plan.Fields {
		inner := jen.Qual(RuntimePath, "ComposeLens").Call(
			jen.Id("n").Dot("lens"),
			jen.Id(plan.Target.Name+fp.Field.Name+"Lens").Call(),
		)
		if fp.Navigator == nil {
			members = append(members, jen.Func().Params(recv.Clone()).Id(fp.Field.Name).Params().
				Add(lensType(plan.Root, fp.Field.DeclaredType)).
				Block(jen.Return(inner)))
			continue
		}
		members = append(members, jen.Func().Params(recv.Clone()).Id(fp.Field.Name).Params().
			Id(fp.Navigator.Name).
			Block(jen.Return(jen.Id(fp.Navigator.Name).Values(jen.Dict{jen.Id("lens"): inner}))))
		members = append(members, g.navigatorClass(fp.Navigator)...)
	}
	return members
}

// ---------------------------------------------------------------------------
// helpers

func lensName(shape *model.TypeShape, field string) string {
	return shape.Ref.Name + field + "Lens"
}

// Multi-argument type instantiations go through jen.List: a bare
// Index(a, b) renders a slice expression [a:b], not a type-argument list.
func lensType(s, a *model.TypeRef) jen.Code {
	return jen.Qual(RuntimePath, "Lens").Index(jen.List(typeCode(s), typeCode(a)))
}

func traversalType(s, elem *model.TypeRef) jen.Code {
	return jen.Qual(RuntimePath, "Traversal").Index(jen.List(typeCode(s), typeCode(elem)))
}

// typeCode renders a canonical type reference back to Go syntax. Container
// families expand to their Go spellings; raw families cannot appear on a
// generated focus path.
func typeCode(t *model.TypeRef) *jen.Statement {
	if t == nil {
		panic("opticgen: nil type reference reached generation")
	}
	if t.PkgPath == "" {
		switch t.Name {
		case model.FamilyList:
			return jen.Index().Add(typeCode(t.Args[0]))
		case model.FamilySet:
			return jen.Map(typeCode(t.Args[0])).Struct()
		case model.FamilyMap:
			return jen.Map(typeCode(t.Args[0])).Add(typeCode(t.Args[1]))
		case model.FamilyOption:
			return jen.Op("*").Add(typeCode(t.Args[0]))
		case model.FamilyArray:
			return jen.Index(jen.Lit(t.ArrayLen)).Add(typeCode(t.Args[0]))
		}
		return jen.Id(t.Name)
	}
	s := jen.Qual(t.PkgPath, t.Name)
	if len(t.Args) > 0 {
		args := make([]jen.Code, len(t.Args))
		for i, a := range t.Args {
			args[i] = typeCode(a)
		}
		s = s.Index(jen.List(args...))
	}
	return s
}
