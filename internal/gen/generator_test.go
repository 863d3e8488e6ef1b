package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/higher-kinded-j/opticgen/internal/model"
	"github.com/higher-kinded-j/opticgen/internal/nav"
	"github.com/higher-kinded-j/opticgen/internal/resolve"
)

const pkg = "example.com/app/domain"

func strRef() *model.TypeRef { return &model.TypeRef{Name: "string"} }

func namedRef(name string) *model.TypeRef {
	return &model.TypeRef{PkgPath: pkg, Name: name}
}

func listOf(elem *model.TypeRef) (*model.TypeRef, *model.ContainerType) {
	return &model.TypeRef{Name: model.FamilyList, Args: []*model.TypeRef{elem}},
		&model.ContainerType{Kind: model.ContainerList, Elem: elem}
}

func emit(t *testing.T, plan *TypePlan) (*MemorySink, string) {
	t.Helper()
	sink := NewMemorySink()
	require.NoError(t, New(sink).Type(plan))
	require.Len(t, sink.Targets, 1)
	return sink, sink.Source(sink.Targets[0])
}

func TestGenerateProduct(t *testing.T) {
	listRef, listContainer := listOf(strRef())
	shape := &model.TypeShape{
		Ref:  namedRef("Order"),
		Kind: model.KindProduct,
		Fields: []model.FieldDescriptor{
			{Name: "ID", DeclaredType: strRef()},
			{Name: "Lines", DeclaredType: listRef, Container: listContainer},
		},
	}
	plan := &TypePlan{
		Shape: shape,
		Traversals: map[string]resolve.TraversalRef{
			"Lines": {Std: true, Name: "SliceTraversal", Call: true},
		},
	}

	sink, src := emit(t, plan)
	require.Equal(t, []string{pkg + ".OrderOptics"}, sink.Targets)

	// plain field: lens + with-updater, struct copy semantics
	require.Contains(t, src, "func OrderIDLens() optics.Lens[domain.Order, string]")
	require.Contains(t, src, "s.ID = a")
	require.Contains(t, src, "func WithOrderID(s domain.Order, v string) domain.Order")
	require.Contains(t, src, "OrderIDLens().Set(v, s)")

	// container field: traversal, singular alias, fold
	require.Contains(t, src, "func OrderLinesTraversal() optics.Traversal[domain.Order, string]")
	require.Contains(t, src, "optics.ComposeLensTraversal(OrderLinesLens(), optics.SliceTraversal[string]())")
	require.Contains(t, src, "func OrderEachLine() optics.Traversal[domain.Order, string]")
	require.Contains(t, src, "return OrderLinesTraversal()")
	require.Contains(t, src, "func OrderLinesFold() optics.Fold[domain.Order, string]")
	require.Contains(t, src, "OrderLinesTraversal().AsFold()")
}

func TestGenerateCopyStrategies(ttt *testing.T) {
	mkPlan := func(info model.CopyStrategyInfo) *TypePlan {
		shape := &model.TypeShape{
			Ref:  namedRef("Account"),
			Kind: model.KindCopyMutable,
			Fields: []model.FieldDescriptor{
				{Name: "Name", DeclaredType: strRef()},
			},
		}
		return &TypePlan{Shape: shape, Copies: map[string]model.CopyStrategyInfo{"Name": info}}
	}

	tests := []struct {
		name string
		info model.CopyStrategyInfo
		want []string
	}{
		{
			name: "wither",
			info: model.CopyStrategyInfo{Kind: model.CopyWither, GetterName: "Name", WitherName: "WithName"},
			want: []string{"return s.Name()", "return s.WithName(a)"},
		},
		{
			name: "builder",
			info: model.CopyStrategyInfo{
				Kind:            model.CopyViaBuilder,
				GetterName:      "Name",
				BuilderObtainer: "ToBuilder",
				BuilderSetter:   "Name",
				BuildMethod:     "Build",
			},
			want: []string{"s.ToBuilder().Name(a).Build()"},
		},
		{
			name: "constructor substitutes the focused parameter",
			info: model.CopyStrategyInfo{
				Kind:           model.CopyViaConstructor,
				GetterName:     "Name",
				ConstructorRef: "NewAccount",
				ParamOrder:     []string{"ID", "Name", "Role"},
			},
			want: []string{"return NewAccount(s.ID(), a, s.Role())"},
		},
		{
			name: "constructor with empty order defers failure",
			info: model.CopyStrategyInfo{
				Kind:           model.CopyViaConstructor,
				GetterName:     "Name",
				ConstructorRef: "NewAccount",
			},
			want: []string{`panic("opticgen: via-constructor copy strategy for Account.Name has an empty parameter order")`},
		},
		{
			name: "copy-and-set with value copy",
			info: model.CopyStrategyInfo{
				Kind:       model.CopyViaCopyAndSet,
				GetterName: "Name",
				SetterName: "SetName",
			},
			want: []string{"c := s", "c.SetName(a)", "return c"},
		},
		{
			name: "copy-and-set with copy constructor",
			info: model.CopyStrategyInfo{
				Kind:        model.CopyViaCopyAndSet,
				GetterName:  "Name",
				CopyCtorRef: "CloneAccount",
				SetterName:  "SetName",
			},
			want: []string{"c := CloneAccount(s)"},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, src := emit(t, mkPlan(tt.info))
			for _, w := range tt.want {
				require.Contains(t, src, w)
			}
		})
	}
}

func TestGenerateCopyNonePanics(t *testing.T) {
	shape := &model.TypeShape{
		Ref:  namedRef("Account"),
		Kind: model.KindCopyMutable,
		Fields: []model.FieldDescriptor{
			{Name: "Name", DeclaredType: strRef()},
		},
	}
	plan := &TypePlan{Shape: shape, Copies: map[string]model.CopyStrategyInfo{"Name": {Kind: model.CopyNone}}}

	require.Panics(t, func() {
		_ = New(NewMemorySink()).Type(plan)
	})
}

func TestGenerateSumPrisms(t *testing.T) {
	shape := &model.TypeShape{
		Ref:      namedRef("Shape"),
		Kind:     model.KindSum,
		Variants: []*model.TypeRef{namedRef("Circle"), namedRef("Square")},
	}
	plan := &TypePlan{
		Shape: shape,
		Prisms: []VariantPrism{
			{
				Variant: namedRef("Circle"),
				Hint:    model.PrismHintInfo{Kind: model.PrismInstanceOf, Target: namedRef("Circle")},
			},
			{
				Variant: namedRef("Square"),
				Hint:    model.PrismHintInfo{Kind: model.PrismMatchWhen, Predicate: "IsSquare", Accessor: "AsSquare"},
			},
		},
	}

	_, src := emit(t, plan)

	require.Contains(t, src, "func ShapeAsCirclePrism() optics.Prism[domain.Shape, domain.Circle]")
	require.Contains(t, src, "if v, ok := s.(domain.Circle); ok")
	require.Contains(t, src, "return optics.Some(v)")
	require.Contains(t, src, "optics.None[domain.Circle]()")

	require.Contains(t, src, "func ShapeAsSquarePrism()")
	require.Contains(t, src, "if s.IsSquare()")
	require.Contains(t, src, "optics.Some(s.AsSquare())")

	// review is the upcast itself
	require.Contains(t, src, "return a")
}

func TestGenerateEnumeratedPrisms(t *testing.T) {
	shape := &model.TypeShape{
		Ref:       namedRef("Color"),
		Kind:      model.KindEnumerated,
		Constants: []string{"Red", "Green"},
	}

	_, src := emit(t, &TypePlan{Shape: shape})

	require.Contains(t, src, "func ColorAsRedPrism() optics.Prism[domain.Color, domain.Color]")
	require.Contains(t, src, "if s == domain.Red")
	require.Contains(t, src, "func ColorAsGreenPrism()")
}

func TestGenerateNavigators(t *testing.T) {
	userRef, addressRef := namedRef("User"), namedRef("Address")
	address := &model.TypeShape{
		Ref:  addressRef,
		Kind: model.KindProduct,
		Fields: []model.FieldDescriptor{
			{Name: "Street", DeclaredType: strRef()},
		},
	}
	user := &model.TypeShape{
		Ref:  userRef,
		Kind: model.KindProduct,
		Fields: []model.FieldDescriptor{
			{Name: "Address", DeclaredType: addressRef},
		},
	}
	lookup := func(ref *model.TypeRef) (*model.TypeShape, bool) {
		if ref.Key() == addressRef.Key() {
			return address, true
		}
		return nil, false
	}
	navPlan, err := nav.Compose(user, nav.Config{MaxDepth: 1}, lookup)
	require.NoError(t, err)

	_, src := emit(t, &TypePlan{Shape: user, Nav: navPlan})

	// entry point hands out a navigator seeded with the first-hop lens
	require.Contains(t, src, "func NavigateUserAddress() UserAddressNavigator")
	require.Contains(t, src, "lens: UserAddressLens(),")

	// the class delegates get/set/modify/toPath to the composed lens
	require.Contains(t, src, "type UserAddressNavigator struct")
	require.Contains(t, src, "lens optics.Lens[domain.User, domain.Address]")
	require.Contains(t, src, "func (n UserAddressNavigator) Get(s domain.User) domain.Address")
	require.Contains(t, src, "return n.lens.Get(s)")
	require.Contains(t, src, "func (n UserAddressNavigator) Set(a domain.Address, s domain.User) domain.User")
	require.Contains(t, src, "return n.lens.Set(a, s)")
	require.Contains(t, src, "func (n UserAddressNavigator) Modify(f func(domain.Address) domain.Address, s domain.User) domain.User")
	require.Contains(t, src, "return n.lens.Modify(f, s)")
	require.Contains(t, src, "func (n UserAddressNavigator) ToPath() optics.Lens[domain.User, domain.Address]")
	require.Contains(t, src, "return n.lens")

	// budget spent: the leaf field is a composed plain lens
	require.Contains(t, src, "func (n UserAddressNavigator) Street() optics.Lens[domain.User, string]")
	require.Contains(t, src, "optics.ComposeLens(n.lens, AddressStreetLens())")
}

func TestGenerateUnsupportedShapeFails(t *testing.T) {
	shape := &model.TypeShape{Ref: namedRef("Blob"), Kind: model.KindUnsupported}

	err := New(NewMemorySink()).Type(&TypePlan{Shape: shape})
	require.Error(t, err)
	require.ErrorContains(t, err, "supports no optics")
}

func TestSinkRejectsDuplicateTargets(t *testing.T) {
	shape := &model.TypeShape{
		Ref:       namedRef("Color"),
		Kind:      model.KindEnumerated,
		Constants: []string{"Red"},
	}
	sink := NewMemorySink()
	g := New(sink)

	require.NoError(t, g.Type(&TypePlan{Shape: shape}))
	err := g.Type(&TypePlan{Shape: shape})
	require.Error(t, err)
	require.ErrorContains(t, err, "duplicate generated artifact")
}
