// Package introspect is the type-introspection collaborator for Go source:
// it loads one package and reports, per declared type, the structural facts
// the shape analyser consumes, plus subtype-relationship queries.
package introspect

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/higher-kinded-j/opticgen/internal/model"
)

// Inspector holds the read-only facts of one loaded package.
type Inspector struct {
	pkgPath string
	pkgName string
	order   []string
	decls   map[string]*model.TypeDecl
	goTypes map[string]types.Type
}

// Load parses and type-checks the package rooted at dir.
func Load(dir string) (*Inspector, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports,
		Dir:  dir,
		Fset: token.NewFileSet(),
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("no package found in %s", dir)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("load %s: %v", dir, pkgs[0].Errors[0])
	}
	return fromPackage(pkgs[0]), nil
}

func fromPackage(pkg *packages.Package) *Inspector {
	insp := &Inspector{
		pkgPath: pkg.PkgPath,
		pkgName: pkg.Name,
		decls:   make(map[string]*model.TypeDecl),
		goTypes: make(map[string]types.Type),
	}

	// walk syntax so declaration order is preserved
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue
				}
				insp.collectType(pkg, ts.Name.Name)
			}
		}
	}
	insp.collectConstants(pkg)
	insp.collectVariants(pkg)

	return insp
}

func (insp *Inspector) collectType(pkg *packages.Package, name string) {
	obj := pkg.Types.Scope().Lookup(name)
	tn, ok := obj.(*types.TypeName)
	if !ok || !tn.Exported() {
		return
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return
	}

	ref := &model.TypeRef{PkgPath: insp.pkgPath, Name: name}
	decl := &model.TypeDecl{Ref: ref}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		decl.IsStruct = true
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			decl.Fields = append(decl.Fields, model.Component{
				Name:     f.Name(),
				Type:     refFromType(f.Type()),
				Exported: f.Exported(),
			})
		}
	case *types.Interface:
		decl.IsInterface = true
		// interface method facts come from the method set, not the named type
		for i := 0; i < u.NumMethods(); i++ {
			decl.Methods = append(decl.Methods, methodFact(u.Method(i)))
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		decl.Methods = append(decl.Methods, methodFact(named.Method(i)))
	}

	insp.order = append(insp.order, name)
	insp.decls[name] = decl
	insp.goTypes[ref.Key()] = named
}

func methodFact(m *types.Func) model.Method {
	sig := m.Type().(*types.Signature)
	method := model.Method{Name: m.Name(), Exported: m.Exported()}
	for j := 0; j < sig.Params().Len(); j++ {
		method.Params = append(method.Params, refFromType(sig.Params().At(j).Type()))
	}
	for j := 0; j < sig.Results().Len(); j++ {
		method.Results = append(method.Results, refFromType(sig.Results().At(j).Type()))
	}
	return method
}

// collectConstants gathers enum constants per declared type, in file order.
func (insp *Inspector) collectConstants(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, n := range vs.Names {
					obj, ok := pkg.TypesInfo.Defs[n].(*types.Const)
					if !ok || !obj.Exported() {
						continue
					}
					named, ok := obj.Type().(*types.Named)
					if !ok || named.Obj().Pkg() != pkg.Types {
						continue
					}
					if decl, ok := insp.decls[named.Obj().Name()]; ok {
						decl.Constants = append(decl.Constants, obj.Name())
					}
				}
			}
		}
	}
}

// collectVariants discovers the permitted implementations of each sealed
// interface: an interface with at least one unexported method is closed to
// its declaring package, so its variant list is exactly the package-local
// types satisfying it.
func (insp *Inspector) collectVariants(pkg *packages.Package) {
	for _, name := range insp.order {
		decl := insp.decls[name]
		if !decl.IsInterface {
			continue
		}
		iface, ok := insp.goTypes[decl.Ref.Key()].Underlying().(*types.Interface)
		if !ok || !sealed(iface) {
			continue
		}
		for _, candidate := range insp.order {
			if candidate == name {
				continue
			}
			ct := insp.goTypes[insp.decls[candidate].Ref.Key()]
			if types.Implements(ct, iface) || types.Implements(types.NewPointer(ct), iface) {
				decl.Variants = append(decl.Variants, insp.decls[candidate].Ref)
			}
		}
	}
}

func sealed(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return true
		}
	}
	return false
}

// refFromType canonicalises a go/types type into the engine's reference
// vocabulary: []T → List[T], map[K]V → Map[K,V] (Set[T] for struct{}
// values), *T → Option[T], [N]T → Array[T]. map[T]bool stays a Map so
// the value spelling survives the round trip into generated code.
func refFromType(t types.Type) *model.TypeRef {
	switch tt := t.(type) {
	case *types.Pointer:
		return &model.TypeRef{Name: model.FamilyOption, Args: []*model.TypeRef{refFromType(tt.Elem())}}

	case *types.Slice:
		return &model.TypeRef{Name: model.FamilyList, Args: []*model.TypeRef{refFromType(tt.Elem())}}

	case *types.Array:
		return &model.TypeRef{
			Name:     model.FamilyArray,
			Args:     []*model.TypeRef{refFromType(tt.Elem())},
			ArrayLen: int(tt.Len()),
		}

	case *types.Map:
		if isSetValue(tt.Elem()) {
			return &model.TypeRef{Name: model.FamilySet, Args: []*model.TypeRef{refFromType(tt.Key())}}
		}
		return &model.TypeRef{Name: model.FamilyMap, Args: []*model.TypeRef{refFromType(tt.Key()), refFromType(tt.Elem())}}

	case *types.Named:
		obj := tt.Obj()
		ref := &model.TypeRef{Name: obj.Name()}
		if obj.Pkg() != nil {
			ref.PkgPath = obj.Pkg().Path()
		}
		if args := tt.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				ref.Args = append(ref.Args, refFromType(args.At(i)))
			}
		}
		return ref

	case *types.Basic:
		return &model.TypeRef{Name: tt.Name()}

	default:
		return &model.TypeRef{Name: t.String()}
	}
}

func isSetValue(t types.Type) bool {
	s, ok := t.Underlying().(*types.Struct)
	return ok && s.NumFields() == 0
}

// PkgPath returns the import path of the loaded package.
func (insp *Inspector) PkgPath() string { return insp.pkgPath }

// PkgName returns the name of the loaded package.
func (insp *Inspector) PkgName() string { return insp.pkgName }

// Decls returns the type declarations in source order.
func (insp *Inspector) Decls() []*model.TypeDecl {
	out := make([]*model.TypeDecl, 0, len(insp.order))
	for _, name := range insp.order {
		out = append(out, insp.decls[name])
	}
	return out
}

// Decl looks up one declaration by name.
func (insp *Inspector) Decl(name string) (*model.TypeDecl, bool) {
	d, ok := insp.decls[name]
	return d, ok
}

// AssignableTo answers subtype-relationship queries for prism validation.
func (insp *Inspector) AssignableTo(sub, base *model.TypeRef) bool {
	if sub == nil || base == nil {
		return false
	}
	if sub.Key() == base.Key() {
		return true
	}
	st, sok := insp.goTypes[sub.Key()]
	bt, bok := insp.goTypes[base.Key()]
	if sok && bok {
		if iface, ok := bt.Underlying().(*types.Interface); ok {
			return types.Implements(st, iface) || types.Implements(types.NewPointer(st), iface)
		}
		return types.AssignableTo(st, bt)
	}
	// spec-declared sums fall back to the permitted-variant list
	if decl, ok := insp.decls[base.Name]; ok {
		for _, v := range decl.Variants {
			if v.Key() == sub.Key() {
				return true
			}
		}
	}
	return false
}

// ModulePath walks up from dir until it finds go.mod and reports the module
// path, used to derive the generated package's import path.
func ModulePath(dir string) (string, string, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		modFile := filepath.Join(from, "go.mod")
		if data, err := os.ReadFile(modFile); err == nil {
			mf, err := modfile.Parse("go.mod", data, nil)
			if err != nil {
				return "", "", fmt.Errorf("parse %s: %w", modFile, err)
			}
			return mf.Module.Mod.Path, from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", "", fmt.Errorf("no go.mod found above %s", dir)
		}
		from = parent
	}
}
