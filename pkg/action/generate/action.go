// Package generate wires the full pipeline: introspection, shape analysis,
// strategy resolution, navigator composition and code emission.
package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/higher-kinded-j/opticgen/internal/classify"
	"github.com/higher-kinded-j/opticgen/internal/gen"
	"github.com/higher-kinded-j/opticgen/internal/introspect"
	"github.com/higher-kinded-j/opticgen/internal/model"
	"github.com/higher-kinded-j/opticgen/internal/nav"
	"github.com/higher-kinded-j/opticgen/internal/resolve"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

// Run analyses the package at opts.InDir and renders one optics file into
// opts.OutDir. User errors are collected per offending declaration and
// reported once each.
func Run(opts *opticgen.Options) (string, error) {
	opts.Normalize()

	insp, err := introspect.Load(opts.InDir)
	if err != nil {
		return "", err
	}

	shapes := make(map[string]*model.TypeShape)
	var order []*model.TypeShape
	for _, decl := range insp.Decls() {
		shape := classify.Analyse(decl)
		shapes[decl.Ref.Key()] = shape
		order = append(order, shape)
		slog.With("type", decl.Ref.Name, "kind", shape.Kind.String()).Debug("classified")
	}
	lookup := func(ref *model.TypeRef) (*model.TypeShape, bool) {
		s, ok := shapes[ref.Key()]
		return s, ok
	}

	pkgName := opts.TargetPackage
	if pkgName == "" {
		pkgName = insp.PkgName()
	}
	sink := gen.NewFileSink(targetImportPath(opts, insp), pkgName)
	generator := gen.New(sink)

	var errs []error
	for _, shape := range order {
		plan, err := buildPlan(shape, opts, insp, lookup)
		if err != nil {
			slog.With("type", shape.Ref.Name, "error", err).Error("generation failed")
			errs = append(errs, err)
			continue
		}
		if plan == nil {
			continue
		}
		if err := generator.Type(plan); err != nil {
			errs = append(errs, err)
			continue
		}
		slog.With("type", shape.Ref.Name, "kind", shape.Kind.String()).Info("optics generated")
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", err
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	f, err := os.OpenFile(outFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	if err := sink.Render(f); err != nil {
		return "", fmt.Errorf("render %s: %w", outFile, err)
	}

	return outFile, nil
}

// buildPlan assembles the resolved plan for one shape, or nil when the
// shape supports no optics.
func buildPlan(shape *model.TypeShape, opts *opticgen.Options, insp *introspect.Inspector, lookup nav.Lookup) (*gen.TypePlan, error) {
	spec, _ := opts.Spec(shape.Ref.Name)
	plan := &gen.TypePlan{Shape: shape}

	switch shape.Kind {
	case model.KindProduct:
		trs, err := fieldTraversals(shape, spec)
		if err != nil {
			return nil, err
		}
		plan.Traversals = trs
		navPlan, err := nav.Compose(shape, navConfig(opts, spec), lookup)
		if err != nil {
			return nil, err
		}
		plan.Nav = navPlan

	case model.KindCopyMutable:
		if shape.HasMutableFields() && !opts.AllowMutable {
			return nil, &resolve.Diagnostic{
				Type:     shape.Ref.Name,
				Category: "mutability",
				Message: fmt.Sprintf("type has qualifying setters (%v); pass allow-mutable to generate anyway",
					shape.MutableSetters),
			}
		}
		plan.Copies = make(map[string]model.CopyStrategyInfo, len(shape.Fields))
		for _, f := range shape.Fields {
			var cs *opticgen.CopySpec
			if s, ok := spec.Copy[f.Name]; ok {
				cs = &s
			}
			info, err := resolve.Copy(shape, f, cs)
			if err != nil {
				return nil, err
			}
			plan.Copies[f.Name] = info
		}
		trs, err := fieldTraversals(shape, spec)
		if err != nil {
			return nil, err
		}
		plan.Traversals = trs

	case model.KindSum:
		prisms, err := sumPrisms(shape, spec, insp)
		if err != nil {
			return nil, err
		}
		plan.Prisms = prisms

	case model.KindEnumerated:
		// constants drive generation directly

	default:
		slog.With("type", shape.Ref.Name).Debug("skipping unsupported type")
		return nil, nil
	}

	return plan, nil
}

// fieldTraversals finalizes a traversal for every container field, honouring
// explicit per-field references.
func fieldTraversals(shape *model.TypeShape, spec opticgen.TypeSpec) (map[string]resolve.TraversalRef, error) {
	refs := make(map[string]string)
	for _, ts := range spec.Traversals {
		if ts.Field == "" {
			return nil, &resolve.Diagnostic{
				Type:     shape.Ref.Name,
				Category: "traversal hint",
				Message:  "traversal spec must name a field",
			}
		}
		refs[ts.Field] = ts.Ref
	}

	out := make(map[string]resolve.TraversalRef)
	for _, f := range shape.Fields {
		ref, explicit := refs[f.Name]
		if !f.HasTraversal() && !explicit {
			continue
		}
		hint := model.TraversalHintInfo{Kind: model.ThroughField, FieldName: f.Name, Ref: ref}
		resolved, err := resolve.Traversal(shape, hint)
		if err != nil {
			return nil, err
		}
		out[f.Name] = resolved
		delete(refs, f.Name)
	}
	for field := range refs {
		return nil, &resolve.Diagnostic{
			Type:     shape.Ref.Name,
			Field:    field,
			Category: "traversal hint",
			Message:  "no such field",
		}
	}
	return out, nil
}

// sumPrisms resolves declared hints and defaults every remaining variant to
// structural instance-of discrimination.
func sumPrisms(shape *model.TypeShape, spec opticgen.TypeSpec, oracle resolve.SubtypeOracle) ([]gen.VariantPrism, error) {
	declared := make(map[string]opticgen.PrismSpec)
	for _, ps := range spec.Prisms {
		declared[ps.Variant] = ps
	}

	out := make([]gen.VariantPrism, 0, len(shape.Variants))
	for _, v := range shape.Variants {
		ps, ok := declared[v.Name]
		if !ok {
			ps = opticgen.PrismSpec{Variant: v.Name}
		}
		hint, err := resolve.Prism(shape, ps, oracle)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.VariantPrism{Variant: v, Hint: hint})
		delete(declared, v.Name)
	}
	for name, ps := range declared {
		hint, err := resolve.Prism(shape, ps, oracle)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.VariantPrism{
			Variant: &model.TypeRef{PkgPath: shape.Ref.PkgPath, Name: name},
			Hint:    hint,
		})
	}
	return out, nil
}

func navConfig(opts *opticgen.Options, spec opticgen.TypeSpec) nav.Config {
	cfg := nav.Config{
		MaxDepth: opts.MaxDepth,
		Include:  opts.Include,
		Exclude:  opts.Exclude,
	}
	if spec.Navigate != nil {
		if spec.Navigate.MaxDepth > 0 {
			cfg.MaxDepth = spec.Navigate.MaxDepth
		}
		if len(spec.Navigate.Include) > 0 {
			cfg.Include = spec.Navigate.Include
		}
		if len(spec.Navigate.Exclude) > 0 {
			cfg.Exclude = spec.Navigate.Exclude
		}
	}
	return cfg
}

// targetImportPath derives the generated package's import path from the
// enclosing module, falling back to the scanned package path.
func targetImportPath(opts *opticgen.Options, insp *introspect.Inspector) string {
	modPath, modDir, err := introspect.ModulePath(opts.InDir)
	if err != nil {
		return insp.PkgPath()
	}
	rel, err := filepath.Rel(modDir, opts.OutDir)
	if err != nil || rel == "." {
		return modPath
	}
	return modPath + "/" + filepath.ToSlash(rel)
}
