// Package nav composes depth-limited navigator plans over nested product
// types. A plan decides, per field, whether the generator emits a plain
// focus accessor or a chained Navigator class; either way the delegate's
// get/set/modify semantics are those of the un-navigated accessor.
package nav

import (
	"fmt"

	"github.com/higher-kinded-j/opticgen/internal/model"
)

// Config bounds one composition pass.
type Config struct {
	MaxDepth int      // hop budget, positive; callers default it to 1
	Include  []string // empty means all fields
	Exclude  []string // a field in both lists is excluded
}

// Lookup resolves a field's target type to its analysed shape, when known.
type Lookup func(ref *model.TypeRef) (*model.TypeShape, bool)

// Plan is the composed navigation tree for one root type. The top-level
// plan carries the root's own fields; nested plans describe Navigator
// classes, each parametrised by the original root type, never by the
// immediate declaring type.
type Plan struct {
	Root   *model.TypeRef // original root S
	Target *model.TypeRef // focused type at this hop
	Name   string         // generated class name, e.g. "UserAddressNavigator"
	Fields []FieldPlan
}

// FieldPlan pairs a field with its optional navigator. A nil Navigator is a
// plain accessor; that is a downgrade, never an error.
type FieldPlan struct {
	Field     model.FieldDescriptor
	Navigator *Plan
}

// Compose walks root's product fields, recursing into nested product types
// until the depth budget is spent. The depth bound is the termination
// mechanism; the visited stack is a recursion guard against accidental
// self-referential declarations.
func Compose(root *model.TypeShape, cfg Config, lookup Lookup) (*Plan, error) {
	if root.Kind != model.KindProduct {
		return nil, fmt.Errorf("navigator composition requires a product root, %s is %s", root.Ref, root.Kind)
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("navigator depth must be positive, got %d", cfg.MaxDepth)
	}
	c := &composer{cfg: cfg, lookup: lookup, root: root.Ref}
	return &Plan{
		Root:   root.Ref,
		Target: root.Ref,
		Name:   root.Ref.Name,
		Fields: c.fields(root, root.Ref.Name, cfg.MaxDepth, []string{root.Ref.Key()}),
	}, nil
}

type composer struct {
	cfg    Config
	lookup Lookup
	root   *model.TypeRef
}

func (c *composer) fields(shape *model.TypeShape, prefix string, depth int, visited []string) []FieldPlan {
	out := make([]FieldPlan, 0, len(shape.Fields))
	for _, f := range shape.Fields {
		fp := FieldPlan{Field: f}
		if target, ok := c.navigable(f, depth, visited); ok {
			name := prefix + f.Name
			fp.Navigator = &Plan{
				Root:   c.root,
				Target: target.Ref,
				Name:   name + "Navigator",
				Fields: c.fields(target, name, depth-1, append(visited, target.Ref.Key())),
			}
		}
		out = append(out, fp)
	}
	return out
}

// navigable applies the three gates in order: field filter, remaining depth,
// and a product-shaped target; plus the defensive visited-type guard.
func (c *composer) navigable(f model.FieldDescriptor, depth int, visited []string) (*model.TypeShape, bool) {
	if !c.allowed(f.Name) || depth <= 0 {
		return nil, false
	}
	target, ok := c.lookup(f.DeclaredType)
	if !ok || target.Kind != model.KindProduct {
		return nil, false
	}
	for _, key := range visited {
		if key == target.Ref.Key() {
			return nil, false
		}
	}
	return target, true
}

// allowed checks exclusion before inclusion so a field named in both lists
// stays excluded.
func (c *composer) allowed(field string) bool {
	for _, ex := range c.cfg.Exclude {
		if ex == field {
			return false
		}
	}
	if len(c.cfg.Include) == 0 {
		return true
	}
	for _, in := range c.cfg.Include {
		if in == field {
			return true
		}
	}
	return false
}
