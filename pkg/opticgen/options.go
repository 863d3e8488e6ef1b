package opticgen

import (
	"path/filepath"
)

// Options control analysis and generation.
//
// InDir          – directory of the package to analyse
// OutDir         – output directory
// OutFile        – output filename
// TargetPackage  – package name for generated code; defaults to the declaring package
// MaxDepth       – navigator depth bound (positive, default 1)
// Include        – field include-list (empty means all fields)
// Exclude        – field exclude-list; a field named in both lists is excluded
// AllowMutable   – permit generation for types with qualifying setters
// Types          – per-type optics declarations (copy strategies, hints, navigation)
type Options struct {
	InDir         string     `json:"in_dir,omitempty" yaml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir        string     `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile       string     `json:"out_file,omitempty" yaml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	TargetPackage string     `json:"target_package,omitempty" yaml:"target_package,omitempty" mapstructure:"target_package,omitempty"`
	MaxDepth      int        `json:"max_depth,omitempty" yaml:"max_depth,omitempty" mapstructure:"max_depth,omitempty"`
	Include       []string   `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include,omitempty"`
	Exclude       []string   `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude,omitempty"`
	AllowMutable  bool       `json:"allow_mutable,omitempty" yaml:"allow_mutable,omitempty" mapstructure:"allow_mutable,omitempty"`
	Types         []TypeSpec `json:"types,omitempty" yaml:"types,omitempty" mapstructure:"types,omitempty"`
}

// TypeSpec declares optics configuration for one named type.
type TypeSpec struct {
	Name       string               `json:"name" yaml:"name" mapstructure:"name"`
	Copy       map[string]CopySpec  `json:"copy,omitempty" yaml:"copy,omitempty" mapstructure:"copy,omitempty"`
	Prisms     []PrismSpec          `json:"prisms,omitempty" yaml:"prisms,omitempty" mapstructure:"prisms,omitempty"`
	Traversals []TraversalSpec      `json:"traversals,omitempty" yaml:"traversals,omitempty" mapstructure:"traversals,omitempty"`
	Navigate   *NavSpec             `json:"navigate,omitempty" yaml:"navigate,omitempty" mapstructure:"navigate,omitempty"`
}

// CopySpec is the user-declared copy strategy for one settable field of an
// externally-declared type. Strategy is one of "builder", "wither",
// "constructor", "copy-and-set". Method names left blank take the documented
// defaults; explicit values always win.
type CopySpec struct {
	Strategy string `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	Getter   string `json:"getter,omitempty" yaml:"getter,omitempty" mapstructure:"getter,omitempty"`

	BuilderObtainer string `json:"builder_obtainer,omitempty" yaml:"builder_obtainer,omitempty" mapstructure:"builder_obtainer,omitempty"`
	BuilderSetter   string `json:"builder_setter,omitempty" yaml:"builder_setter,omitempty" mapstructure:"builder_setter,omitempty"`
	BuildMethod     string `json:"build_method,omitempty" yaml:"build_method,omitempty" mapstructure:"build_method,omitempty"`

	Constructor string   `json:"constructor,omitempty" yaml:"constructor,omitempty" mapstructure:"constructor,omitempty"`
	ParamOrder  []string `json:"param_order,omitempty" yaml:"param_order,omitempty" mapstructure:"param_order,omitempty"`

	CopyCtor string `json:"copy_ctor,omitempty" yaml:"copy_ctor,omitempty" mapstructure:"copy_ctor,omitempty"`
	Setter   string `json:"setter,omitempty" yaml:"setter,omitempty" mapstructure:"setter,omitempty"`
}

// PrismSpec declares discrimination for one variant of a sum type. Hint is
// "instance-of" (default) or "match-when".
type PrismSpec struct {
	Variant   string `json:"variant" yaml:"variant" mapstructure:"variant"`
	Hint      string `json:"hint,omitempty" yaml:"hint,omitempty" mapstructure:"hint,omitempty"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target,omitempty"`
	Predicate string `json:"predicate,omitempty" yaml:"predicate,omitempty" mapstructure:"predicate,omitempty"`
	Accessor  string `json:"accessor,omitempty" yaml:"accessor,omitempty" mapstructure:"accessor,omitempty"`
}

// TraversalSpec declares a traversal source. A non-empty Field names a
// container field (Ref optionally overriding the auto-detected standard
// traversal); an empty Field with a Ref is a direct traversal reference.
type TraversalSpec struct {
	Field string `json:"field,omitempty" yaml:"field,omitempty" mapstructure:"field,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty" mapstructure:"ref,omitempty"`
}

// NavSpec overrides navigation controls for one root type.
type NavSpec struct {
	MaxDepth int      `json:"max_depth,omitempty" yaml:"max_depth,omitempty" mapstructure:"max_depth,omitempty"`
	Include  []string `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:    ".",
		OutDir:   "optics",
		OutFile:  "optics_gen.go",
		MaxDepth: 1,
	}
}

// Normalize fills defaults and resolves relative paths.
func (o *Options) Normalize() {
	if o.MaxDepth < 1 {
		o.MaxDepth = 1
	}
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	if !filepath.IsAbs(o.InDir) {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "optics"
	}
	if !filepath.IsAbs(o.OutDir) {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutFile) == 0 {
		o.OutFile = "optics_gen.go"
	}
}

// Spec returns the declaration for a named type, if any.
func (o *Options) Spec(name string) (TypeSpec, bool) {
	for _, t := range o.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeSpec{}, false
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option         { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option        { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option       { return func(o *Options) { o.OutFile = f } }
func WithTargetPackage(p string) Option { return func(o *Options) { o.TargetPackage = p } }
func WithMaxDepth(d int) Option         { return func(o *Options) { o.MaxDepth = d } }
func WithAllowMutable() Option          { return func(o *Options) { o.AllowMutable = true } }
func WithInclude(fields ...string) Option {
	return func(o *Options) { o.Include = append(o.Include, fields...) }
}
func WithExclude(fields ...string) Option {
	return func(o *Options) { o.Exclude = append(o.Exclude, fields...) }
}
func WithTypeSpec(spec TypeSpec) Option {
	return func(o *Options) { o.Types = append(o.Types, spec) }
}
