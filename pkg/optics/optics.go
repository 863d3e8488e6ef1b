// Package optics is the runtime the generated accessors link against:
// lawful Lens, Prism, Traversal and Fold values over immutable data.
package optics

// Option is an optional value, the result of a Prism preview.
type Option[A any] struct {
	val A
	ok  bool
}

func Some[A any](a A) Option[A] { return Option[A]{val: a, ok: true} }

func None[A any]() Option[A] { return Option[A]{} }

func (o Option[A]) IsSome() bool { return o.ok }

// Get returns the contained value and whether it is present.
func (o Option[A]) Get() (A, bool) { return o.val, o.ok }

// OrElse returns the contained value, or a when absent.
func (o Option[A]) OrElse(a A) A {
	if o.ok {
		return o.val
	}
	return a
}

// MapOption applies f to a present value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if !o.ok {
		return None[B]()
	}
	return Some(f(o.val))
}

// Lens focuses one field A inside a whole S. A lawful lens satisfies
// get-put, put-get and put-put.
type Lens[S, A any] struct {
	get func(S) A
	set func(A, S) S
}

func NewLens[S, A any](get func(S) A, set func(A, S) S) Lens[S, A] {
	return Lens[S, A]{get: get, set: set}
}

func (l Lens[S, A]) Get(s S) A { return l.get(s) }

func (l Lens[S, A]) Set(a A, s S) S { return l.set(a, s) }

func (l Lens[S, A]) Modify(f func(A) A, s S) S { return l.set(f(l.get(s)), s) }

// ComposeLens chains two lenses into a lens from S to the inner focus B.
func ComposeLens[S, A, B any](outer Lens[S, A], inner Lens[A, B]) Lens[S, B] {
	return Lens[S, B]{
		get: func(s S) B { return inner.get(outer.get(s)) },
		set: func(b B, s S) S { return outer.set(inner.set(b, outer.get(s)), s) },
	}
}

// Prism focuses one variant A of a sum S. A lawful prism satisfies
// review-preview and preview-review.
type Prism[S, A any] struct {
	preview func(S) Option[A]
	review  func(A) S
}

func NewPrism[S, A any](preview func(S) Option[A], review func(A) S) Prism[S, A] {
	return Prism[S, A]{preview: preview, review: review}
}

func (p Prism[S, A]) Preview(s S) Option[A] { return p.preview(s) }

func (p Prism[S, A]) Review(a A) S { return p.review(a) }

// Modify rewrites a matching value and leaves a non-matching s untouched.
func (p Prism[S, A]) Modify(f func(A) A, s S) S {
	if a, ok := p.preview(s).Get(); ok {
		return p.review(f(a))
	}
	return s
}

// Traversal focuses zero or more elements A inside S.
type Traversal[S, A any] struct {
	fold   func(S) []A
	modify func(func(A) A, S) S
}

func NewTraversal[S, A any](fold func(S) []A, modify func(func(A) A, S) S) Traversal[S, A] {
	return Traversal[S, A]{fold: fold, modify: modify}
}

func (t Traversal[S, A]) GetAll(s S) []A { return t.fold(s) }

func (t Traversal[S, A]) Modify(f func(A) A, s S) S { return t.modify(f, s) }

// Set replaces every focused element.
func (t Traversal[S, A]) Set(a A, s S) S {
	return t.modify(func(A) A { return a }, s)
}

// AsFold is the read-only view of the traversal.
func (t Traversal[S, A]) AsFold() Fold[S, A] { return Fold[S, A]{fold: t.fold} }

// ComposeLensTraversal focuses a traversal through a lens.
func ComposeLensTraversal[S, A, B any](l Lens[S, A], t Traversal[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		fold: func(s S) []B { return t.fold(l.Get(s)) },
		modify: func(f func(B) B, s S) S {
			return l.Set(t.modify(f, l.Get(s)), s)
		},
	}
}

// Fold is a read-only multi-focus view.
type Fold[S, A any] struct {
	fold func(S) []A
}

func NewFold[S, A any](fold func(S) []A) Fold[S, A] { return Fold[S, A]{fold: fold} }

func (f Fold[S, A]) GetAll(s S) []A { return f.fold(s) }

// Preview returns the first focused element, if any.
func (f Fold[S, A]) Preview(s S) Option[A] {
	all := f.fold(s)
	if len(all) == 0 {
		return None[A]()
	}
	return Some(all[0])
}

func (f Fold[S, A]) Exists(s S, pred func(A) bool) bool {
	for _, a := range f.fold(s) {
		if pred(a) {
			return true
		}
	}
	return false
}

func (f Fold[S, A]) Length(s S) int { return len(f.fold(s)) }
