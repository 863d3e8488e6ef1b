package optics

// The five standard traversals, one per recognized container family. Each
// modify builds a fresh container; the input is never mutated.

// SliceTraversal focuses every element of a slice.
func SliceTraversal[A any]() Traversal[[]A, A] {
	return NewTraversal(
		func(s []A) []A {
			out := make([]A, len(s))
			copy(out, s)
			return out
		},
		func(f func(A) A, s []A) []A {
			out := make([]A, len(s))
			for i, a := range s {
				out[i] = f(a)
			}
			return out
		},
	)
}

// SetTraversal focuses every member of a set. Any comparable member type is
// accepted; GetAll follows map iteration order.
func SetTraversal[A comparable]() Traversal[map[A]struct{}, A] {
	return NewTraversal(
		func(s map[A]struct{}) []A {
			out := make([]A, 0, len(s))
			for a := range s {
				out = append(out, a)
			}
			return out
		},
		func(f func(A) A, s map[A]struct{}) map[A]struct{} {
			out := make(map[A]struct{}, len(s))
			for a := range s {
				out[f(a)] = struct{}{}
			}
			return out
		},
	)
}

// MapValues focuses every value of a map, keys untouched.
func MapValues[K comparable, V any]() Traversal[map[K]V, V] {
	return NewTraversal(
		func(s map[K]V) []V {
			out := make([]V, 0, len(s))
			for _, v := range s {
				out = append(out, v)
			}
			return out
		},
		func(f func(V) V, s map[K]V) map[K]V {
			out := make(map[K]V, len(s))
			for k, v := range s {
				out[k] = f(v)
			}
			return out
		},
	)
}

// OptionTraversal focuses the element of a pointer-optional, zero or one.
func OptionTraversal[A any]() Traversal[*A, A] {
	return NewTraversal(
		func(s *A) []A {
			if s == nil {
				return nil
			}
			return []A{*s}
		},
		func(f func(A) A, s *A) *A {
			if s == nil {
				return nil
			}
			v := f(*s)
			return &v
		},
	)
}

// ArrayTraversal focuses every element of a fixed-size array type S. Go
// generics cannot abstract over array lengths, so the generated code
// supplies the two conversions for the concrete [N]A type.
func ArrayTraversal[S, A any](toSlice func(S) []A, fromSlice func([]A) S) Traversal[S, A] {
	return NewTraversal(
		func(s S) []A { return toSlice(s) },
		func(f func(A) A, s S) S {
			elems := toSlice(s)
			out := make([]A, len(elems))
			for i, a := range elems {
				out[i] = f(a)
			}
			return fromSlice(out)
		},
	)
}
