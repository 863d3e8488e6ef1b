package optics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type address struct {
	Street string
	City   string
}

type person struct {
	Name    string
	Address address
}

func nameLens() Lens[person, string] {
	return NewLens(
		func(p person) string { return p.Name },
		func(n string, p person) person { p.Name = n; return p },
	)
}

func addressLens() Lens[person, address] {
	return NewLens(
		func(p person) address { return p.Address },
		func(a address, p person) person { p.Address = a; return p },
	)
}

func streetLens() Lens[address, string] {
	return NewLens(
		func(a address) string { return a.Street },
		func(s string, a address) address { a.Street = s; return a },
	)
}

func TestLensLaws(t *testing.T) {
	l := nameLens()
	p := person{Name: "Ada"}

	// get-put: writing back what was read changes nothing
	require.Equal(t, p, l.Set(l.Get(p), p))
	// put-get: reading after a write observes the write
	require.Equal(t, "Grace", l.Get(l.Set("Grace", p)))
	// put-put: the last write wins
	require.Equal(t, l.Set("Edsger", p), l.Set("Edsger", l.Set("Grace", p)))
}

func TestLensModifyLeavesOriginalUntouched(t *testing.T) {
	l := nameLens()
	p := person{Name: "ada"}

	got := l.Modify(strings.ToUpper, p)
	require.Equal(t, "ADA", got.Name)
	require.Equal(t, "ada", p.Name)
}

func TestComposeLens(t *testing.T) {
	street := ComposeLens(addressLens(), streetLens())
	p := person{Name: "Ada", Address: address{Street: "Main St", City: "York"}}

	require.Equal(t, "Main St", street.Get(p))

	moved := street.Set("High St", p)
	require.Equal(t, "High St", moved.Address.Street)
	require.Equal(t, "York", moved.Address.City)
	require.Equal(t, "Main St", p.Address.Street)
}

type event interface{ isEvent() }

type created struct{ ID string }
type updated struct{ ID string }
type deleted struct{ ID string }

func (created) isEvent() {}
func (updated) isEvent() {}
func (deleted) isEvent() {}

func createdPrism() Prism[event, created] {
	return NewPrism(
		func(e event) Option[created] {
			if c, ok := e.(created); ok {
				return Some(c)
			}
			return None[created]()
		},
		func(c created) event { return c },
	)
}

func TestPrismLaws(t *testing.T) {
	p := createdPrism()

	// review-preview: a constructed value always previews back
	c := created{ID: "42"}
	got, ok := p.Preview(p.Review(c)).Get()
	require.True(t, ok)
	require.Equal(t, c, got)

	// preview-review: a matching value round-trips unchanged
	var e event = created{ID: "7"}
	got, ok = p.Preview(e).Get()
	require.True(t, ok)
	require.Equal(t, e, p.Review(got))
}

func TestPrismNonMatching(t *testing.T) {
	p := createdPrism()
	var e event = deleted{ID: "42"}

	require.False(t, p.Preview(e).IsSome())
	// modify on a non-matching value is the identity
	require.Equal(t, e, p.Modify(func(c created) created { c.ID = "x"; return c }, e))
}

func TestPrismModifyMatching(t *testing.T) {
	p := createdPrism()
	var e event = created{ID: "42"}

	got := p.Modify(func(c created) created { c.ID = "43"; return c }, e)
	require.Equal(t, created{ID: "43"}, got)
}

func variantPrism[A any](wrap func(A) event) Prism[event, A] {
	return NewPrism(
		func(e event) Option[A] {
			if v, ok := e.(A); ok {
				return Some(v)
			}
			return None[A]()
		},
		wrap,
	)
}

func TestPrismsDiscriminateThreeVariants(t *testing.T) {
	createdP := variantPrism(func(c created) event { return c })
	updatedP := variantPrism(func(u updated) event { return u })
	deletedP := variantPrism(func(d deleted) event { return d })

	events := []event{created{ID: "c"}, updated{ID: "u"}, deleted{ID: "d"}}

	for i, e := range events {
		// exactly one prism matches each variant
		matches := 0
		if createdP.Preview(e).IsSome() {
			matches++
		}
		if updatedP.Preview(e).IsSome() {
			matches++
		}
		if deletedP.Preview(e).IsSome() {
			matches++
		}
		require.Equalf(t, 1, matches, "event %d matched %d prisms", i, matches)
	}

	u, ok := updatedP.Preview(events[1]).Get()
	require.True(t, ok)
	require.Equal(t, "u", u.ID)
	require.False(t, updatedP.Preview(events[0]).IsSome())
	require.False(t, updatedP.Preview(events[2]).IsSome())
}

func TestOption(t *testing.T) {
	some := Some(3)
	require.True(t, some.IsSome())
	require.Equal(t, 3, some.OrElse(9))

	none := None[int]()
	require.False(t, none.IsSome())
	require.Equal(t, 9, none.OrElse(9))

	doubled := MapOption(some, func(n int) int { return n * 2 })
	v, ok := doubled.Get()
	require.True(t, ok)
	require.Equal(t, 6, v)
	require.False(t, MapOption(none, func(n int) int { return n * 2 }).IsSome())
}

func TestFold(t *testing.T) {
	f := NewFold(func(p person) []string { return []string{p.Name, p.Address.City} })
	p := person{Name: "Ada", Address: address{City: "York"}}

	require.Equal(t, []string{"Ada", "York"}, f.GetAll(p))
	require.Equal(t, 2, f.Length(p))
	first, ok := f.Preview(p).Get()
	require.True(t, ok)
	require.Equal(t, "Ada", first)
	require.True(t, f.Exists(p, func(s string) bool { return s == "York" }))
	require.False(t, f.Exists(p, func(s string) bool { return s == "Oslo" }))

	empty := NewFold(func(person) []string { return nil })
	require.False(t, empty.Preview(p).IsSome())
	require.Equal(t, 0, empty.Length(p))
}
