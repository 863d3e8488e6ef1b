package fixture

type Account struct {
	ID      string
	Tags    []string
	Ratings map[string]int
	Flags   map[string]bool
	Seen    map[string]struct{}
	Parent  *Account
	Window  [4]int
}

type Shape interface {
	isShape()
	Area() float64
}

type Circle struct {
	Radius float64
}

func (Circle) isShape() {}

func (c Circle) Area() float64 { return 3 * c.Radius * c.Radius }

type Square struct {
	Side float64
}

func (*Square) isShape() {}

func (s *Square) Area() float64 { return s.Side * s.Side }

type Color int

const (
	Red Color = iota
	Green
	Blue
)

type Temperature struct {
	celsius float64
}

func (t Temperature) Celsius() float64 { return t.celsius }

func (t Temperature) WithCelsius(c float64) Temperature { return Temperature{celsius: c} }

func (t *Temperature) SetCelsius(c float64) { t.celsius = c }

type hidden struct{}

type Alias = Account
