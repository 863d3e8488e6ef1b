package sample

type Customer struct {
	Name string
}

type Coord struct {
	X int
	Y int
}

type Order struct {
	ID       string
	Lines    []string
	Seen     map[string]struct{}
	Flags    map[string]bool
	Scores   map[Coord]int
	Customer Customer
}

type Payment interface {
	isPayment()
}

type Card struct {
	Number string
}

func (Card) isPayment() {}

type Cash struct{}

func (Cash) isPayment() {}

type Status int

const (
	Open Status = iota
	Closed
)
