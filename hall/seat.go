package hall

// State is the occupancy of a single seat.
type State int

const (
	Free State = iota
	Sold
)

func (s State) String() string {
	if s == Sold {
		return "sold"
	}
	return "free"
}

// Seat is one bookable unit. Identity is (Row, Col); State is the only
// field that changes after construction.
type Seat struct {
	Row   int
	Col   int
	State State
}
