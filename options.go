package sweepline

import "fmt"

// Order selects how segments are ordered on the sweep line when they are inserted.
type Order int

const (
	// OrderSweep compares segments by their x-coordinate on the current sweep line.
	OrderSweep Order = iota
	// OrderFixed compares segments by the x-coordinate of their top point only. The order on the sweep line changes only when two crossing segments are swapped, which may miss intersections between segments that were inserted out of order.
	OrderFixed
)

func (o Order) String() string {
	switch o {
	case OrderSweep:
		return "sweep"
	case OrderFixed:
		return "fixed"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder parses "sweep" or "fixed".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "sweep", "":
		return OrderSweep, nil
	case "fixed":
		return OrderFixed, nil
	}
	return 0, fmt.Errorf("unknown order %q", s)
}

// Option configures a sweep.
type Option func(*options)

type options struct {
	epsilon   float64
	order     Order
	maxEvents int
}

func defaultOptions() options {
	return options{
		epsilon: Epsilon,
		order:   OrderSweep,
	}
}

// WithEpsilon sets the tolerance below which two segments are considered parallel during the sweep. Defaults to the value of Epsilon when the sweep is created.
func WithEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// WithOrder sets the ordering of segments on the sweep line. Defaults to OrderSweep.
func WithOrder(order Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithMaxEvents aborts the sweep with ErrEventBudget after processing n events. Zero or negative means no limit.
func WithMaxEvents(n int) Option {
	return func(o *options) {
		o.maxEvents = n
	}
}
