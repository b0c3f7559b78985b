package sinks

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Delivery counts the sinks a result was routed to and those that accepted it.
type Delivery struct {
	Routed    int
	Delivered int
}

// Fanout dispatches results to the sinks subscribed to their operation.
type Fanout struct {
	routes []Route
}

// NewFanout builds a dispatcher over routes; routes without a sink are dropped.
func NewFanout(routes []Route) *Fanout {
	cp := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Sink != nil {
			cp = append(cp, r)
		}
	}
	return &Fanout{routes: cp}
}

// Emit forwards the result to every subscribed sink in order.
// Sink failures are joined into the returned error; the rest still run.
func (f *Fanout) Emit(ctx context.Context, res Result) (Delivery, error) {
	var d Delivery
	if f == nil {
		return d, nil
	}

	var errs []error
	for _, r := range f.routes {
		if len(r.Operations) > 0 && !slices.Contains(r.Operations, res.Operation) {
			continue
		}
		d.Routed++
		if err := r.Sink.Emit(ctx, res); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", r.Sink.Type(), r.Sink.ID(), err))
			continue
		}
		d.Delivered++
	}
	return d, errors.Join(errs...)
}

// Size returns the number of configured sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}
