package sinks

import (
	"context"
	"fmt"
	"io"
)

// BuildOptions carries runtime dependencies shared by sink builders.
type BuildOptions struct {
	Stdout io.Writer
	Log    Logger
}

type builder func(ctx context.Context, cfg SinkConfig, opts BuildOptions) (Sink, error)

var builders = map[string]builder{
	TypeStdout: newStdoutSink,
	TypeHTTP:   newHTTPSink,
	TypeSQS:    newSQSSink,
	TypeSNS:    newSNSSink,
}

// Route binds a sink to the operations it receives. No operations means all of them.
type Route struct {
	Sink       Sink
	Operations []string
}

// BuildAll instantiates one routed sink per config, in order.
func BuildAll(ctx context.Context, cfgs []SinkConfig, opts BuildOptions) ([]Route, error) {
	routes := make([]Route, 0, len(cfgs))
	for _, cfg := range cfgs {
		build, ok := builders[cfg.Type]
		if !ok {
			return nil, fmt.Errorf("no sink registered for type %q (sink %q)", cfg.Type, cfg.ID)
		}
		s, err := build(ctx, cfg, opts)
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Sink: s, Operations: cfg.Operations})
	}
	return routes, nil
}
