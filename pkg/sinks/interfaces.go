package sinks

import "context"

// Sink receives results (stdout, webhook, SQS, SNS).
type Sink interface {
	ID() string
	Type() string
	Emit(ctx context.Context, res Result) error
}
