package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type stdoutSink struct {
	id     string
	pretty bool
	out    io.Writer
}

func newStdoutSink(_ context.Context, cfg SinkConfig, opts BuildOptions) (Sink, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	s := &stdoutSink{id: cfg.ID, out: out}
	if cfg.Stdout != nil {
		s.pretty = cfg.Stdout.Pretty
	}
	return s, nil
}

func (s *stdoutSink) ID() string   { return s.id }
func (s *stdoutSink) Type() string { return TypeStdout }

// Emit prints only the response body, one document per line.
func (s *stdoutSink) Emit(_ context.Context, res Result) error {
	body := []byte(res.Body)
	if s.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return fmt.Errorf("indent body: %w", err)
		}
		body = buf.Bytes()
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", body); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
