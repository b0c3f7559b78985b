package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestStdoutSinkPrintsBodyOnly(t *testing.T) {
	var out bytes.Buffer
	sink, err := newStdoutSink(context.Background(), SinkConfig{ID: "console", Type: TypeStdout}, BuildOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("newStdoutSink: %v", err)
	}

	body := json.RawMessage(`{"id":1,"firstName":"Jane"}`)
	if err := sink.Emit(context.Background(), NewResult("get_customer", "GET", "http://x/customers/1", 200, body)); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got := out.String(); got != "{\"id\":1,\"firstName\":\"Jane\"}\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestStdoutSinkPretty(t *testing.T) {
	var out bytes.Buffer
	sink, _ := newStdoutSink(context.Background(), SinkConfig{
		ID:     "console",
		Type:   TypeStdout,
		Stdout: &StdoutSinkConfig{Pretty: true},
	}, BuildOptions{Stdout: &out})

	if err := sink.Emit(context.Background(), Result{Body: json.RawMessage(`{"id":1}`)}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got := out.String(); got != "{\n  \"id\": 1\n}\n" {
		t.Fatalf("stdout = %q", got)
	}
}
