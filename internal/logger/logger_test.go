package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestObjHelpersWriteStructuredField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := S
	S = zap.New(core).Sugar()
	t.Cleanup(func() { S = prev })

	var log Logger = zapLogger{}
	log.InfoObj("request sent", "request_meta", map[string]any{"method": "GET"})
	log.ErrorObj("request failed", "error", "boom")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "request sent" || entries[0].ContextMap()["request_meta"] == nil {
		t.Fatalf("unexpected first entry %#v", entries[0])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[1].Level)
	}
}

func TestCallerIsTheLoggingSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := S
	S = newLogger(core).Sugar()
	t.Cleanup(func() { S = prev })

	var log Logger = zapLogger{}
	log.WarnObj("through interface", "k", 1)
	InfoObj("through helper", "k", 2)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.Caller.Defined || !strings.HasSuffix(e.Caller.File, "logger_test.go") {
			t.Errorf("%q: caller = %s, want this test file", e.Message, e.Caller.String())
		}
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	prev := S
	S = nil
	t.Cleanup(func() { S = prev })

	InfoObj("ignored", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}
