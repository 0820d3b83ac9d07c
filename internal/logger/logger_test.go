package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(true, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}

	l, err = New(false, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be disabled")
	}
}

func TestWithRun(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithRun(zap.New(core), "run-1").Info("started")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldRunID]; got != "run-1" {
		t.Fatalf("expected run id run-1, got %v", got)
	}

	if WithRun(nil, "x") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}

func TestNamed(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	Named(zap.New(core), "pipeline").Info("step")

	if got := observed.All()[0].ContextMap()[FieldComponent]; got != "pipeline" {
		t.Fatalf("expected component pipeline, got %v", got)
	}
	Named(nil, "x").Info("no panic")
}
