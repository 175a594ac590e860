package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestOptionsLogger(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		fallback log.Level
		want     log.Level
	}{
		{name: "fallback", fallback: log.WarnLevel, want: log.WarnLevel},
		{name: "verbose overrides", verbose: true, fallback: log.WarnLevel, want: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := &options{verbose: tt.verbose, stderr: &buf}
			if got := opts.logger(tt.fallback).GetLevel(); got != tt.want {
				t.Errorf("logger level = %v, want %v", got, tt.want)
			}
		})
	}
}
