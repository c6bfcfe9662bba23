package main

import (
	"fmt"
	"io"
	"log/slog"
)

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	opts := slog.HandlerOptions{Level: lvl}
	return slog.New(slog.NewTextHandler(w, &opts)), nil
}
