package app

import (
	"errors"
	"testing"
)

func TestInitError(t *testing.T) {
	base := errors.New("no tty")
	err := &InitError{Component: "backend", Err: base}

	if got := err.Error(); got != "init backend: no tty" {
		t.Errorf("Error() = '%s', expected 'init backend: no tty'", got)
	}
	if !errors.Is(err, base) {
		t.Error("InitError should unwrap to the underlying error")
	}
}
