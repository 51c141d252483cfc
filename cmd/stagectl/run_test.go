package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Test that given a server that responds with 404 for a particular
// route, the help text for missing things lands on stderr.
func TestRunRendersNotFoundHelp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	telltale := "doesn't exist on the server"
	errout := &bytes.Buffer{}
	res := run([]string{"--url", server.URL, "status", "-r", "comexample-1000"}, errout)
	if res == 0 {
		t.Errorf("Expected non-zero return from run, got %d", res)
	}
	if !strings.Contains(errout.String(), telltale) {
		t.Fatalf("Expected %q in output to stderr, but it was not seen in %q", telltale, errout.String())
	}
}

func TestRunRendersUsageOnUsageError(t *testing.T) {
	errout := &bytes.Buffer{}
	res := run([]string{"completion"}, errout)
	if res == 0 {
		t.Errorf("Expected non-zero return from run, got %d", res)
	}
	if !strings.Contains(errout.String(), "Usage:") {
		t.Fatalf("Expected usage text on stderr, but it was not seen in %q", errout.String())
	}
}

func TestRunSucceeds(t *testing.T) {
	errout := &bytes.Buffer{}
	if res := run([]string{"version"}, errout); res != 0 {
		t.Fatalf("Expected zero return from run, got %d: %s", res, errout.String())
	}
}
