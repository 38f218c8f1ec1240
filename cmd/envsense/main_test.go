package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRunMain_SuccessDoesNotExit(t *testing.T) {
	orig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return nil }
	defer func() { executeFunc = orig }()

	exited := false
	runMain([]string{"envsense"}, io.Discard, io.Discard, func(int) { exited = true })
	if exited {
		t.Fatal("expected no exit on success")
	}
}

func TestRunMain_ErrorExitsOne(t *testing.T) {
	orig := executeFunc
	executeFunc = func(_ []string, _ io.Writer, stderr io.Writer) error {
		return errors.New("boom")
	}
	defer func() { executeFunc = orig }()

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"envsense"}, io.Discard, &stderr, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Fatalf("expected error on stderr, got %q", stderr.String())
	}
}

func TestRunMain_SilentExit(t *testing.T) {
	orig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error {
		return &SilentExitError{Code: 3}
	}
	defer func() { executeFunc = orig }()

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"envsense"}, io.Discard, &stderr, func(c int) { code = c })
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected silent exit, got %q", stderr.String())
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	if got := versionString(); got != "1.2.3" {
		t.Fatalf("versionString = %q", got)
	}

	Commit = "abc1234"
	BuildDate = "2026-08-26"
	got := versionString()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "commit abc1234") || !strings.Contains(got, "built 2026-08-26") {
		t.Fatalf("versionString = %q", got)
	}
}
