package main

import (
	"testing"
)

func TestCheckCmdFlags(t *testing.T) {
	cmd := newCheckCmd()
	f := cmd.Flags()

	// Test default timeout value
	timeout, _ := f.GetDuration("timeout")
	if timeout != 0 {
		t.Errorf("default timeout = %v, want 0 (resolved from config)", timeout)
	}

	// Test that flags exist
	for _, flag := range []string{"engine", "engine-arg", "timeout", "ignore", "annotations", "sarif-out", "archive"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestHistoryCmdFlags(t *testing.T) {
	cmd := newHistoryCmd()
	f := cmd.Flags()

	// Test default limit value
	limit, _ := f.GetInt("limit")
	if limit != 20 {
		t.Errorf("default limit = %d, want 20", limit)
	}

	for _, flag := range []string{"pr", "dsn", "limit"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"check", "history"} {
		if !names[want] {
			t.Errorf("missing subcommand: %s", want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestMinInt(t *testing.T) {
	if minInt(3, 5) != 3 {
		t.Error("minInt(3, 5) should be 3")
	}
	if minInt(5, 3) != 3 {
		t.Error("minInt(5, 3) should be 3")
	}
	if minInt(3, 3) != 3 {
		t.Error("minInt(3, 3) should be 3")
	}
}

func TestShortSHA(t *testing.T) {
	if got := shortSHA("abc123def456"); got != "abc123d" {
		t.Errorf("shortSHA = %q, want abc123d", got)
	}
	if got := shortSHA("ab"); got != "ab" {
		t.Errorf("shortSHA = %q, want ab", got)
	}
	if got := shortSHA(""); got != "unknown" {
		t.Errorf("shortSHA(\"\") = %q, want unknown", got)
	}
}
