package clipboard

import (
	"strings"
	"testing"
)

func TestChecksumStable(t *testing.T) {
	a := Checksum([]byte("hunter2"))
	b := Checksum([]byte("hunter2"))
	if a != b {
		t.Error("checksums of identical values differ")
	}
	if len(a) != 64 {
		t.Errorf("checksum length = %d, want 64 hex characters", len(a))
	}
}

func TestChecksumDistinguishes(t *testing.T) {
	if Checksum([]byte("hunter2")) == Checksum([]byte("hunter3")) {
		t.Error("different values share a checksum")
	}
}

func TestClearCommandShape(t *testing.T) {
	cmd := clearCommand("/usr/local/bin/mpass", 45, "abc123")

	if cmd.Path != "/usr/local/bin/mpass" {
		t.Errorf("command path = %q", cmd.Path)
	}

	args := strings.Join(cmd.Args, " ")
	if !strings.HasSuffix(args, "unclip --timeout 45") {
		t.Errorf("command args = %q", args)
	}

	var found bool
	for _, entry := range cmd.Env {
		if entry == ChecksumEnv+"=abc123" {
			found = true
		}
		if strings.Contains(entry, "hunter") {
			t.Errorf("child environment leaks a value: %q", entry)
		}
	}
	if !found {
		t.Error("checksum not passed in child environment")
	}

	// The clearer must not inherit the parent's stdio.
	if cmd.Stdin != nil || cmd.Stdout != nil || cmd.Stderr != nil {
		t.Error("clearer command wires up stdio")
	}
}
