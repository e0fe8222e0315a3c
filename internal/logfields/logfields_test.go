package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "install_deps", Stage("install_deps")},
		{"Command", KeyCommand, "npm install", Command("npm install")},
		{"Manager", KeyManager, "npm", Manager("npm")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Dir", KeyDir, "frontend", Dir("frontend")},
		{"RunID", KeyRunID, "rid", RunID("rid")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
		{"Version", KeyVersion, "1.42.0", Version("1.42.0")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := ExitCode(2); v.Key != KeyExitCode {
		t.Fatalf("ExitCode key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}

	attr = Error(errors.New("boom"))
	if attr.Value.String() != "boom" {
		t.Fatalf("Expected boom, got %s", attr.Value.String())
	}
}
