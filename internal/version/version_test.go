package version

import (
	"strings"
	"testing"
)

func TestString_Dirty(t *testing.T) {
	origVersion, origDirty := Version, Dirty
	defer func() { Version, Dirty = origVersion, origDirty }()

	Version, Dirty = "1.2.0", "false"
	if got := String(); got != "1.2.0" {
		t.Errorf("String() = %q, want %q", got, "1.2.0")
	}

	Dirty = "true"
	if got := String(); got != "1.2.0-dirty" {
		t.Errorf("String() = %q, want %q", got, "1.2.0-dirty")
	}
	if !Get().Dirty {
		t.Error("Get().Dirty should be true")
	}
}

func TestFull_Header(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, "yumscrape ") {
		t.Errorf("Full() should start with the binary name, got %q", full)
	}
	if !strings.Contains(full, Get().Platform) {
		t.Errorf("Full() missing platform: %q", full)
	}
}
