package buildinfo

import "testing"

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.0.0", "0123456789abcdef"
	if got, want := Short(), "v1.0.0 (0123456)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}

	Commit = "none"
	if got, want := Short(), "v1.0.0 (none)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}
