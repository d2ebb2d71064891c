package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsText(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "weird"}
	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestCurrent(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Current()
	if info.Version != Version || info.GitCommit != "abc123" || info.BuildDate != BuildDate {
		t.Fatalf("Current() = %+v", info)
	}
}
