package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	got := Info()
	if !strings.HasPrefix(got, "nbaterm ") {
		t.Errorf("Info() = %q, want nbaterm prefix", got)
	}
	if !strings.Contains(got, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Info() = %q, missing platform", got)
	}
	// Every field is filled, whatever the build environment.
	if Version == "" || Commit == "" || Date == "" {
		t.Errorf("unfilled metadata: version=%q commit=%q date=%q", Version, Commit, Date)
	}
}
