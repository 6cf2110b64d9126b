package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFromBuild(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	t.Run("Unstamped", func(t *testing.T) {
		stamp(t, "dev", "none", "unknown")
		fromBuild(info)
		if Version != "v0.4.1" || Commit != "0123456789ab" || Date != "2026-01-02T03:04:05Z" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("LinkerWins", func(t *testing.T) {
		stamp(t, "v1.0.0", "abc", "today")
		fromBuild(info)
		if Version != "v1.0.0" || Commit != "abc" || Date != "today" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("DevelBuild", func(t *testing.T) {
		stamp(t, "dev", "none", "unknown")
		fromBuild(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		if Version != "dev" {
			t.Errorf("Version = %s", Version)
		}
	})
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasPrefix(ua, "pagesmith/") {
		t.Errorf("UserAgent() = %q", ua)
	}
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Errorf("Template() = %q", Template())
	}
}
