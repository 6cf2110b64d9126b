package cli

import (
	"io"
	"testing"
)

func TestRootCommandGroups(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	tests := []struct {
		name  string
		group string
	}{
		{"new", "sites"},
		{"list", "sites"},
		{"use", "sites"},
		{"delete", "sites"},
		{"components", "sites"},
		{"templates", "sites"},
		{"show", "edit"},
		{"add", "edit"},
		{"remove", "edit"},
		{"duplicate", "edit"},
		{"move", "edit"},
		{"set", "edit"},
		{"controls", "edit"},
		{"image", "edit"},
		{"theme", "edit"},
		{"meta", "edit"},
		{"edit", "edit"},
		{"render", "output"},
		{"publish", "output"},
		{"serve", "output"},
		{"cache", ""},
		{"completion", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.name})
			if err != nil || cmd == root {
				t.Fatalf("command %q not registered", tt.name)
			}
			if cmd.GroupID != tt.group {
				t.Errorf("%s group = %q, want %q", tt.name, cmd.GroupID, tt.group)
			}
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"config", "site"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}

	aliases := map[string]string{"ls": "list", "rm": "delete"}
	for alias, want := range aliases {
		cmd, _, err := root.Find([]string{alias})
		if err != nil {
			t.Fatalf("Find(%q): %v", alias, err)
		}
		if cmd.Name() != want {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), want)
		}
	}
}

func TestMoveFlagsExclusive(t *testing.T) {
	isolate(t)
	if err := execute(t, "new", "Flags"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "move", "x", "--up", "--down"); err == nil {
		t.Error("expected an error for --up with --down")
	}
}
