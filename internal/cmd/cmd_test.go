package cmd

import "testing"

func TestRootCommand_HasWatchSubcommand(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "watch" {
			found = true
		}
	}
	if !found {
		t.Error("Expected watch subcommand registered on root")
	}
}

func TestRootCommand_LogLevelFlag(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("Expected persistent log-level flag on root")
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()

	n, err := countEntries([]string{dir})
	if err != nil {
		t.Fatalf("countEntries failed: %v", err)
	}
	// The directory itself counts as one entry.
	if n != 1 {
		t.Errorf("Expected 1 entry for empty dir, got %d", n)
	}
}
