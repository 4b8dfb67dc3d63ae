package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/cli/testutil"
)

// runTestCommand registers a no-op subcommand, executes it with args and
// returns the error
func runTestCommand(t *testing.T, name string, args ...string) error {
	t.Helper()
	testCmd := &cobra.Command{
		Use:   name,
		Short: "Test command",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	rootCmd.AddCommand(testCmd)
	defer rootCmd.RemoveCommand(testCmd)

	rootCmd.SetArgs(append([]string{name}, args...))
	return rootCmd.Execute()
}

// TestRootCommand_InitializesIndex tests that root command triggers index initialization
func TestRootCommand_InitializesIndex(t *testing.T) {
	fixture := testutil.SetupTestCorpus(t)
	defer fixture.Cleanup()
	resetFlags()

	noConfig := filepath.Join(t.TempDir(), "none.yaml")
	if err := runTestCommand(t, "test", "-c", fixture.Dir, "--config", noConfig); err != nil {
		t.Fatalf("Root command initialization failed: %v", err)
	}

	if loader == nil || index == nil || learner == nil || cfg == nil || log == nil {
		t.Fatal("Expected shared resources to be initialized")
	}

	if index.Count() != 3 {
		t.Errorf("Expected 3 interactions in index, got %d", index.Count())
	}
	if index.Stale() {
		t.Error("Freshly built index should not be stale")
	}
}

// TestRootCommand_MissingCorpusStartsEmpty tests that a missing corpus is an empty one
func TestRootCommand_MissingCorpusStartsEmpty(t *testing.T) {
	resetFlags()
	dir := t.TempDir()

	err := runTestCommand(t, "test-missing",
		"-c", filepath.Join(dir, "nothing-here"),
		"--config", filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatalf("Expected missing corpus to be tolerated, got %v", err)
	}
	if index.Count() != 0 {
		t.Errorf("Expected empty index, got %d interactions", index.Count())
	}
}

// TestRootCommand_InvalidCorpus tests error handling for an unparseable corpus
func TestRootCommand_InvalidCorpus(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("interactions: [oops"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runTestCommand(t, "test-invalid", "-c", broken, "--config", filepath.Join(dir, "none.yaml"))
	if err == nil {
		t.Fatal("Expected error for invalid corpus, got none")
	}
	if !strings.Contains(err.Error(), "failed to load corpus") {
		t.Errorf("Expected 'failed to load corpus' error, got: %v", err)
	}
}

// TestRootCommand_ConfigCorpusPath tests that the config file supplies the corpus path
func TestRootCommand_ConfigCorpusPath(t *testing.T) {
	fixture := testutil.SetupTestCorpus(t)
	resetFlags()

	configFile := filepath.Join(t.TempDir(), "knnchat.yaml")
	content := "corpus:\n  path: " + fixture.Dir + "\nindex:\n  rebuild_on_learn: true\n"
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runTestCommand(t, "test-config", "--config", configFile); err != nil {
		t.Fatalf("Root command failed: %v", err)
	}
	if index.Count() != 3 {
		t.Errorf("Expected 3 interactions from configured corpus, got %d", index.Count())
	}
	if !cfg.Index.RebuildOnLearn {
		t.Error("Expected rebuild_on_learn from config")
	}
}

// TestRootCommand_SkipsInitForHelp tests that help command skips initialization
func TestRootCommand_SkipsInitForHelp(t *testing.T) {
	resetFlags()
	corpusPath = "/nonexistent/should/not/matter"

	rootCmd.SetArgs([]string{"help"})

	_ = captureOutput(func() {
		err := rootCmd.Execute()
		if err != nil {
			t.Errorf("Help command should not fail: %v", err)
		}
	})

	if index != nil {
		t.Error("help should not build the index")
	}
}

// TestGetFormat tests output format selection
func TestGetFormat(t *testing.T) {
	resetFlags()
	if getFormat() != "json" {
		t.Errorf("default format = %q, want json", getFormat())
	}
	verbose = true
	if getFormat() != "text" {
		t.Errorf("verbose format = %q, want text", getFormat())
	}
	resetFlags()
}
