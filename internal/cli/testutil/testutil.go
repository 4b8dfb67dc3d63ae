package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

// TestFixture holds test resources and provides cleanup
type TestFixture struct {
	Dir          string                  // Temporary directory containing the test corpus
	Interactions []knowledge.Interaction // Interactions written to the corpus
	Cleanup      func()                  // Cleanup function to remove temporary resources
}

// SetupTestCorpus creates a temporary corpus directory with 3 interactions
// split over two files. It returns a TestFixture with the directory path,
// the interactions in load order, and a cleanup function.
func SetupTestCorpus(t *testing.T) *TestFixture {
	t.Helper()

	tmpDir := t.TempDir()

	greetings := []knowledge.Interaction{
		CreateTestInteraction("test-hello", "hello there", "hi, how can I help?"),
		CreateTestInteraction("test-weather", "how is the weather today", "sunny with a chance of vectors"),
	}
	hobbies := []knowledge.Interaction{
		CreateTestInteraction("test-music", "I love music", "me too, especially jazz"),
	}
	hobbies[0].Tags = []string{"hobby"}

	if err := WriteCorpusFile(filepath.Join(tmpDir, "a-greetings.yaml"), greetings); err != nil {
		t.Fatalf("Failed to write corpus file: %v", err)
	}
	if err := WriteCorpusFile(filepath.Join(tmpDir, "b-hobbies.yaml"), hobbies); err != nil {
		t.Fatalf("Failed to write corpus file: %v", err)
	}

	return &TestFixture{
		Dir:          tmpDir,
		Interactions: append(greetings, hobbies...),
		Cleanup:      func() {}, // t.TempDir() handles cleanup automatically
	}
}

// CreateTestInteraction builds an interaction for testing
func CreateTestInteraction(id, input, response string) knowledge.Interaction {
	return knowledge.Interaction{
		ID:       id,
		Input:    input,
		Response: response,
		Tags:     []string{"test"},
	}
}

// WriteCorpusFile writes interactions to a corpus YAML file
func WriteCorpusFile(path string, interactions []knowledge.Interaction) error {
	data, err := yaml.Marshal(knowledge.CorpusFile{Interactions: interactions})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// #nosec G306 -- Test files don't need restrictive permissions
	return os.WriteFile(path, data, 0644)
}
