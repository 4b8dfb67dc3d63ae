package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/mark-chris/knnchat/internal/cli/testutil"
	"github.com/mark-chris/knnchat/internal/config"
	"github.com/mark-chris/knnchat/internal/knowledge"
	"github.com/mark-chris/knnchat/internal/logging"
)

// resetFlags resets command flags and shared state
func resetFlags() {
	corpusPath = ""
	configPath = config.DefaultPath
	outputFormat = "json"
	verbose = false
	debug = false

	queryTop = 0
	queryMinScore = -1
	learnInput = ""
	learnResponse = ""
	learnTags = nil
	augmentID = ""
	augmentWrite = false
	validateAll = false
	statsTerms = 20
	serveWatch = false

	cfg = nil
	log = nil
	loader = nil
	index = nil
	learner = nil
}

// setupCorpus loads the test corpus into the shared state the way
// PersistentPreRunE does
func setupCorpus(t *testing.T) *testutil.TestFixture {
	t.Helper()
	fixture := testutil.SetupTestCorpus(t)

	resetFlags()
	corpusPath = fixture.Dir
	cfg = config.Default()
	log = logging.Discard()
	loader = knowledge.NewLoader(corpusPath)
	index = knowledge.NewIndex()
	learner = knowledge.NewLearner(index, loader, cfg.Index.RebuildOnLearn)
	if err := loadCorpus(); err != nil {
		t.Fatalf("Failed to load corpus: %v", err)
	}
	return fixture
}

// captureOutput captures stdout for testing
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}
