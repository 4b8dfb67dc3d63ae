package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/config"
	"github.com/mark-chris/knnchat/internal/knowledge"
	"github.com/mark-chris/knnchat/internal/logging"
)

var (
	// Global flags
	corpusPath   string
	configPath   string
	outputFormat string
	verbose      bool
	debug        bool

	// Shared resources
	cfg     *config.AppConfig
	log     *logrus.Entry
	loader  *knowledge.Loader
	index   *knowledge.Index
	learner *knowledge.Learner
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "knnchat",
	Short: "Nearest-neighbour interaction matcher",
	Long: `knnchat - answer free text with the closest known interaction.

Each interaction in the corpus is a prompt and a canned reply. A query is
normalized (stop words, suffix stemming, synonyms), weighed with TF-IDF and
compared to every prompt by cosine similarity; the best prompt's reply wins.

Examples:
  # Ask something
  knnchat query "how is the weather today?"

  # Teach a new interaction
  knnchat learn --input "tell me a joke" --response "knock knock"

  # Chat interactively, teaching unknown prompts with /learn
  knnchat chat

  # Start the MCP server for AI agents
  knnchat serve --watch`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return initialize()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&corpusPath, "corpus", "c", "",
		"Path to a corpus YAML file or directory (default: config corpus.path)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath,
		"Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json",
		"Output format: json or text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Human-readable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(augmentCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// initialize loads config, sets up logging and builds the index
func initialize() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log, err = logging.New(logging.Options{Level: level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	if corpusPath == "" {
		corpusPath = findCorpus(cfg.Corpus.Path)
	}

	loader = knowledge.NewLoader(corpusPath)
	index = knowledge.NewIndex()
	learner = knowledge.NewLearner(index, loader, cfg.Index.RebuildOnLearn)

	return loadCorpus()
}

// loadCorpus (re)builds the index from disk. A missing corpus is an empty
// one, so learn and chat can start from nothing.
func loadCorpus() error {
	corpus, err := loader.LoadAll()
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("corpus", loader.BasePath()).Warn("Corpus not found, starting empty")
		corpus, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	learner.Rebuild(corpus)
	log.WithFields(logrus.Fields{
		"corpus":       loader.BasePath(),
		"interactions": index.Count(),
	}).Debug("Index built")
	return nil
}

// findCorpus returns the first existing corpus location, falling back to
// the configured path
func findCorpus(configured string) string {
	candidates := []string{
		configured,
		"corpus.yaml",
		filepath.Join(os.Getenv("HOME"), ".knnchat", "corpus"),
	}

	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return configured
}

// getFormat returns the output format based on flags
func getFormat() knowledge.OutputFormat {
	if outputFormat == "text" || verbose {
		return knowledge.FormatText
	}
	return knowledge.FormatJSON
}
