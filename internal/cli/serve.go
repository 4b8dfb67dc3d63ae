package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mark-chris/knnchat/internal/mcp"
	"github.com/mark-chris/knnchat/internal/watch"
)

var (
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start a Model Context Protocol (MCP) server on stdin/stdout.

The server exposes three tools:
  knn_match    find the closest interaction for a query
  knn_learn    teach a new interaction
  knn_augment  list synonym rewrites of a sentence

With --watch the corpus is reloaded whenever its files change.

Examples:
  # Start the server
  knnchat serve

  # Reload on corpus edits
  knnchat serve --watch`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false,
		"Reload the corpus when its files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, os.Stdin, os.Stdout)
}

// serve runs the stdio server and, with --watch, the corpus watcher until
// the input ends or ctx is cancelled
func serve(ctx context.Context, in io.Reader, out io.Writer) error {
	mcp.Version = Version
	srv := mcp.NewServer(index,
		mcp.WithLearner(learner),
		mcp.WithLogger(log),
		mcp.WithMatchDefaults(cfg.Match.MinScore, cfg.Match.TokenLimit),
	)

	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		// The watcher has nothing to serve once the client is gone.
		defer cancel()
		return srv.ServeStdio(gctx, in, out)
	})

	if serveWatch {
		if _, err := os.Stat(loader.BasePath()); errors.Is(err, os.ErrNotExist) {
			log.WithField("corpus", loader.BasePath()).Warn("Corpus does not exist, not watching")
		} else {
			w := watch.New(loader.BasePath(), cfg.Corpus.Include, loadCorpus, log)
			g.Go(func() error { return w.Run(gctx) })
		}
	}

	return g.Wait()
}
