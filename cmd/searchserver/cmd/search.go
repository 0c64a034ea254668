package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

type searchOptions struct {
	queriesFile string
	status      string
	joined      bool
	flushCache  bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]...",
		Short: "Rank documents for one query or a batch of queries",
		Long: `Search loads the configured documents and ranks them against the query.

Every query goes through the result cache and the zero-result tracker. A
single query may be filtered by --status. Several queries (extra arguments
or lines of --queries) are evaluated in parallel; --joined prints their
results as one flat list. With Redis enabled, results are shared by every
process that loaded the same documents.

Examples:
  searchserver search "fluffy cat -collar"
  searchserver search --status banned "groomed starling"
  searchserver search "cat" "dog -eyes" --joined
  searchserver search --queries queries.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := args
			if opts.queriesFile != "" {
				fromFile, err := readQueries(opts.queriesFile)
				if err != nil {
					return err
				}
				queries = append(queries, fromFile...)
			}
			if len(queries) == 0 {
				return apperrors.New(apperrors.ErrInvalidArgument, "no query given")
			}
			return runSearch(cmd, root, queries, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.queriesFile, "queries", "q", "", "File with one query per line")
	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "Only return documents with this status (single query only)")
	cmd.Flags().BoolVar(&opts.joined, "joined", false, "Print batch results as one flat list")
	cmd.Flags().BoolVar(&opts.flushCache, "flush-cache", false, "Drop all cached results, including Redis entries, before searching")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, queries []string, opts searchOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	log := logger.FromContext(ctx)

	if len(queries) > 1 && opts.status != "" {
		return apperrors.New(apperrors.ErrInvalidArgument, "--status applies to a single query")
	}
	status := index.StatusActual
	if opts.status != "" {
		s, err := index.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		status = s
	}

	a, err := newApp(ctx, root.cfg)
	if err != nil {
		return err
	}
	defer a.close()

	results := a.searcher(ctx)
	if opts.flushCache {
		if err := results.Invalidate(ctx); err != nil {
			return err
		}
	}
	queue := a.requestQueue(results)
	defer func() {
		log.Info("search finished",
			"queries", len(queries),
			"no_result_requests", queue.NoResultRequests(),
		)
	}()

	if len(queries) == 1 {
		docs, err := queue.AddFindRequestByStatus(queries[0], status)
		if err != nil {
			return fmt.Errorf("search %q: %w", queries[0], err)
		}
		return printDocuments(out, docs)
	}

	if opts.joined {
		docs, err := a.exec.ProcessQueriesJoinedWith(ctx, queries, queue.AddFindRequestDefault)
		if err != nil {
			return err
		}
		return printDocuments(out, docs)
	}
	batch, err := a.exec.ProcessQueriesWith(ctx, queries, queue.AddFindRequestDefault)
	if err != nil {
		return err
	}
	for i, docs := range batch {
		if _, err := fmt.Fprintf(out, "Results for query: %s\n", queries[i]); err != nil {
			return err
		}
		if err := printDocuments(out, docs); err != nil {
			return err
		}
	}
	return nil
}

func printDocuments(w io.Writer, docs []ranker.Document) error {
	for _, d := range docs {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// readQueries returns the non-blank lines of path.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening queries file: %w", err)
	}
	defer f.Close()

	var queries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading queries file: %w", err)
	}
	return queries, nil
}
