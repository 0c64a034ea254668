package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/dedup"
)

func newDedupCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dedup",
		Short: "Remove documents with the same set of words as an earlier one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), root.cfg)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			removed := dedup.RemoveDuplicates(a.engine, dedup.WithMetrics(a.metrics))
			for _, id := range removed {
				if _, err := fmt.Fprintf(out, "Found duplicate document id %d\n", id); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "Documents remaining: %d\n", a.engine.GetDocumentCount())
			return err
		},
	}
}
