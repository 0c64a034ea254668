package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <query>",
		Short: "Show which query words every document contains",
		Long: `Match prints, for each document in ascending id order, the plus words of
the query it contains and its status. A document containing any minus word
matches nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			a, err := newApp(cmd.Context(), root.cfg)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			for _, id := range a.engine.DocumentIDs() {
				words, status, err := a.exec.MatchDocument(query, id)
				if err != nil {
					return fmt.Errorf("match %q: %w", query, err)
				}
				if _, err := fmt.Fprintf(out, "{ document_id = %d, status = %s, words = %s }\n",
					id, status, strings.Join(words, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
