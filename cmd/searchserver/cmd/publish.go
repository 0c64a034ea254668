package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/consumer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/loader"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/kafka"
)

type publishOptions struct {
	file   string
	remove []int
}

func newPublishCmd(root *rootOptions) *cobra.Command {
	var opts publishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish document add and remove events to Kafka",
		Long: `Publish sends one add event per document in a YAML file and one remove
event per --remove id to the documents topic. Running consumers apply them
in order per document id.

Examples:
  searchserver publish --file docs.yaml
  searchserver publish --remove 3 --remove 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.file == "" && len(opts.remove) == 0 {
				return apperrors.New(apperrors.ErrInvalidArgument, "nothing to publish: pass --file or --remove")
			}
			events, err := buildEvents(cmd, opts)
			if err != nil {
				return err
			}
			cfg := root.cfg
			producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.Documents)
			defer producer.Close()

			if err := producer.Publish(cmd.Context(), events...); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Published %d events to %s\n", len(events), cfg.Kafka.Topics.Documents)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML file of documents to add")
	cmd.Flags().IntSliceVar(&opts.remove, "remove", nil, "Document id to remove (repeatable)")

	return cmd
}

func buildEvents(cmd *cobra.Command, opts publishOptions) ([]kafka.Event, error) {
	var events []kafka.Event
	if opts.file != "" {
		records, err := loader.NewFileSource(opts.file).Load(cmd.Context())
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			e := consumer.NewAddEvent(r)
			events = append(events, kafka.Event{Key: e.Key(), Value: e})
		}
	}
	for _, id := range opts.remove {
		e := consumer.NewRemoveEvent(id)
		events = append(events, kafka.Event{Key: e.Key(), Value: e})
	}
	return events, nil
}
