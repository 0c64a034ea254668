package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/consumer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

func newConsumeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Keep the index current from the Kafka document topic",
		Long: `Consume loads the configured documents, then applies add and remove events
from the documents topic until interrupted. With metrics enabled it also
serves /metrics, /health/live and /health/ready.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runConsume(ctx, root)
		},
	}
}

func runConsume(ctx context.Context, root *rootOptions) error {
	cfg := root.cfg
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()
	log := logger.FromContext(ctx)

	c := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.Documents, consumer.HandleMessage(a.engine))
	defer c.Close()

	if cfg.Metrics.Enabled {
		checker := a.healthChecker()
		shutdown := a.metrics.StartServer(cfg.Metrics.Port, map[string]http.Handler{
			"GET /health/live":  checker.LiveHandler(),
			"GET /health/ready": checker.ReadyHandler(),
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	log.Info("consuming document events",
		"topic", cfg.Kafka.Topics.Documents,
		"brokers", cfg.Kafka.Brokers,
		"documents", a.engine.GetDocumentCount(),
	)
	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("consuming document events: %w", err)
	}
	log.Info("consumer stopped", "documents", a.engine.GetDocumentCount())
	return nil
}

func (a *app) healthChecker() *health.Checker {
	checker := health.NewChecker()
	checker.Register("index", func(context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents", a.engine.GetDocumentCount()),
		}
	})
	if a.postgres != nil {
		checker.Register("postgres", health.Ping(a.postgres.Ping, true))
	}
	return checker
}
