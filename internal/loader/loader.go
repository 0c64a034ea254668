// Package loader reads documents from a configured source and feeds them to
// the engine at startup.
package loader

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// Record is one document as stored in a source.
type Record struct {
	ID      int          `yaml:"id" json:"id"`
	Text    string       `yaml:"text" json:"text"`
	Status  index.Status `yaml:"status" json:"status"`
	Ratings []int        `yaml:"ratings" json:"ratings"`
}

type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

type Stats struct {
	Loaded   int
	Rejected int
}

// Apply adds every record from src to engine. Records the engine rejects are
// logged and counted, never fatal; only a failing source or a cancelled
// context stops the load.
func Apply(ctx context.Context, src Source, engine *indexer.Engine) (Stats, error) {
	log := logger.WithComponent("loader")
	records, err := src.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("loading documents: %w", err)
	}

	var stats Stats
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := engine.AddDocument(r.ID, r.Text, r.Status, r.Ratings); err != nil {
			log.Warn("skipping document", "doc_id", r.ID, "error", err)
			stats.Rejected++
			continue
		}
		stats.Loaded++
	}
	log.Info("documents loaded",
		"loaded", stats.Loaded,
		"rejected", stats.Rejected,
		"total", engine.GetDocumentCount(),
	)
	return stats, nil
}
