// Package consumer applies document add/remove events read from Kafka to a
// running engine.
package consumer

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

type handler struct {
	engine *indexer.Engine
	logger *slog.Logger
}

// HandleMessage returns a Kafka MessageHandler that applies each
// DocumentEvent to engine. Undecodable events and documents the engine
// rejects are logged and acknowledged; redelivering them cannot succeed.
// Cached results need no flush: their keys carry the engine fingerprint.
func HandleMessage(engine *indexer.Engine) kafka.MessageHandler {
	h := &handler{
		engine: engine,
		logger: logger.WithComponent("index-consumer"),
	}
	return h.handle
}

func (h *handler) handle(_ context.Context, key []byte, value []byte) error {
	event, err := kafka.DecodeJSON[DocumentEvent](value)
	if err != nil {
		h.logger.Error("failed to decode document event",
			"error", err,
			"key", string(key),
		)
		return nil
	}

	switch event.Op {
	case OpAdd:
		if err := h.engine.AddDocument(event.ID, event.Text, event.Status, event.Ratings); err != nil {
			h.logger.Warn("document event rejected",
				"event_id", event.EventID,
				"doc_id", event.ID,
				"error", err,
			)
			return nil
		}
	case OpRemove:
		h.engine.RemoveDocument(event.ID)
	default:
		h.logger.Warn("unknown document event op",
			"event_id", event.EventID,
			"op", string(event.Op),
		)
		return nil
	}

	h.logger.Info("document event applied",
		"event_id", event.EventID,
		"op", string(event.Op),
		"doc_id", event.ID,
		"total", h.engine.GetDocumentCount(),
	)
	return nil
}
