package consumer

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/loader"
)

// Op is the mutation carried by a DocumentEvent.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// DocumentEvent is the Kafka message payload for a single index mutation.
// Text, Status and Ratings are ignored for removals.
type DocumentEvent struct {
	EventID string       `json:"event_id"`
	Op      Op           `json:"op"`
	ID      int          `json:"id"`
	Text    string       `json:"text,omitempty"`
	Status  index.Status `json:"status"`
	Ratings []int        `json:"ratings,omitempty"`
}

func NewAddEvent(r loader.Record) DocumentEvent {
	return DocumentEvent{
		EventID: uuid.NewString(),
		Op:      OpAdd,
		ID:      r.ID,
		Text:    r.Text,
		Status:  r.Status,
		Ratings: r.Ratings,
	}
}

func NewRemoveEvent(id int) DocumentEvent {
	return DocumentEvent{
		EventID: uuid.NewString(),
		Op:      OpRemove,
		ID:      id,
	}
}

// Key partitions events by document id so that mutations of one document
// are consumed in order.
func (e DocumentEvent) Key() string {
	return strconv.Itoa(e.ID)
}
