package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
)

const selectDocuments = `SELECT id, body, status, ratings FROM documents ORDER BY id`

// PostgresSource reads the documents table:
//
//	CREATE TABLE documents (
//	    id      INTEGER PRIMARY KEY,
//	    body    TEXT NOT NULL,
//	    status  TEXT NOT NULL DEFAULT 'ACTUAL',
//	    ratings INTEGER[] NOT NULL DEFAULT '{}'
//	);
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectDocuments)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		r       Record
		status  string
		ratings []int64
	)
	if err := row.Scan(&r.ID, &r.Text, &status, pq.Array(&ratings)); err != nil {
		return Record{}, fmt.Errorf("scanning document row: %w", err)
	}
	parsed, err := index.ParseStatus(status)
	if err != nil {
		return Record{}, fmt.Errorf("document %d: %w", r.ID, err)
	}
	r.Status = parsed
	r.Ratings = make([]int, len(ratings))
	for i, v := range ratings {
		r.Ratings[i] = int(v)
	}
	return r, nil
}
