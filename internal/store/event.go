package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const sequenceTable = "global_sequence"

// sequenceCounter stamps every recorded model turn with a monotonic number.
// Timestamps can collide within one streamed turn, so `llm list` pages by
// sequence. The counter row lives beside the events; ent has no atomic
// counter primitive, hence the UPDATE ... RETURNING.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// newSequenceCounter ensures the counter row exists. A database whose
// counter row is missing but which already holds events resumes after the
// highest recorded sequence.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	ddl := `CREATE TABLE IF NOT EXISTS ` + sequenceTable + ` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`
	if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	last, err := maxSequence(ctx, drv)
	if err != nil {
		return nil, err
	}
	seed := `INSERT OR IGNORE INTO ` + sequenceTable + ` (id, next_val) VALUES (1, ?)`
	if err := drv.Exec(ctx, seed, []any{last + 1}, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

func maxSequence(ctx context.Context, drv *entsql.Driver) (int64, error) {
	t := entsql.Table(llmEventsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Max(t.C(colSequence))).
		From(t).
		Query()

	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("read last sequence: %w", err)
	}
	defer rows.Close()

	var last sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&last); err != nil {
			return 0, fmt.Errorf("scan last sequence: %w", err)
		}
	}
	return last.Int64, rows.Err()
}

// Next returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	rows := &entsql.Rows{}
	err := sc.drv.Query(ctx,
		`UPDATE `+sequenceTable+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	var seq int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
