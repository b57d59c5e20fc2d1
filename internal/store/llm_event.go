package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// EventStore implements EventRepo and the read side used by the llm
// subcommands, backed by the ent SQL driver and the global sequence counter.
type EventStore struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ EventRepo = (*EventStore)(nil)

func (r *EventStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(llmEventsTable).
		Columns(
			colSequence, colTimestamp, colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
			colErrorMessage, colRequestBody, colResponseBody,
		).
		Values(
			seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first, filtered by opts.
func (r *EventStore) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	t := entsql.Table(llmEventsTable)
	sel := selectEvents(t)

	if opts.After > 0 {
		sel.Where(entsql.GT(t.C(colSequence), opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(t.C(colSequence), opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(t.C(colTimestamp), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(t.C(colTimestamp), opts.To.UTC()))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ(t.C(colPurpose), opts.Purpose))
	}

	sel.OrderBy(entsql.Desc(t.C(colSequence)))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	return r.scanEvents(ctx, sel)
}

// GetLLMEvent returns the event with the given ID, or nil if none exists.
func (r *EventStore) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	t := entsql.Table(llmEventsTable)
	sel := selectEvents(t).Where(entsql.EQ(t.C(colID), id))

	events, err := r.scanEvents(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// LLMUsageByPurpose aggregates calls and tokens per purpose label.
func (r *EventStore) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	t := entsql.Table(llmEventsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			t.C(colPurpose),
			entsql.Count("*"),
			entsql.Sum(t.C(colInputTokens)),
			entsql.Sum(t.C(colOutputTokens)),
			entsql.Avg(t.C(colLatencyMs)),
		).
		From(t).
		GroupBy(t.C(colPurpose)).
		OrderBy(t.C(colPurpose)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u       PurposeUsage
			latency float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &latency); err != nil {
			return nil, fmt.Errorf("scan usage by purpose: %w", err)
		}
		u.AvgLatencyMs = int(latency)
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel aggregates calls and tokens per model, for cost estimates.
func (r *EventStore) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	t := entsql.Table(llmEventsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			t.C(colModel),
			entsql.Count("*"),
			entsql.Sum(t.C(colInputTokens)),
			entsql.Sum(t.C(colOutputTokens)),
		).
		From(t).
		GroupBy(t.C(colModel)).
		OrderBy(t.C(colModel)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage by model: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func selectEvents(t *entsql.SelectTable) *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(
			t.C(colID), t.C(colSequence), t.C(colTimestamp),
			t.C(colProvider), t.C(colModel), t.C(colPurpose),
			t.C(colInputTokens), t.C(colOutputTokens), t.C(colLatencyMs),
			t.C(colSuccess), t.C(colErrorMessage),
			t.C(colRequestBody), t.C(colResponseBody),
		).
		From(t)
}

func (r *EventStore) scanEvents(ctx context.Context, sel *entsql.Selector) ([]LLMEvent, error) {
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage,
			&e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
