package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil ent driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(ctx, s.Driver())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Open already created the counter; a second one shares the row.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "lesson", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(events))
	}

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "qa", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, _ = s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if events[0].Sequence != 2 {
		t.Fatalf("expected sequence to continue at 2, got %d", events[0].Sequence)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "tutor.db")
		t.Setenv("GA4TUTOR_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("GA4TUTOR_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "ga4tutor", "ga4tutor.db")
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

func seedEvents(t *testing.T, repo *EventStore) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson-prime", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nStart Module 1", ResponseBody: `{"screen":{}}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson", InputTokens: 300, OutputTokens: 80, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-3-pro-preview", Purpose: "qa", InputTokens: 20, OutputTokens: 200, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson", LatencyMs: 100, Success: false, ErrorMessage: "LLM provider unavailable"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 events, got %d", len(all))
	}
	if all[0].Sequence != 4 || all[3].Sequence != 1 {
		t.Fatalf("expected newest first, got sequences %d..%d", all[0].Sequence, all[3].Sequence)
	}
	if all[0].Success || all[0].ErrorMessage == "" {
		t.Fatalf("expected newest event to be the failure, got %+v", all[0])
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Fatalf("unexpected timestamp: %v", all[0].Timestamp)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"limit", QueryOpts{Limit: 2}, 2},
		{"purpose", QueryOpts{Purpose: "lesson"}, 2},
		{"after", QueryOpts{After: 2}, 2},
		{"before", QueryOpts{Before: 2}, 1},
		{"from future", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
		{"to past", QueryOpts{To: time.Now().Add(-time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	all, _ := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson-prime"})
	if len(all) != 1 {
		t.Fatalf("expected 1 prime event, got %d", len(all))
	}

	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.RequestBody != "[user]\nStart Module 1" || e.ResponseBody != `{"screen":{}}` {
		t.Fatalf("bodies not round-tripped: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 3 {
		t.Fatalf("expected 3 purposes, got %d", len(byPurpose))
	}
	// Ordered by purpose: lesson, lesson-prime, qa.
	lesson := byPurpose[0]
	if lesson.Purpose != "lesson" || lesson.Calls != 2 || lesson.InputTokens != 300 || lesson.AvgLatencyMs != 250 {
		t.Fatalf("unexpected lesson usage: %+v", lesson)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	if byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 3 || byModel[0].OutputTokens != 130 {
		t.Fatalf("unexpected flash usage: %+v", byModel[0])
	}
}

func TestSequenceResumesWithoutCounterRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for range 3 {
		if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "qa", Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := s.DB().Exec("DROP TABLE " + sequenceTable); err != nil {
		t.Fatalf("drop counter: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "qa", Success: true}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if events[0].Sequence != 4 {
		t.Fatalf("expected sequence 4 after the three existing events, got %d", events[0].Sequence)
	}
}
