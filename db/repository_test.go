package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	database, err := NewDatabase(filepath.Join(t.TempDir(), "deckgen.db"))
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertAndGetRun(t *testing.T) {
	repo := NewRunRepository(openTestDatabase(t))
	ctx := context.Background()

	id, err := repo.Insert(ctx, RunRecord{
		RunID:     "20250101_120000_abcd1234",
		Idea:      "a deck about coffee",
		PageCount: 6,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id < 1 {
		t.Errorf("expected positive row ID, got %d", id)
	}

	record, err := repo.GetByRunID(ctx, "20250101_120000_abcd1234")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if record.Idea != "a deck about coffee" {
		t.Errorf("idea not preserved: %q", record.Idea)
	}
	if record.Status != StatusRunning {
		t.Errorf("expected default status %q, got %q", StatusRunning, record.Status)
	}
	if record.CompletedAt != nil {
		t.Error("running record should have no completion time")
	}
	if len(record.FailedIndices) != 0 {
		t.Errorf("expected no failed indices, got %v", record.FailedIndices)
	}
	if record.CreatedAt.IsZero() {
		t.Error("created_at should be stamped")
	}
}

func TestUpdateRunCompletion(t *testing.T) {
	repo := NewRunRepository(openTestDatabase(t))
	ctx := context.Background()

	if _, err := repo.Insert(ctx, RunRecord{RunID: "run-1", Idea: "idea", PageCount: 5}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	err := repo.Update(ctx, RunRecord{
		RunID:          "run-1",
		PageCount:      5,
		DescribedCount: 5,
		RenderedCount:  3,
		FailedIndices:  []int{2, 5},
		Status:         StatusCompleted,
		OutputPath:     "/output/run-1/deck.pptx",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	record, err := repo.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if record.RenderedCount != 3 {
		t.Errorf("rendered count not updated: %d", record.RenderedCount)
	}
	if len(record.FailedIndices) != 2 || record.FailedIndices[0] != 2 || record.FailedIndices[1] != 5 {
		t.Errorf("failed indices not preserved: %v", record.FailedIndices)
	}
	if record.Status != StatusCompleted {
		t.Errorf("status not updated: %q", record.Status)
	}
	if record.CompletedAt == nil {
		t.Error("completed run should carry a completion time")
	}
	if record.OutputPath != "/output/run-1/deck.pptx" {
		t.Errorf("output path not updated: %q", record.OutputPath)
	}
}

func TestUpdateUnknownRun(t *testing.T) {
	repo := NewRunRepository(openTestDatabase(t))

	err := repo.Update(context.Background(), RunRecord{RunID: "missing", Status: StatusFailed})
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	repo := NewRunRepository(openTestDatabase(t))
	ctx := context.Background()

	for _, runID := range []string{"run-a", "run-b", "run-c"} {
		if _, err := repo.Insert(ctx, RunRecord{RunID: runID, Idea: "idea"}); err != nil {
			t.Fatalf("Insert %s failed: %v", runID, err)
		}
	}

	records, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RunID != "run-c" || records[1].RunID != "run-b" {
		t.Errorf("expected newest first, got %s then %s", records[0].RunID, records[1].RunID)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	database := openTestDatabase(t)

	// A second pass over an up-to-date schema must be a no-op.
	if err := MigrateUp(database.DB()); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}
}
