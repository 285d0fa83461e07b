package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"labelscan/internal/dto"
	"labelscan/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file should exist")
	}

	return db
}

func insertRecord(t *testing.T, repo *RecordRepository, filename, modelOutput string, ts time.Time) int64 {
	t.Helper()
	id, err := repo.Insert(&model.InferenceRecord{
		Filename:    filename,
		FilePath:    "/uploads/" + filename,
		OCRText:     "some text",
		ModelOutput: modelOutput,
		Timestamp:   ts,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return id
}

func TestRecordRepository_InsertAndGet(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t))

	ts := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	id := insertRecord(t, repo, "label.png", "aspirin,ibuprofen", ts)

	rec, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected record, got nil")
	}
	if rec.Filename != "label.png" || rec.ModelOutput != "aspirin,ibuprofen" {
		t.Errorf("Unexpected record: %+v", rec)
	}
}

func TestRecordRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t))

	rec, err := repo.GetByID(12345)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for missing record, got %+v", rec)
	}
}

func TestRecordRepository_GetAllOrderedNewestFirst(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t))

	insertRecord(t, repo, "old.png", "aspirin", time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	insertRecord(t, repo, "new.png", "ibuprofen", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	records, err := repo.GetAll(&dto.RecordFilters{})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Filename != "new.png" {
		t.Errorf("Expected newest first, got %s", records[0].Filename)
	}
}

func TestRecordRepository_FilterByLabel(t *testing.T) {
	db := newTestDB(t)
	recordRepo := NewRecordRepository(db)
	labelRepo := NewLabelRepository(db)

	withAspirin := insertRecord(t, recordRepo, "a.png", "aspirin", time.Now())
	insertRecord(t, recordRepo, "b.png", "No text detected", time.Now())

	if err := labelRepo.InsertBatch([]model.RecordLabel{
		{RecordID: withAspirin, Name: "aspirin", Position: 0},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	records, err := recordRepo.GetAll(&dto.RecordFilters{Label: "aspirin"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Filename != "a.png" {
		t.Errorf("Label filter returned %+v", records)
	}

	count, err := recordRepo.GetTotalCount(&dto.RecordFilters{Label: "aspirin"})
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, expected 1", count)
	}
}

func TestRecordRepository_Pagination(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t))

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		insertRecord(t, repo, "r.png", "aspirin", base.Add(time.Duration(i)*time.Hour))
	}

	records, err := repo.GetAll(&dto.RecordFilters{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records for page, got %d", len(records))
	}
}

func TestRecordRepository_Delete(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t))

	id := insertRecord(t, repo, "gone.png", "aspirin", time.Now())
	if err := repo.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	rec, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec != nil {
		t.Error("Record should be gone after delete")
	}
}

func TestRecordRepository_DeleteAll(t *testing.T) {
	db := newTestDB(t)
	recordRepo := NewRecordRepository(db)
	labelRepo := NewLabelRepository(db)

	id := insertRecord(t, recordRepo, "x.png", "aspirin", time.Now())
	labelRepo.InsertBatch([]model.RecordLabel{{RecordID: id, Name: "aspirin", Position: 0}})

	if err := recordRepo.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	count, err := recordRepo.GetTotalCount(&dto.RecordFilters{})
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d after DeleteAll, expected 0", count)
	}

	names, err := labelRepo.GetAllNames()
	if err != nil {
		t.Fatalf("GetAllNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Labels remain after DeleteAll: %v", names)
	}
}

func TestLabelRepository_DetectionOrderPreserved(t *testing.T) {
	db := newTestDB(t)
	recordRepo := NewRecordRepository(db)
	labelRepo := NewLabelRepository(db)

	id := insertRecord(t, recordRepo, "multi.png", "ibuprofen,aspirin,ibuprofen", time.Now())

	if err := labelRepo.InsertBatch([]model.RecordLabel{
		{RecordID: id, Name: "ibuprofen", Position: 0},
		{RecordID: id, Name: "aspirin", Position: 1},
		{RecordID: id, Name: "ibuprofen", Position: 2},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	names, err := labelRepo.GetNamesByRecordID(id)
	if err != nil {
		t.Fatalf("GetNamesByRecordID failed: %v", err)
	}

	expected := []string{"ibuprofen", "aspirin", "ibuprofen"}
	if len(names) != len(expected) {
		t.Fatalf("Got %d names, expected %d", len(names), len(expected))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("names[%d] = %q, expected %q", i, names[i], expected[i])
		}
	}
}

func TestLabelRepository_GetAllNamesUnique(t *testing.T) {
	db := newTestDB(t)
	recordRepo := NewRecordRepository(db)
	labelRepo := NewLabelRepository(db)

	id := insertRecord(t, recordRepo, "multi.png", "aspirin,aspirin", time.Now())
	labelRepo.InsertBatch([]model.RecordLabel{
		{RecordID: id, Name: "aspirin", Position: 0},
		{RecordID: id, Name: "aspirin", Position: 1},
	})

	names, err := labelRepo.GetAllNames()
	if err != nil {
		t.Fatalf("GetAllNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "aspirin" {
		t.Errorf("GetAllNames = %v, expected unique [aspirin]", names)
	}
}

func TestNew_UnusableTarget(t *testing.T) {
	// A directory path opens lazily but fails at migration; New reports
	// the error instead of handing back a half-initialized wrapper.
	db, err := New(t.TempDir())
	if err == nil {
		db.Close()
		t.Fatal("New on a directory path should fail")
	}
}
