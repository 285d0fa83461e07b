package sqlite

import (
	"database/sql"
	"fmt"

	"labelscan/internal/dto"
	"labelscan/internal/model"
)

// RecordRepository implements repository.RecordRepository for SQLite.
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new SQLite record repository.
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Insert adds a new inference record to the database.
func (r *RecordRepository) Insert(rec *model.InferenceRecord) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO records (filename, filepath, ocr_text, model_output, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Filename, rec.FilePath, rec.OCRText, rec.ModelOutput, rec.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a record by its ID.
func (r *RecordRepository) GetByID(id int64) (*model.InferenceRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var rec model.InferenceRecord
	err := r.db.Conn().QueryRow(`
		SELECT id, filename, filepath, ocr_text, model_output, timestamp
		FROM records WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Filename, &rec.FilePath, &rec.OCRText, &rec.ModelOutput, &rec.Timestamp)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &rec, nil
}

// GetAll retrieves records based on filter criteria, newest first.
func (r *RecordRepository) GetAll(filter *dto.RecordFilters) ([]model.InferenceRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT DISTINCT rec.id, rec.filename, rec.filepath, rec.ocr_text, rec.model_output, rec.timestamp
		FROM records rec
		LEFT JOIN record_labels l ON rec.id = l.record_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Label != "" {
		query += " AND l.name = ?"
		args = append(args, filter.Label)
	}

	if !filter.DateAfter.IsZero() {
		query += " AND DATE(rec.timestamp) >= DATE(?)"
		args = append(args, filter.DateAfter)
	}

	if !filter.DateBefore.IsZero() {
		query += " AND DATE(rec.timestamp) <= DATE(?)"
		args = append(args, filter.DateBefore)
	}

	query += " ORDER BY rec.timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.InferenceRecord
	for rows.Next() {
		var rec model.InferenceRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.FilePath, &rec.OCRText, &rec.ModelOutput, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// GetTotalCount counts records matching the filter.
func (r *RecordRepository) GetTotalCount(filter *dto.RecordFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT COUNT(DISTINCT rec.id)
		FROM records rec
		LEFT JOIN record_labels l ON rec.id = l.record_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Label != "" {
		query += " AND l.name = ?"
		args = append(args, filter.Label)
	}

	if !filter.DateAfter.IsZero() {
		query += " AND DATE(rec.timestamp) >= DATE(?)"
		args = append(args, filter.DateAfter)
	}

	if !filter.DateBefore.IsZero() {
		query += " AND DATE(rec.timestamp) <= DATE(?)"
		args = append(args, filter.DateBefore)
	}

	var count int
	if err := r.db.Conn().QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// Delete removes a record by ID.
func (r *RecordRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// DeleteAll removes all records and their labels.
func (r *RecordRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM record_labels`); err != nil {
		return fmt.Errorf("failed to clear labels: %w", err)
	}
	if _, err := r.db.Conn().Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
