package sqlite

import (
	"fmt"

	"labelscan/internal/model"
)

// LabelRepository implements repository.LabelRepository for SQLite.
type LabelRepository struct {
	db *DB
}

// NewLabelRepository creates a new SQLite label repository.
func NewLabelRepository(db *DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// InsertBatch adds multiple labels in a single transaction.
func (r *LabelRepository) InsertBatch(labels []model.RecordLabel) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO record_labels (record_id, name, position)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, label := range labels {
		if _, err := stmt.Exec(label.RecordID, label.Name, label.Position); err != nil {
			return fmt.Errorf("failed to insert label: %w", err)
		}
	}

	return tx.Commit()
}

// GetByRecordID retrieves all labels for a record in detection order.
func (r *LabelRepository) GetByRecordID(recordID int64) ([]model.RecordLabel, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, record_id, name, position
		FROM record_labels WHERE record_id = ? ORDER BY position
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	var labels []model.RecordLabel
	for rows.Next() {
		var label model.RecordLabel
		if err := rows.Scan(&label.ID, &label.RecordID, &label.Name, &label.Position); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}

// GetNamesByRecordID returns just the label names for a record in detection order.
func (r *LabelRepository) GetNamesByRecordID(recordID int64) ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT name FROM record_labels WHERE record_id = ? ORDER BY position`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query label names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan label name: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

// GetAllNames returns a list of all unique label names.
func (r *LabelRepository) GetAllNames() ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT DISTINCT name FROM record_labels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

// DeleteByRecordID removes all labels for a specific record.
func (r *LabelRepository) DeleteByRecordID(recordID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM record_labels WHERE record_id = ?`, recordID); err != nil {
		return fmt.Errorf("failed to delete labels: %w", err)
	}
	return nil
}
