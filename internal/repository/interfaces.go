package repository

import (
	"labelscan/internal/dto"
	"labelscan/internal/model"
)

// RecordRepository defines the interface for inference record operations.
type RecordRepository interface {
	// Create operations
	Insert(rec *model.InferenceRecord) (int64, error)

	// Read operations
	GetByID(id int64) (*model.InferenceRecord, error)
	GetAll(filter *dto.RecordFilters) ([]model.InferenceRecord, error)
	GetTotalCount(filter *dto.RecordFilters) (int, error)

	// Delete operations
	Delete(id int64) error
	DeleteAll() error
}

// LabelRepository defines the interface for per-record label operations.
type LabelRepository interface {
	// Create operations
	InsertBatch(labels []model.RecordLabel) error

	// Read operations
	GetByRecordID(recordID int64) ([]model.RecordLabel, error)
	GetNamesByRecordID(recordID int64) ([]string, error)
	GetAllNames() ([]string, error)

	// Delete operations
	DeleteByRecordID(recordID int64) error
}
