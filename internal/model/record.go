package model

import "time"

// InferenceRecord is one persisted inference result.
type InferenceRecord struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"filepath"`
	OCRText     string    `json:"ocrText"`
	ModelOutput string    `json:"modelOutput"`
	Timestamp   time.Time `json:"timestamp"`
}

// RecordLabel is one detected class name attached to a record, in
// detection order.
type RecordLabel struct {
	ID       int64  `json:"id"`
	RecordID int64  `json:"record_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
