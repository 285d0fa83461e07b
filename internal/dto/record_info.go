package dto

import (
	"encoding/json"
	"time"
)

// RecordInfo represents one stored inference result in API responses.
type RecordInfo struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	Date        time.Time `json:"date"`
	OCRText     string    `json:"ocrText"`
	ModelOutput string    `json:"modelOutput"`
	Labels      []string  `json:"labels"`
}

// MarshalJSON customizes JSON output for RecordInfo to format the date.
func (r RecordInfo) MarshalJSON() ([]byte, error) {
	type Alias RecordInfo
	return json.Marshal(&struct {
		Date string `json:"date"`
		Alias
	}{
		Date:  r.Date.Format("02-01-2006 15:04"),
		Alias: (Alias)(r),
	})
}
