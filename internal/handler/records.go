package handler

import (
	"net/http"
	"os"
	"strconv"

	"labelscan/internal/dto"
	"labelscan/internal/logger"
	"labelscan/internal/repository"
)

// GetRecordsHandler returns a filtered, paged list of inference records.
func GetRecordsHandler(logger *logger.Logger,
	recordRepo repository.RecordRepository, labelRepo repository.LabelRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		filter := &dto.RecordFilters{
			Label:      q.Get("label"),
			DateAfter:  parseDate(q.Get("dateAfter")),
			DateBefore: parseDate(q.Get("dateBefore")),
			Limit:      limit,
			Offset:     (page - 1) * limit,
		}

		records, err := recordRepo.GetAll(filter)
		if err != nil {
			logger.Error("Error querying records from database: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		totalCount, err := recordRepo.GetTotalCount(filter)
		if err != nil {
			logger.Error("Error counting records: %v", err)
			totalCount = len(records)
		}

		infos := []dto.RecordInfo{}
		for _, rec := range records {
			var labels []string
			if labelRepo != nil {
				labels, err = labelRepo.GetNamesByRecordID(rec.ID)
				if err != nil {
					logger.Error("Error getting labels for record %d: %v", rec.ID, err)
					labels = []string{}
				}
			}

			infos = append(infos, dto.RecordInfo{
				ID:          rec.ID,
				Filename:    rec.Filename,
				Date:        rec.Timestamp,
				OCRText:     rec.OCRText,
				ModelOutput: rec.ModelOutput,
				Labels:      labels,
			})
		}

		data := dto.RecordsData{
			Records:     infos,
			Length:      totalCount,
			TotalPages:  (totalCount + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		}

		writeJSON(w, http.StatusOK, data)
	}
}

// DeleteRecordHandler removes one record, its labels, and the stored file.
func DeleteRecordHandler(logger *logger.Logger,
	recordRepo repository.RecordRepository, labelRepo repository.LabelRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "Record id required", http.StatusBadRequest)
			return
		}

		rec, err := recordRepo.GetByID(id)
		if err != nil {
			logger.Error("Error looking up record %d: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if rec == nil {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}

		// Delete stored file from disk
		if err := os.Remove(rec.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Error("Failed to delete file %s: %v", rec.FilePath, err)
		}

		if labelRepo != nil {
			if err := labelRepo.DeleteByRecordID(id); err != nil {
				logger.Error("Failed to delete labels for record %d: %v", id, err)
			}
		}

		if err := recordRepo.Delete(id); err != nil {
			logger.Error("Failed to delete record %d: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		logger.Info("Deleted record %d (%s)", id, rec.Filename)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "filename": rec.Filename})
	}
}

// ClearRecordsHandler deletes all records and labels from the database.
func ClearRecordsHandler(logger *logger.Logger, recordRepo repository.RecordRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := recordRepo.DeleteAll(); err != nil {
			logger.Error("Error clearing records: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		logger.Info("All inference records cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
