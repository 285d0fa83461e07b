package inference

import (
	"encoding/json"
	"time"

	"labelscan/internal/dto"
	"labelscan/internal/logger"
	"labelscan/internal/model"
	"labelscan/internal/repository"
	"labelscan/internal/service/detect"
	"labelscan/internal/service/upload"
)

// TextExtractor is the OCR pass: it may fail, and its failure aborts the
// whole request.
type TextExtractor interface {
	ExtractText(storedPath string) (string, error)
}

// LabelDetector is the detection pass: it never fails, errors come back
// in-band as "Error: ..." strings.
type LabelDetector interface {
	Detect(storedPath string) string
}

// Broadcaster pushes completed inference events to connected viewers.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Orchestrator sequences the OCR and detection passes over one stored
// image and merges their outputs into a single response.
type Orchestrator struct {
	ocr        TextExtractor
	detector   LabelDetector
	recordRepo repository.RecordRepository
	labelRepo  repository.LabelRepository
	events     Broadcaster
	logger     *logger.Logger
}

// NewOrchestrator wires the two extraction passes with the optional
// record store and event hub. recordRepo, labelRepo and events may be nil.
func NewOrchestrator(ocr TextExtractor, detector LabelDetector,
	recordRepo repository.RecordRepository, labelRepo repository.LabelRepository,
	events Broadcaster, logger *logger.Logger) *Orchestrator {
	return &Orchestrator{
		ocr:        ocr,
		detector:   detector,
		recordRepo: recordRepo,
		labelRepo:  labelRepo,
		events:     events,
		logger:     logger,
	}
}

// Infer runs OCR first and detection second over the stored file. An OCR
// failure ends the request immediately and the detection pass is never
// attempted; detection cannot fail, so once OCR succeeds the response is
// always the success variant.
func (o *Orchestrator) Infer(file upload.UploadedFile) dto.InferenceResponse {
	ocrText, err := o.ocr.ExtractText(file.StoredPath)
	if err != nil {
		o.logger.Error("OCR failed for %s: %v", file.StoredPath, err)
		return dto.Failure(err.Error())
	}

	modelOutput := o.detector.Detect(file.StoredPath)

	o.recordResult(file, ocrText, modelOutput)
	o.publishResult(file, ocrText, modelOutput)

	return dto.Success(ocrText, modelOutput)
}

// recordResult persists the merged result. Persistence problems are logged
// and never surfaced to the client.
func (o *Orchestrator) recordResult(file upload.UploadedFile, ocrText, modelOutput string) {
	if o.recordRepo == nil {
		return
	}

	recordID, err := o.recordRepo.Insert(&model.InferenceRecord{
		Filename:    file.SanitizedName,
		FilePath:    file.StoredPath,
		OCRText:     ocrText,
		ModelOutput: modelOutput,
		Timestamp:   time.Now(),
	})
	if err != nil {
		o.logger.Error("Error saving inference record for %s: %v", file.SanitizedName, err)
		return
	}

	if o.labelRepo == nil {
		return
	}

	labels := detect.SplitLabels(modelOutput)
	if len(labels) == 0 {
		return
	}

	rows := make([]model.RecordLabel, 0, len(labels))
	for i, name := range labels {
		rows = append(rows, model.RecordLabel{
			RecordID: recordID,
			Name:     name,
			Position: i,
		})
	}
	if err := o.labelRepo.InsertBatch(rows); err != nil {
		o.logger.Error("Error saving labels for record %d: %v", recordID, err)
	}
}

// publishResult broadcasts the merged result to event hub viewers.
func (o *Orchestrator) publishResult(file upload.UploadedFile, ocrText, modelOutput string) {
	if o.events == nil {
		return
	}

	msg, err := json.Marshal(map[string]string{
		"file":        file.SanitizedName,
		"ocrText":     ocrText,
		"modelOutput": modelOutput,
		"time":        time.Now().Format(time.RFC3339),
	})
	if err != nil {
		o.logger.Error("Error encoding inference event: %v", err)
		return
	}

	o.events.Broadcast(msg)
}
