package dto

import "encoding/json"

// InferenceResponse is the aggregate result of one inference request.
// It has exactly two shapes: a success carrying the OCR text and the
// detection output, or a failure carrying only an error message. The
// zero value is not meaningful; use Success or Failure.
type InferenceResponse struct {
	OCRText     string
	ModelOutput string
	Message     string
	failed      bool
}

// Success builds the success variant.
func Success(ocrText, modelOutput string) InferenceResponse {
	return InferenceResponse{OCRText: ocrText, ModelOutput: modelOutput}
}

// Failure builds the failure variant.
func Failure(message string) InferenceResponse {
	return InferenceResponse{Message: message, failed: true}
}

// Failed reports whether the response is the failure variant.
func (r InferenceResponse) Failed() bool {
	return r.failed
}

// MarshalJSON serializes exactly one of the two shapes:
// {"ocrText": ..., "modelOutput": ...} or {"error": ...}.
func (r InferenceResponse) MarshalJSON() ([]byte, error) {
	if r.failed {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Message})
	}
	return json.Marshal(struct {
		OCRText     string `json:"ocrText"`
		ModelOutput string `json:"modelOutput"`
	}{OCRText: r.OCRText, ModelOutput: r.ModelOutput})
}
