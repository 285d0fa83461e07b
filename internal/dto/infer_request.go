package dto

// InferRequest is the body of POST /infer: the caller has already run OCR
// and only asks for a detection pass over an image it stored earlier.
type InferRequest struct {
	ImagePath string `json:"imagePath"`
	OCRText   string `json:"ocrText"`
}
